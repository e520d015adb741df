package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylebot/internal/domain"
	"stylebot/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chat.
type ChatHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
	tokens   *service.SessionTokenService
}

func NewChatHandler(logger *zap.Logger, sessions *service.SessionService, tokens *service.SessionTokenService) *ChatHandler {
	return &ChatHandler{logger: logger, sessions: sessions, tokens: tokens}
}

// CreateSession maneja POST /chat/session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.StartSession(c.Request.Context())
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	token, err := h.tokens.Issue(session.ID)
	if err != nil {
		h.logger.Error("issue session token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"token":      token,
		"messages":   session.Messages(),
	})
}

// GetMessages maneja GET /chat/session/:id/messages.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.sessions.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "could not load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage maneja POST /chat/session/:id/message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	messages, err := h.sessions.HandleUserMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.writeServiceError(c, err, "could not process message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostRecommendations maneja POST /chat/session/:id/recommendations.
func (h *ChatHandler) PostRecommendations(c *gin.Context) {
	var req struct {
		UserPreferences string `json:"userPreferences" binding:"required"`
		PastBehavior    string `json:"pastBehavior"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommendations request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	messages, err := h.sessions.SubmitRecommendationForm(c.Request.Context(), c.Param("id"), domain.RecommendationRequest{
		UserPreferences: req.UserPreferences,
		PastBehavior:    req.PastBehavior,
	})
	if err != nil {
		h.writeServiceError(c, err, "could not process recommendation request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostStyleAdvice maneja POST /chat/session/:id/style.
func (h *ChatHandler) PostStyleAdvice(c *gin.Context) {
	var req struct {
		SkinTone      string `json:"skinTone" binding:"required"`
		Preferences   string `json:"preferences" binding:"required"`
		Gender        string `json:"gender" binding:"required"`
		Occasion      string `json:"occasion"`
		CurrentTrends string `json:"currentTrends"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid style request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gender"})
		return
	}

	messages, err := h.sessions.SubmitStyleForm(c.Request.Context(), c.Param("id"), domain.StyleRequest{
		SkinTone:      req.SkinTone,
		Preferences:   req.Preferences,
		Gender:        gender,
		Occasion:      req.Occasion,
		CurrentTrends: req.CurrentTrends,
	})
	if err != nil {
		h.writeServiceError(c, err, "could not process style request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostFeature maneja POST /chat/session/:id/feature.
func (h *ChatHandler) PostFeature(c *gin.Context) {
	var req struct {
		Feature string `json:"feature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feature request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	messages, err := h.sessions.TriggerFeature(c.Request.Context(), c.Param("id"), domain.FeatureKind(req.Feature))
	if err != nil {
		if errors.Is(err, service.ErrSessionBusy) || errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrRateLimited) {
			h.writeServiceError(c, err, "could not trigger feature")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown feature"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// writeServiceError traduce los errores del orquestador a codigos HTTP.
// Una sesion ocupada devuelve 409: las peticiones no se encolan.
func (h *ChatHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "session busy, try again shortly"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
	default:
		h.logger.Error("chat operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
