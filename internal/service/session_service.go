package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylebot/internal/domain"
	"stylebot/internal/faq"
)

var (
	// ErrSessionBusy indica que la sesion ya tiene una peticion en vuelo.
	// Las peticiones no se encolan; el cliente debe reintentar.
	ErrSessionBusy = errors.New("session busy")
	// ErrSessionNotFound indica un ID de sesion desconocido.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRateLimited indica que la sesion excedio su cuota de mensajes.
	ErrRateLimited = errors.New("rate limit exceeded")
)

const (
	welcomeMessage = "Hello! I'm StyleBot. How can I help you today? You can ask for product recommendations, style advice, or see FAQs."

	recommendationFormPrompt = "Great! Tell me a bit about what you're looking for and I'll pick some pieces for you 🛍️"
	styleFormPrompt          = "Love it! Share a few details about yourself and I'll put together personalized style ideas ✨"

	escalationConfirmation = "I've let our support team know 💌 A human will get back to you shortly!"

	recommendationFailureMessage = "I'm sorry, I ran into a problem while picking products for you. 😔 Please try again in a moment!"
	styleFailureMessage          = "I'm sorry, I couldn't put your style suggestions together. 😔 Please try again in a moment!"

	// Ultimos mensajes con contexto util que viajan al responder.
	chatHistoryWindow = 6
)

// SessionStore abstrae el almacen de sesiones activas.
type SessionStore interface {
	Create(ctx context.Context, session *domain.ChatSession) error
	Get(ctx context.Context, id string) (*domain.ChatSession, error)
}

// Responder es el responder conversacional visto desde el orquestador.
type Responder interface {
	Respond(ctx context.Context, userInput string, history []domain.ChatTurn) (domain.ChatReply, error)
}

// Recommender produce recomendaciones de productos para una solicitud.
type Recommender interface {
	Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationResult, error)
}

// StyleAdvisor produce sugerencias de estilo para una solicitud.
type StyleAdvisor interface {
	Advise(ctx context.Context, req domain.StyleRequest) (domain.StyleSuggestionResult, error)
}

// RateLimiter limita la frecuencia de mensajes por sesion.
type RateLimiter interface {
	Allow(ctx context.Context, sessionID string) (bool, error)
}

// EscalationNotifier avisa al equipo de soporte que un usuario pide
// atencion humana.
type EscalationNotifier interface {
	SendEscalationNotice(ctx context.Context, sessionID, reason string) error
}

// Frases que activan cada funcion sin pasar por el LLM.
var (
	recommendationPhrases = []string{"product recommendation", "recommend product", "find clothes", "buy clothes", "suggest item"}
	stylePhrases          = []string{"style advice", "color suggestion", "fashion tip", "style help"}
)

// SessionService es el orquestador de sesiones: unico dueño de las
// transiciones del historial. Aplica la precedencia FAQ -> atajos de
// intencion -> responder conversacional, y es el unico que ejecuta los
// descriptores de intencion que el responder devuelve.
type SessionService struct {
	store    SessionStore
	chat     Responder
	rec      Recommender
	style    StyleAdvisor
	limiter  RateLimiter
	notifier EscalationNotifier
	logger   *zap.Logger
}

func NewSessionService(store SessionStore, chat Responder, rec Recommender, style StyleAdvisor, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, chat: chat, rec: rec, style: style, logger: logger}
}

// WithRateLimiter instala un limitador de mensajes por sesion.
func (s *SessionService) WithRateLimiter(limiter RateLimiter) *SessionService {
	s.limiter = limiter
	return s
}

// WithEscalationNotifier instala el aviso de escalada a soporte.
func (s *SessionService) WithEscalationNotifier(notifier EscalationNotifier) *SessionService {
	s.notifier = notifier
	return s
}

// StartSession crea una sesion nueva con el mensaje de bienvenida.
func (s *SessionService) StartSession(ctx context.Context) (*domain.ChatSession, error) {
	session := domain.NewChatSession(uuid.NewString())
	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderBot,
		Kind:      domain.KindText,
		Text:      welcomeMessage,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("session started", zap.String("session_id", session.ID))
	return session, nil
}

// Messages devuelve el historial completo de la sesion.
func (s *SessionService) Messages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Messages(), nil
}

// HandleUserMessage procesa un mensaje de texto libre del usuario.
// Precedencia: FAQ primero, despues los atajos de intencion por frase, y
// solo al final el responder conversacional.
func (s *SessionService) HandleUserMessage(ctx context.Context, sessionID, text string) ([]domain.Message, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryBegin() {
		return nil, ErrSessionBusy
	}
	defer session.End()

	if err := s.checkRateLimit(ctx, sessionID); err != nil {
		return nil, err
	}

	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderUser,
		Kind:      domain.KindText,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})

	if answer, ok := faq.Match(text); ok {
		s.appendBotText(session, answer)
		return session.Messages(), nil
	}

	if feature, ok := matchIntentShortcut(text); ok {
		s.appendFormRequest(session, feature)
		return session.Messages(), nil
	}

	s.respondConversationally(ctx, session, text)
	return session.Messages(), nil
}

// SubmitRecommendationForm procesa el formulario de recomendaciones.
func (s *SessionService) SubmitRecommendationForm(ctx context.Context, sessionID string, req domain.RecommendationRequest) ([]domain.Message, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryBegin() {
		return nil, ErrSessionBusy
	}
	defer session.End()

	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderUser,
		Kind:      domain.KindText,
		Text:      "Okay, here are my preferences for product recommendations.",
		CreatedAt: time.Now().UTC(),
	})

	s.runRecommendation(ctx, session, req)
	return session.Messages(), nil
}

// SubmitStyleForm procesa el formulario de asesoria de estilo.
func (s *SessionService) SubmitStyleForm(ctx context.Context, sessionID string, req domain.StyleRequest) ([]domain.Message, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryBegin() {
		return nil, ErrSessionBusy
	}
	defer session.End()

	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderUser,
		Kind:      domain.KindText,
		Text:      "Great, here's my info for style advice.",
		CreatedAt: time.Now().UTC(),
	})

	s.runStyleAdvice(ctx, session, req)
	return session.Messages(), nil
}

// TriggerFeature activa una funcion desde la UI sin texto libre.
func (s *SessionService) TriggerFeature(ctx context.Context, sessionID string, feature domain.FeatureKind) ([]domain.Message, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryBegin() {
		return nil, ErrSessionBusy
	}
	defer session.End()

	switch feature {
	case domain.FeatureRecommendations, domain.FeatureStyleAdvice:
		s.appendFormRequest(session, feature)
	case domain.FeatureFAQList:
		s.appendBotText(session, faqListMessage())
	case domain.FeatureContactInfo:
		s.appendBotText(session, contactInfoMessage())
	case domain.FeatureEscalation:
		s.escalate(ctx, session)
	default:
		return nil, fmt.Errorf("unknown feature %q", feature)
	}
	return session.Messages(), nil
}

// faqListMessage arma el texto con las preguntas frecuentes disponibles.
func faqListMessage() string {
	var sb strings.Builder
	sb.WriteString("Here's what people ask me most often 💬\n")
	for _, entry := range faq.Entries() {
		sb.WriteString("• ")
		sb.WriteString(entry.Question)
		sb.WriteString("\n")
	}
	sb.WriteString("Just ask me any of these!")
	return sb.String()
}

func contactInfoMessage() string {
	contact := faq.Contact()
	return fmt.Sprintf("You can reach our team at %s or call %s (%s). 📞", contact.Email, contact.Phone, contact.Hours)
}

// respondConversationally corre el responder y, si este devuelve un
// descriptor de intencion, encadena la busqueda correspondiente con la
// solicitud original.
func (s *SessionService) respondConversationally(ctx context.Context, session *domain.ChatSession, text string) {
	placeholder := s.appendLoadingPlaceholder(session)

	history := buildChatHistory(session, placeholder)
	reply, err := s.chat.Respond(ctx, text, history)
	if err != nil {
		s.logger.Error("conversational responder failed", zap.String("session_id", session.ID), zap.Error(err))
		session.Fail(placeholder, chatFallbackMessage)
		return
	}

	session.ResolveText(placeholder, reply.AIResponse)

	switch reply.TriggerAction {
	case domain.TriggerFetchMoreProducts:
		s.logger.Info("chained_fetch_pending",
			zap.String("session_id", session.ID),
			zap.String("action", string(reply.TriggerAction)))
		s.runRecommendation(ctx, session, domain.RecommendationRequest{UserPreferences: reply.ActionInput})

	case domain.TriggerFetchMoreStyleSuggestions:
		s.logger.Info("chained_fetch_pending",
			zap.String("session_id", session.ID),
			zap.String("action", string(reply.TriggerAction)))
		var req domain.StyleRequest
		if err := json.Unmarshal([]byte(reply.ActionInput), &req); err != nil {
			s.logger.Error("invalid chained style request", zap.Error(err))
			return
		}
		req.PreviousSuggestions = collectShownSuggestions(session)
		s.runStyleAdvice(ctx, session, req)
	}
}

func (s *SessionService) runRecommendation(ctx context.Context, session *domain.ChatSession, req domain.RecommendationRequest) {
	placeholder := s.appendLoadingPlaceholder(session)

	result, err := s.rec.Recommend(ctx, req)
	if err != nil {
		s.logger.Error("recommendation failed", zap.String("session_id", session.ID), zap.Error(err))
		session.Fail(placeholder, recommendationFailureMessage)
		return
	}

	origin := &domain.RequestOrigin{Kind: domain.KindProductRecommendations, Recommendation: &req}
	session.ResolvePayload(placeholder, &result, origin)
}

func (s *SessionService) runStyleAdvice(ctx context.Context, session *domain.ChatSession, req domain.StyleRequest) {
	placeholder := s.appendLoadingPlaceholder(session)

	result, err := s.style.Advise(ctx, req)
	if err != nil {
		s.logger.Error("style advice failed", zap.String("session_id", session.ID), zap.Error(err))
		session.Fail(placeholder, styleFailureMessage)
		return
	}

	origin := &domain.RequestOrigin{Kind: domain.KindStyleSuggestions, Style: &req}
	session.ResolvePayload(placeholder, &result, origin)
}

func (s *SessionService) escalate(ctx context.Context, session *domain.ChatSession) {
	if s.notifier == nil {
		s.appendBotText(session, "Our support team isn't reachable right now. 😔 Please try again later!")
		return
	}
	if err := s.notifier.SendEscalationNotice(ctx, session.ID, "user requested human support"); err != nil {
		s.logger.Error("escalation notice failed", zap.String("session_id", session.ID), zap.Error(err))
		s.appendBotText(session, "I couldn't reach our support team just now. 😔 Please try again in a moment!")
		return
	}
	s.appendBotText(session, escalationConfirmation)
}

func (s *SessionService) checkRateLimit(ctx context.Context, sessionID string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, sessionID)
	if err != nil {
		// Un limitador caido no debe tumbar el chat.
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		return ErrRateLimited
	}
	return nil
}

func (s *SessionService) appendBotText(session *domain.ChatSession, text string) {
	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderBot,
		Kind:      domain.KindText,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *SessionService) appendFormRequest(session *domain.ChatSession, feature domain.FeatureKind) {
	prompt := recommendationFormPrompt
	if feature == domain.FeatureStyleAdvice {
		prompt = styleFormPrompt
	}
	session.Append(domain.Message{
		ID:        uuid.NewString(),
		Sender:    domain.SenderBot,
		Kind:      domain.KindFormRequest,
		Text:      prompt,
		Payload:   &domain.FormRequest{Feature: feature},
		CreatedAt: time.Now().UTC(),
	})
}

// appendLoadingPlaceholder agrega el placeholder del turno de la IA y
// devuelve su ID estable para resolverlo en sitio.
func (s *SessionService) appendLoadingPlaceholder(session *domain.ChatSession) string {
	id := uuid.NewString()
	session.Append(domain.Message{
		ID:        id,
		Sender:    domain.SenderAI,
		Kind:      domain.KindText,
		Loading:   true,
		CreatedAt: time.Now().UTC(),
	})
	return id
}

// buildChatHistory arma la ventana de contexto del responder: los
// ultimos mensajes con contexto util, excluyendo el placeholder en curso,
// con las solicitudes originales de las cards como back-reference.
func buildChatHistory(session *domain.ChatSession, excludeID string) []domain.ChatTurn {
	messages := session.Messages()
	turns := make([]domain.ChatTurn, 0, chatHistoryWindow)
	for i := len(messages) - 1; i >= 0 && len(turns) < chatHistoryWindow; i-- {
		msg := messages[i]
		if msg.ID == excludeID || msg.Loading || !msg.HasUsableContext() {
			continue
		}
		turns = append(turns, toChatTurn(msg))
	}
	// De mas reciente a mas antiguo -> orden cronologico.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns
}

func toChatTurn(msg domain.Message) domain.ChatTurn {
	turn := domain.ChatTurn{Sender: msg.Sender, Text: msg.Text, Kind: msg.Kind}
	if msg.Origin == nil {
		return turn
	}
	switch msg.Origin.Kind {
	case domain.KindProductRecommendations:
		if msg.Origin.Recommendation != nil {
			turn.OriginalUserPreferences = msg.Origin.Recommendation.UserPreferences
		}
	case domain.KindStyleSuggestions:
		turn.OriginalStyleRequest = msg.Origin.Style
	}
	return turn
}

// collectShownSuggestions junta todas las sugerencias de estilo ya
// mostradas en la sesion, en orden, para que un follow-up no las repita.
func collectShownSuggestions(session *domain.ChatSession) []string {
	var shown []string
	for _, msg := range session.Messages() {
		if msg.Kind != domain.KindStyleSuggestions {
			continue
		}
		if payload, ok := msg.Payload.(*domain.StyleSuggestionResult); ok {
			shown = append(shown, payload.Suggestions...)
		}
	}
	return shown
}

// matchIntentShortcut detecta las frases que activan un formulario sin
// pasar por el LLM.
func matchIntentShortcut(text string) (domain.FeatureKind, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range recommendationPhrases {
		if strings.Contains(lower, phrase) {
			return domain.FeatureRecommendations, true
		}
	}
	for _, phrase := range stylePhrases {
		if strings.Contains(lower, phrase) {
			return domain.FeatureStyleAdvice, true
		}
	}
	return "", false
}
