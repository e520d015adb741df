package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

const (
	// Respuesta fija cuando el LLM no devuelve ni texto ni accion.
	chatFallbackMessage = "I'm sorry, I'm having a little trouble understanding. Could you please rephrase that? 🤔"

	chatRedirectToRecommendations = "I'd love to find products for you! 🛍️ Please start with the product recommendation option so I know what you're looking for."
	chatRedirectToStyleAdvice     = "Happy to share style ideas! ✨ Please fill in the style advice option first so I can tailor them to you."

	chatAckMoreProducts    = "On it! Let me find a few more pieces for you 🛍️"
	chatAckMoreSuggestions = "Great, let me think of some fresh ideas for you ✨"

	chatStyleChainFailure = "I'm sorry, I lost track of your previous style details. 😔 Please fill in the style advice option again and I'll take it from there!"
)

// Costura para simular fallos de serializacion en tests.
var marshalChainedStyleRequest = json.Marshal

// ChatService es el responder conversacional: genera la respuesta de
// texto libre y, cuando aplica, un descriptor de intencion de follow-up.
// Nunca ejecuta la accion; eso es del orquestador de sesion.
type ChatService struct {
	llmClient llm.Client
	builder   ChatPromptBuilder
	parser    LLMResponseParser
	logger    *zap.Logger
}

func NewChatService(llmClient llm.Client, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{llmClient: llmClient, logger: logger}
}

// Respond genera la respuesta conversacional para el mensaje del usuario
// con el historial reciente como contexto, y hace cumplir el contrato de
// triggers: un trigger solo sobrevive si el historial contiene la
// solicitud original correspondiente, y su actionInput se toma de esa
// solicitud, no del modelo.
func (s *ChatService) Respond(ctx context.Context, userInput string, history []domain.ChatTurn) (domain.ChatReply, error) {
	prompt := s.builder.BuildChatPrompt(userInput, history)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	reply, err := s.parser.ParseChatReply(raw)
	if err != nil {
		return domain.ChatReply{}, err
	}

	return s.enforceTriggerContract(reply, history), nil
}

// enforceTriggerContract valida el trigger devuelto por el modelo contra
// el historial. Sin solicitud previa que encadenar, el trigger se
// descarta y el texto redirige al formulario correspondiente.
func (s *ChatService) enforceTriggerContract(reply domain.ChatReply, history []domain.ChatTurn) domain.ChatReply {
	switch reply.TriggerAction {
	case domain.TriggerFetchMoreProducts:
		prefs, ok := lastRecommendationPreferences(history)
		if !ok {
			s.logger.Info("dropping trigger without prior recommendation in history")
			reply.TriggerAction = ""
			reply.ActionInput = ""
			reply.AIResponse = chatRedirectToRecommendations
			break
		}
		reply.ActionInput = prefs
		if reply.AIResponse == "" {
			reply.AIResponse = chatAckMoreProducts
		}

	case domain.TriggerFetchMoreStyleSuggestions:
		styleReq, ok := lastStyleRequest(history)
		if !ok {
			s.logger.Info("dropping trigger without prior style request in history")
			reply.TriggerAction = ""
			reply.ActionInput = ""
			reply.AIResponse = chatRedirectToStyleAdvice
			break
		}
		encoded, err := marshalChainedStyleRequest(styleReq)
		if err != nil {
			// Fallo de serializacion: reply de error plano, sin trigger.
			s.logger.Warn("failed to serialize chained style request", zap.Error(err))
			reply.TriggerAction = ""
			reply.ActionInput = ""
			reply.AIResponse = chatStyleChainFailure
			break
		}
		reply.ActionInput = string(encoded)
		if reply.AIResponse == "" {
			reply.AIResponse = chatAckMoreSuggestions
		}
	}

	if reply.AIResponse == "" {
		reply.AIResponse = chatFallbackMessage
	}
	return reply
}

// lastRecommendationPreferences busca hacia atras la recomendacion mas
// reciente y devuelve sus preferencias originales.
func lastRecommendationPreferences(history []domain.ChatTurn) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind == domain.KindProductRecommendations && history[i].OriginalUserPreferences != "" {
			return history[i].OriginalUserPreferences, true
		}
	}
	return "", false
}

// lastStyleRequest busca hacia atras la sugerencia de estilo mas reciente
// y devuelve su solicitud original.
func lastStyleRequest(history []domain.ChatTurn) (*domain.StyleRequest, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind == domain.KindStyleSuggestions && history[i].OriginalStyleRequest != nil {
			return history[i].OriginalStyleRequest, true
		}
	}
	return nil, false
}
