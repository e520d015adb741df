package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"stylebot/internal/domain"
)

var (
	// ErrGeneration indica que el LLM fallo, devolvio salida vacia o
	// salida que no cumple el esquema esperado.
	ErrGeneration = errors.New("generation failed")
	// ErrSerialization indica que un actionInput con forma de objeto no
	// pudo convertirse a su forma string de wire.
	ErrSerialization = errors.New("action input serialization failed")
)

// LLMResponseParser centraliza la limpieza y el parseo de las salidas
// estructuradas del LLM para los tres flujos.
type LLMResponseParser struct{}

// DefaultLLMResponseParser permite uso directo sin instanciar.
var DefaultLLMResponseParser = LLMResponseParser{}

// ParseChatReply parsea la respuesta del responder conversacional.
// actionInput puede llegar como string o como objeto JSON; los objetos
// se serializan a string antes de devolverse.
func (LLMResponseParser) ParseChatReply(raw string) (domain.ChatReply, error) {
	var wire struct {
		AIResponse    string          `json:"aiResponse"`
		TriggerAction string          `json:"triggerAction"`
		ActionInput   json.RawMessage `json:"actionInput"`
	}
	if err := unmarshalLLMObject(raw, &wire); err != nil {
		return domain.ChatReply{}, err
	}

	reply := domain.ChatReply{AIResponse: strings.TrimSpace(wire.AIResponse)}

	switch domain.TriggerAction(strings.TrimSpace(wire.TriggerAction)) {
	case domain.TriggerFetchMoreProducts:
		reply.TriggerAction = domain.TriggerFetchMoreProducts
	case domain.TriggerFetchMoreStyleSuggestions:
		reply.TriggerAction = domain.TriggerFetchMoreStyleSuggestions
	case "":
	default:
		// Accion desconocida: se ignora el trigger, la respuesta de texto sigue valiendo.
	}

	if reply.TriggerAction != "" && len(wire.ActionInput) > 0 {
		input, err := actionInputToString(wire.ActionInput)
		if err != nil {
			return domain.ChatReply{}, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		reply.ActionInput = input
	}

	return reply, nil
}

// ParseRecommendationResult parsea la seleccion de productos del LLM.
func (LLMResponseParser) ParseRecommendationResult(raw string) (domain.RecommendationResult, error) {
	var result domain.RecommendationResult
	if err := unmarshalLLMObject(raw, &result); err != nil {
		return domain.RecommendationResult{}, err
	}
	if result.Products == nil && strings.TrimSpace(result.OverallReasoning) == "" {
		return domain.RecommendationResult{}, fmt.Errorf("%w: empty recommendation output", ErrGeneration)
	}
	return result, nil
}

// ParseStyleResult parsea la lista de sugerencias del LLM.
func (LLMResponseParser) ParseStyleResult(raw string) (domain.StyleSuggestionResult, error) {
	var result domain.StyleSuggestionResult
	if err := unmarshalLLMObject(raw, &result); err != nil {
		return domain.StyleSuggestionResult{}, err
	}
	return result, nil
}

// ParseSearchQuery parsea la consulta de catalogo derivada por el LLM en
// el paso de tool del flujo de recomendaciones.
func (LLMResponseParser) ParseSearchQuery(raw string) (string, error) {
	var wire struct {
		SearchQuery string `json:"searchQuery"`
	}
	if err := unmarshalLLMObject(raw, &wire); err != nil {
		return "", err
	}
	query := strings.TrimSpace(wire.SearchQuery)
	if query == "" {
		return "", fmt.Errorf("%w: empty search query", ErrGeneration)
	}
	return query, nil
}

// unmarshalLLMObject limpia fences y texto alrededor, extrae el primer
// objeto JSON balanceado y lo deserializa en out.
func unmarshalLLMObject(raw string, out any) error {
	cleaned := CleanLLMJSONResponse(raw)

	candidates := make([]string, 0, 3)
	if obj := extractFirstJSONObject(cleaned); obj != "" {
		candidates = append(candidates, obj)
	}
	if obj := extractFirstJSONObject(raw); obj != "" {
		candidates = append(candidates, obj)
	}
	candidates = append(candidates, cleaned)

	var lastErr error
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		err := json.Unmarshal([]byte(candidate), out)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no JSON object found")
	}
	return fmt.Errorf("%w: %v", ErrGeneration, lastErr)
}

// actionInputToString convierte el actionInput crudo a string: los
// strings JSON se des-quotean, los objetos se re-serializan compactos.
func actionInputToString(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	// Objeto o arreglo: re-serializar compacto valida el JSON de paso.
	var obj any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	encoded, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// CleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el
// contenido usable.
func CleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	reStart := regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	reEnd := regexp.MustCompile("(?is)\\s*```\\s*$")
	s = reStart.ReplaceAllString(s, "")
	s = reEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
