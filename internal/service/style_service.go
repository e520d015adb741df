package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

// Fallback cuando el filtro de repetidos no deja ninguna idea nueva.
const styleFallbackSuggestion = "I've already shared my best ideas for this profile! ✨ Try adjusting your preferences or occasion in the Style Advice form for a fresh angle."

const maxFollowUpSuggestions = 3

// StyleService genera sugerencias de estilo personalizadas via LLM.
type StyleService struct {
	llmClient llm.Client
	builder   StylePromptBuilder
	parser    LLMResponseParser
	logger    *zap.Logger
}

func NewStyleService(llmClient llm.Client, logger *zap.Logger) *StyleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StyleService{llmClient: llmClient, logger: logger}
}

// Advise pide sugerencias al LLM y hace cumplir el contrato: nunca lista
// vacia, y con PreviousSuggestions presentes las sugerencias devueltas
// son distintas bit a bit de las anteriores (2-3 nuevas, o un unico
// fallback explicativo si no queda nada nuevo).
func (s *StyleService) Advise(ctx context.Context, req domain.StyleRequest) (domain.StyleSuggestionResult, error) {
	prompt := s.builder.BuildStylePrompt(req)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return domain.StyleSuggestionResult{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	result, err := s.parser.ParseStyleResult(raw)
	if err != nil {
		return domain.StyleSuggestionResult{}, err
	}

	suggestions := dropBlank(result.Suggestions)
	if len(req.PreviousSuggestions) > 0 {
		suggestions = dropRepeats(suggestions, req.PreviousSuggestions)
		if len(suggestions) > maxFollowUpSuggestions {
			suggestions = suggestions[:maxFollowUpSuggestions]
		}
	}

	if len(suggestions) == 0 {
		s.logger.Info("style advise produced no new suggestions, using fallback",
			zap.Int("previous", len(req.PreviousSuggestions)))
		suggestions = []string{styleFallbackSuggestion}
	}

	return domain.StyleSuggestionResult{Suggestions: suggestions}, nil
}

func dropBlank(suggestions []string) []string {
	out := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		if strings.TrimSpace(sg) != "" {
			out = append(out, sg)
		}
	}
	return out
}

// dropRepeats descarta sugerencias identicas bit a bit a alguna previa.
func dropRepeats(suggestions, previous []string) []string {
	seen := make(map[string]bool, len(previous))
	for _, prev := range previous {
		seen[prev] = true
	}
	out := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		if !seen[sg] {
			out = append(out, sg)
		}
	}
	return out
}
