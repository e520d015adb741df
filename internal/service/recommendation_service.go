package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stylebot/internal/catalog"
	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

const maxRecommendedProducts = 6

// Razonamiento devuelto cuando la busqueda de catalogo no encuentra nada.
// Un catalogo sin coincidencias es un resultado valido, no un error.
const emptyCatalogReasoning = "I couldn't find products in our catalog matching those preferences right now. 😔 Try describing what you're looking for with different words, or ask me for style advice instead!"

// SemanticSearcher busca productos por cercania de embeddings cuando la
// busqueda por keywords no encuentra nada.
type SemanticSearcher interface {
	SemanticSearch(ctx context.Context, query string, k int) ([]domain.Product, error)
}

// RecommendationService implementa el flujo de recomendaciones en dos
// pasos: el LLM deriva una consulta de catalogo, el servicio la ejecuta,
// y el LLM selecciona productos del resultado. El LLM nunca busca por si
// mismo ni inventa productos: la seleccion se valida contra lo hallado.
type RecommendationService struct {
	llmClient llm.Client
	catalog   catalog.Provider
	semantic  SemanticSearcher
	builder   RecommendationPromptBuilder
	parser    LLMResponseParser
	logger    *zap.Logger
}

func NewRecommendationService(llmClient llm.Client, provider catalog.Provider, logger *zap.Logger) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{llmClient: llmClient, catalog: provider, logger: logger}
}

// WithSemanticSearch instala la busqueda semantica de respaldo.
func (s *RecommendationService) WithSemanticSearch(searcher SemanticSearcher) *RecommendationService {
	s.semantic = searcher
	return s
}

// Recommend ejecuta el flujo completo para las preferencias dadas.
func (s *RecommendationService) Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationResult, error) {
	query := s.deriveSearchQuery(ctx, req)

	products, err := s.catalog.Search(ctx, query)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("catalog search: %w", err)
	}
	if len(products) == 0 && s.semantic != nil {
		found, serr := s.semantic.SemanticSearch(ctx, query, maxRecommendedProducts)
		if serr != nil {
			s.logger.Warn("semantic search fallback failed", zap.Error(serr))
		} else {
			products = found
		}
	}
	if len(products) == 0 {
		s.logger.Info("catalog search returned no products", zap.String("query", query))
		return domain.RecommendationResult{
			Products:         []domain.RecommendedProduct{},
			OverallReasoning: emptyCatalogReasoning,
		}, nil
	}

	raw, err := s.llmClient.Generate(ctx, s.builder.BuildSelectionPrompt(req, products))
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	result, err := s.parser.ParseRecommendationResult(raw)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	return s.validateSelection(result, products), nil
}

// deriveSearchQuery pide al LLM la consulta de catalogo; si el paso
// falla, las preferencias crudas sirven de consulta.
func (s *RecommendationService) deriveSearchQuery(ctx context.Context, req domain.RecommendationRequest) string {
	raw, err := s.llmClient.Generate(ctx, s.builder.BuildSearchQueryPrompt(req))
	if err == nil {
		query, perr := s.parser.ParseSearchQuery(raw)
		if perr == nil {
			return query
		}
		err = perr
	}
	s.logger.Warn("search query derivation failed, falling back to raw preferences", zap.Error(err))
	return req.UserPreferences
}

// validateSelection hace cumplir el contrato de la seleccion: solo
// productos presentes en el resultado de catalogo, imageUrl tomado del
// catalogo y nunca del modelo, sin duplicados, y a lo sumo seis. Si el
// modelo no selecciono nada valido, los primeros hallazgos del catalogo
// sirven de seleccion.
func (s *RecommendationService) validateSelection(result domain.RecommendationResult, products []domain.Product) domain.RecommendationResult {
	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byName[strings.ToLower(strings.TrimSpace(p.Name))] = p
	}

	validated := make([]domain.RecommendedProduct, 0, len(result.Products))
	seen := make(map[string]bool, len(result.Products))
	for _, rec := range result.Products {
		key := strings.ToLower(strings.TrimSpace(rec.Name))
		p, ok := byName[key]
		if !ok {
			s.logger.Warn("dropping recommended product not present in catalog results", zap.String("name", rec.Name))
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		validated = append(validated, domain.RecommendedProduct{
			Name:      p.Name,
			Rationale: rec.Rationale,
			ImageURL:  p.ImageURL,
		})
		if len(validated) == maxRecommendedProducts {
			break
		}
	}

	if len(validated) == 0 {
		s.logger.Warn("model selection had no valid products, using top catalog results")
		for _, p := range products {
			validated = append(validated, domain.RecommendedProduct{
				Name:      p.Name,
				Rationale: "A close match for your preferences from our catalog.",
				ImageURL:  p.ImageURL,
			})
			if len(validated) == 3 {
				break
			}
		}
	}

	reasoning := strings.TrimSpace(result.OverallReasoning)
	if reasoning == "" {
		reasoning = "These picks follow your preferences most closely. 🛍️"
	}

	return domain.RecommendationResult{Products: validated, OverallReasoning: reasoning}
}
