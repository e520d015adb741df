package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"stylebot/internal/domain"
)

// RecommendationPromptBuilder construye los prompts de los dos pasos del
// flujo de recomendaciones: derivar la consulta de catalogo y seleccionar
// productos del resultado.
type RecommendationPromptBuilder struct{}

// BuildSearchQueryPrompt pide al LLM una consulta corta de palabras clave
// para buscar en el catalogo.
func (RecommendationPromptBuilder) BuildSearchQueryPrompt(req domain.RecommendationRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a shopping assistant for an online fashion store. Derive a short keyword search query for the product catalog from the user's preferences.\n")
	sb.WriteString("Use only concrete product words (garment types, colors, styles, occasions). Do not include filler words.\n\n")

	sb.WriteString(fmt.Sprintf("User preferences: %s\n", req.UserPreferences))
	if strings.TrimSpace(req.PastBehavior) != "" {
		sb.WriteString(fmt.Sprintf("Past behavior: %s\n", req.PastBehavior))
	}

	sb.WriteString("\nRespond ONLY with a JSON object of the form {\"searchQuery\": \"...\"}.\n")

	return sb.String()
}

// BuildSelectionPrompt pide al LLM elegir productos de la lista hallada
// en el catalogo, con justificacion por producto y un razonamiento global.
func (RecommendationPromptBuilder) BuildSelectionPrompt(req domain.RecommendationRequest, products []domain.Product) string {
	var sb strings.Builder

	sb.WriteString("You are a shopping assistant for an online fashion store. From the catalog products below, pick the ones that best match the user's preferences.\n")
	sb.WriteString("Pick between 2 and 6 products. Use each product's name EXACTLY as written in the list. For each pick, give a short rationale tied to the user's preferences, and finish with an overall reasoning for the selection.\n\n")

	sb.WriteString(fmt.Sprintf("User preferences: %s\n", req.UserPreferences))
	if strings.TrimSpace(req.PastBehavior) != "" {
		sb.WriteString(fmt.Sprintf("Past behavior: %s\n", req.PastBehavior))
	}

	sb.WriteString("\nCatalog products:\n")
	for _, p := range products {
		entry, err := json.Marshal(struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Category    string   `json:"category"`
			Tags        []string `json:"tags,omitempty"`
			Price       float64  `json:"price"`
		}{p.Name, p.Description, p.Category, p.Tags, p.Price})
		if err != nil {
			continue
		}
		sb.WriteString("- ")
		sb.Write(entry)
		sb.WriteString("\n")
	}

	sb.WriteString("\nRespond ONLY with a JSON object of the form {\"products\": [{\"name\": \"...\", \"rationale\": \"...\"}], \"overallReasoning\": \"...\"}. Do not include image URLs or prices in the response.\n")

	return sb.String()
}
