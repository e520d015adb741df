package service

import (
	"fmt"
	"strings"

	"stylebot/internal/domain"
)

// StylePromptBuilder construye el prompt del asesor de estilo.
type StylePromptBuilder struct{}

// BuildStylePrompt arma el prompt completo que se envia al LLM.
func (StylePromptBuilder) BuildStylePrompt(req domain.StyleRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a personal stylist. Based on the user's skin tone, style preferences, gender, and current trends, provide personalized style suggestions.\n")
	sb.WriteString("Tailor your advice to the provided gender (different items or styles for 'male' or 'female', neutral and versatile options for 'other'), always respecting the user's overall style preferences.\n")
	sb.WriteString("Make the suggestions engaging with relevant emojis where appropriate (e.g. ✨, 🎨, 👗, 👖, 👠, 👔, 👟).\n")
	sb.WriteString("Each suggestion must be a concise piece of advice. When a suggestion names a specific color, embed it as an inline marker of the exact form {color:<Name>:<hex-or-css-color>}, for example {color:Forest Green:#228B22}.\n\n")

	sb.WriteString(fmt.Sprintf("Skin Tone: %s\n", req.SkinTone))
	sb.WriteString(fmt.Sprintf("Preferences: %s\n", req.Preferences))
	sb.WriteString(fmt.Sprintf("Gender: %s\n", req.Gender))
	if strings.TrimSpace(req.Occasion) != "" {
		sb.WriteString(fmt.Sprintf("Occasion: %s\n", req.Occasion))
	}
	if strings.TrimSpace(req.CurrentTrends) != "" {
		sb.WriteString(fmt.Sprintf("Current Trends: %s\n", req.CurrentTrends))
	}

	if len(req.PreviousSuggestions) > 0 {
		sb.WriteString("\nThe user already received the suggestions below and is asking for MORE ideas.\n")
		sb.WriteString("Provide 2-3 NEW suggestions, each clearly distinct from every previous one:\n")
		for _, prev := range req.PreviousSuggestions {
			sb.WriteString(fmt.Sprintf("- %s\n", prev))
		}
		sb.WriteString("If no genuinely new idea exists for this profile, return exactly one suggestion explaining that you have covered the best options already.\n")
	}

	sb.WriteString("\nRespond ONLY with a JSON object of the form {\"suggestions\": [\"...\", \"...\"]}.\n")

	return sb.String()
}
