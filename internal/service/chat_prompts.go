package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"stylebot/internal/domain"
)

// ChatPromptBuilder construye el prompt del responder conversacional.
type ChatPromptBuilder struct{}

// BuildChatPrompt arma el prompt con la persona del asistente, el
// historial reciente y el mensaje actual del usuario.
func (ChatPromptBuilder) BuildChatPrompt(userInput string, history []domain.ChatTurn) string {
	var sb strings.Builder

	sb.WriteString("You are Vision, the friendly, cool, confident and knowledgeable AI shopping assistant of StyleBot, an online fashion store.\n")
	sb.WriteString("You help users find products, give style advice and answer questions about the store. Keep replies warm, positive and sprinkled with a fitting emoji.\n")
	sb.WriteString("If the user wants product recommendations or style advice and has not filled a form yet, guide them to use the corresponding option instead of inventing results.\n\n")

	sb.WriteString("Response style rules:\n")
	sb.WriteString("- Keep general conversational replies very concise and to the point; default to brevity for simple exchanges.\n")
	sb.WriteString("- For detailed style advice, open with an engaging title, use bold sub-headings per idea, and leave a blank line between bullet points.\n")
	sb.WriteString("- Use emojis to enhance titles and calls to action; more sparingly in quick chat.\n")
	sb.WriteString("- End replies with a friendly call to action, and when it feels natural, briefly mention another feature you offer.\n\n")

	sb.WriteString("If the user seems sad or distressed:\n")
	sb.WriteString("- Be extra gentle and empathetic; acknowledge their feelings kindly and briefly.\n")
	sb.WriteString("- Do not give advice outside of fashion. Offer a short kind sentiment and, if it fits, gently offer one of your features as a positive distraction.\n")
	sb.WriteString("- If deep distress continues, politely state your limits: you are best at fashion and style, and for serious concerns talking to a friend or a professional would help more.\n\n")

	sb.WriteString("You can request follow-up actions, but ONLY when the conversation history contains the matching earlier request:\n")
	sb.WriteString("- If the user asks for MORE products after a product recommendation, set triggerAction to \"fetch_more_products\" and actionInput to the original user preferences string from that recommendation.\n")
	sb.WriteString("- If the user asks for MORE style ideas after style suggestions, set triggerAction to \"fetch_more_style_suggestions\" and actionInput to the original style request object.\n")
	sb.WriteString("Never set a triggerAction when no earlier matching request exists in the history; in that case point the user to the right form instead.\n\n")

	if len(history) > 0 {
		sb.WriteString("Conversation history (oldest first):\n")
		for _, turn := range history {
			writeChatTurn(&sb, turn)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("User message: %s\n\n", userInput))
	sb.WriteString("Respond ONLY with a JSON object of the form {\"aiResponse\": \"...\", \"triggerAction\": \"...\", \"actionInput\": \"...\"}. Omit triggerAction and actionInput when no follow-up action applies.\n")

	return sb.String()
}

func writeChatTurn(sb *strings.Builder, turn domain.ChatTurn) {
	label := "Assistant"
	if turn.Sender == domain.SenderUser {
		label = "User"
	}

	switch turn.Kind {
	case domain.KindProductRecommendations:
		sb.WriteString(fmt.Sprintf("%s: [showed product recommendations for preferences: %q]\n", label, turn.OriginalUserPreferences))
	case domain.KindStyleSuggestions:
		if turn.OriginalStyleRequest != nil {
			encoded, err := json.Marshal(turn.OriginalStyleRequest)
			if err == nil {
				sb.WriteString(fmt.Sprintf("%s: [showed style suggestions for request: %s]\n", label, encoded))
				return
			}
		}
		sb.WriteString(fmt.Sprintf("%s: [showed style suggestions]\n", label))
	case domain.KindFormRequest:
		sb.WriteString(fmt.Sprintf("%s: [opened a form for the user]\n", label))
	default:
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, turn.Text))
	}
}
