package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stylebot/internal/catalog"
	"stylebot/internal/config"
	"stylebot/internal/domain"
	"stylebot/internal/llm"
	"stylebot/internal/repository"
	"stylebot/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, cfg.LLMTimeout, logger)
	provider := catalog.NewInMemoryProvider(nil, 0)

	chatSvc := service.NewChatService(llmClient, logger)
	recSvc := service.NewRecommendationService(llmClient, provider, logger)
	styleSvc := service.NewStyleService(llmClient, logger)
	store := repository.NewInMemorySessionStore(0)
	sessionSvc := service.NewSessionService(store, chatSvc, recSvc, styleSvc, logger)

	session, err := sessionSvc.StartSession(ctx)
	if err != nil {
		log.Fatal(err)
	}

	printNewMessages(session.Messages(), 0)
	shown := len(session.Messages())

	fmt.Println("---- StyleBot (escribe 'salir' para terminar, ':rec' o ':style' para formularios) ----")
	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Hasta pronto!")
			return
		}

		var messages []domain.Message
		switch text {
		case ":rec":
			messages, err = recommendationFlow(ctx, reader, sessionSvc, session.ID)
		case ":style":
			messages, err = styleFlow(ctx, reader, sessionSvc, session.ID)
		default:
			messages, err = sessionSvc.HandleUserMessage(ctx, session.ID, text)
		}
		if err != nil {
			if errors.Is(err, service.ErrSessionBusy) {
				fmt.Println("El asistente sigue trabajando, espera un momento.")
				continue
			}
			fmt.Printf("error: %v\n", err)
			continue
		}

		printNewMessages(messages, shown)
		shown = len(messages)
	}
}

func recommendationFlow(ctx context.Context, reader *bufio.Reader, svc *service.SessionService, sessionID string) ([]domain.Message, error) {
	fmt.Print("Que estas buscando?: ")
	prefs, _ := reader.ReadString('\n')
	prefs = strings.TrimSpace(prefs)
	if prefs == "" {
		return nil, errors.New("preferencias vacias")
	}
	return svc.SubmitRecommendationForm(ctx, sessionID, domain.RecommendationRequest{UserPreferences: prefs})
}

func styleFlow(ctx context.Context, reader *bufio.Reader, svc *service.SessionService, sessionID string) ([]domain.Message, error) {
	fmt.Print("Tono de piel: ")
	skinTone, _ := reader.ReadString('\n')
	fmt.Print("Preferencias de estilo: ")
	prefs, _ := reader.ReadString('\n')
	fmt.Print("Genero (male/female/other): ")
	genderStr, _ := reader.ReadString('\n')

	gender, err := domain.ParseGender(strings.TrimSpace(genderStr))
	if err != nil {
		return nil, err
	}
	return svc.SubmitStyleForm(ctx, sessionID, domain.StyleRequest{
		SkinTone:    strings.TrimSpace(skinTone),
		Preferences: strings.TrimSpace(prefs),
		Gender:      gender,
	})
}

// printNewMessages imprime los mensajes agregados desde la ultima vuelta.
func printNewMessages(messages []domain.Message, from int) {
	for _, msg := range messages[from:] {
		if msg.Sender == domain.SenderUser {
			continue
		}
		switch msg.Kind {
		case domain.KindProductRecommendations:
			printRecommendations(msg)
		case domain.KindStyleSuggestions:
			printStyleSuggestions(msg)
		default:
			fmt.Printf("Vision > %s\n", msg.Text)
		}
	}
}

func printRecommendations(msg domain.Message) {
	result, ok := msg.Payload.(*domain.RecommendationResult)
	if !ok {
		return
	}
	fmt.Println("Vision > Te recomiendo:")
	for _, p := range result.Products {
		fmt.Printf("  - %s: %s\n", p.Name, p.Rationale)
	}
	fmt.Printf("  %s\n", result.OverallReasoning)
}

func printStyleSuggestions(msg domain.Message) {
	result, ok := msg.Payload.(*domain.StyleSuggestionResult)
	if !ok {
		return
	}
	fmt.Println("Vision > Ideas de estilo:")
	for _, sg := range result.Suggestions {
		fmt.Printf("  - %s\n", sg)
	}
}
