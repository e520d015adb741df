package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

func TestChatRespond_PlainTextReply(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"Hi there! How can I help? 😊"}`}}
	svc := NewChatService(mock, nil)

	reply, err := svc.Respond(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.AIResponse != "Hi there! How can I help? 😊" {
		t.Fatalf("unexpected response: %q", reply.AIResponse)
	}
	if reply.TriggerAction != "" {
		t.Fatalf("unexpected trigger: %q", reply.TriggerAction)
	}
}

func TestChatRespond_TriggerUsesOriginalPreferences(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"Sure, more coming up!","triggerAction":"fetch_more_products","actionInput":"whatever the model made up"}`}}
	svc := NewChatService(mock, nil)

	history := []domain.ChatTurn{
		{Sender: domain.SenderUser, Text: "I want summer dresses"},
		{Sender: domain.SenderAI, Kind: domain.KindProductRecommendations, OriginalUserPreferences: "casual summer dresses"},
	}

	reply, err := svc.Respond(context.Background(), "show me more", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.TriggerAction != domain.TriggerFetchMoreProducts {
		t.Fatalf("expected fetch_more_products trigger, got %q", reply.TriggerAction)
	}
	if reply.ActionInput != "casual summer dresses" {
		t.Fatalf("expected original preferences as action input, got %q", reply.ActionInput)
	}
}

func TestChatRespond_TriggerPicksMostRecentRecommendation(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"More on the way!","triggerAction":"fetch_more_products"}`}}
	svc := NewChatService(mock, nil)

	history := []domain.ChatTurn{
		{Sender: domain.SenderAI, Kind: domain.KindProductRecommendations, OriginalUserPreferences: "winter coats"},
		{Sender: domain.SenderUser, Text: "nice, now something lighter"},
		{Sender: domain.SenderAI, Kind: domain.KindProductRecommendations, OriginalUserPreferences: "light spring jackets"},
	}

	reply, err := svc.Respond(context.Background(), "more please", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.ActionInput != "light spring jackets" {
		t.Fatalf("expected most recent preferences, got %q", reply.ActionInput)
	}
}

func TestChatRespond_TriggerWithoutPriorRequestIsDropped(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"","triggerAction":"fetch_more_products"}`}}
	svc := NewChatService(mock, nil)

	reply, err := svc.Respond(context.Background(), "show me more products", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.TriggerAction != "" || reply.ActionInput != "" {
		t.Fatalf("expected trigger stripped, got %+v", reply)
	}
	if reply.AIResponse != chatRedirectToRecommendations {
		t.Fatalf("expected redirect text, got %q", reply.AIResponse)
	}
}

func TestChatRespond_StyleTriggerCarriesOriginalRequest(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"","triggerAction":"fetch_more_style_suggestions"}`}}
	svc := NewChatService(mock, nil)

	original := &domain.StyleRequest{SkinTone: "fair", Preferences: "boho", Gender: domain.GenderFemale}
	history := []domain.ChatTurn{
		{Sender: domain.SenderAI, Kind: domain.KindStyleSuggestions, OriginalStyleRequest: original},
	}

	reply, err := svc.Respond(context.Background(), "more ideas", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.TriggerAction != domain.TriggerFetchMoreStyleSuggestions {
		t.Fatalf("expected style trigger, got %q", reply.TriggerAction)
	}
	var got domain.StyleRequest
	if err := json.Unmarshal([]byte(reply.ActionInput), &got); err != nil {
		t.Fatalf("action input is not a style request: %v", err)
	}
	if got.SkinTone != "fair" || got.Preferences != "boho" || got.Gender != domain.GenderFemale {
		t.Fatalf("unexpected chained request: %+v", got)
	}
	if reply.AIResponse != chatAckMoreSuggestions {
		t.Fatalf("expected synthesized acknowledgement, got %q", reply.AIResponse)
	}
}

func TestChatRespond_StyleChainSerializationFailureIsPlainError(t *testing.T) {
	marshalChainedStyleRequest = func(any) ([]byte, error) { return nil, errors.New("boom") }
	defer func() { marshalChainedStyleRequest = json.Marshal }()

	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"More ideas coming!","triggerAction":"fetch_more_style_suggestions"}`}}
	svc := NewChatService(mock, nil)

	history := []domain.ChatTurn{
		{Sender: domain.SenderAI, Kind: domain.KindStyleSuggestions, OriginalStyleRequest: &domain.StyleRequest{Preferences: "boho"}},
	}

	reply, err := svc.Respond(context.Background(), "more ideas", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.TriggerAction != "" || reply.ActionInput != "" {
		t.Fatalf("expected trigger stripped on serialization failure, got %+v", reply)
	}
	if reply.AIResponse != chatStyleChainFailure {
		t.Fatalf("expected plain error reply, got %q", reply.AIResponse)
	}
}

func TestChatRespond_EmptyModelOutputFallsBack(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":""}`}}
	svc := NewChatService(mock, nil)

	reply, err := svc.Respond(context.Background(), "???", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.AIResponse != chatFallbackMessage {
		t.Fatalf("expected fallback message, got %q", reply.AIResponse)
	}
}

func TestChatRespond_FencedJSONAccepted(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"```json\n{\"aiResponse\":\"Hello! 👋\"}\n```"}}
	svc := NewChatService(mock, nil)

	reply, err := svc.Respond(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.AIResponse != "Hello! 👋" {
		t.Fatalf("unexpected response: %q", reply.AIResponse)
	}
}

func TestChatRespond_GenerateErrorWrapped(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("timeout")}
	svc := NewChatService(mock, nil)

	_, err := svc.Respond(context.Background(), "hello", nil)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestChatRespond_HistoryEmbeddedInPrompt(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"aiResponse":"ok"}`}}
	svc := NewChatService(mock, nil)

	history := []domain.ChatTurn{
		{Sender: domain.SenderUser, Text: "do you ship internationally?"},
		{Sender: domain.SenderBot, Text: "Yes, we ship worldwide."},
	}
	if _, err := svc.Respond(context.Background(), "great", history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(mock.Prompts))
	}
	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, "do you ship internationally?") || !strings.Contains(prompt, "Yes, we ship worldwide.") {
		t.Fatalf("expected history embedded in prompt")
	}
	if !strings.Contains(prompt, "User message: great") {
		t.Fatalf("expected current message embedded in prompt")
	}
}
