package domain

import "testing"

func newSessionWithPlaceholder(t *testing.T) (*ChatSession, string) {
	t.Helper()
	session := NewChatSession("s1")
	session.Append(Message{ID: "m1", Sender: SenderUser, Kind: KindText, Text: "hola"})
	session.Append(Message{ID: "m2", Sender: SenderAI, Kind: KindText, Loading: true})
	return session, "m2"
}

func TestResolveText_IdempotentByID(t *testing.T) {
	session, id := newSessionWithPlaceholder(t)

	if !session.ResolveText(id, "first") {
		t.Fatalf("expected resolution to succeed")
	}
	if !session.ResolveText(id, "second") {
		t.Fatalf("expected second resolution to succeed")
	}

	messages := session.Messages()
	if len(messages) != 2 {
		t.Fatalf("double resolution must not duplicate the entry, got %d messages", len(messages))
	}
	got, _ := session.Get(id)
	if got.Text != "second" || got.Loading || got.Kind != KindText {
		t.Fatalf("expected latest state applied, got %+v", got)
	}
}

func TestResolvePayload_ThenResolveText(t *testing.T) {
	session, id := newSessionWithPlaceholder(t)

	payload := &StyleSuggestionResult{Suggestions: []string{"linen shirts"}}
	origin := &RequestOrigin{Kind: KindStyleSuggestions, Style: &StyleRequest{Preferences: "boho"}}
	if !session.ResolvePayload(id, payload, origin) {
		t.Fatalf("expected payload resolution to succeed")
	}
	if !session.ResolveText(id, "sorry, something went wrong") {
		t.Fatalf("expected text re-resolution to succeed")
	}

	messages := session.Messages()
	if len(messages) != 2 {
		t.Fatalf("re-resolution must not duplicate the entry, got %d messages", len(messages))
	}
	got, _ := session.Get(id)
	if got.Kind != KindText || got.Payload != nil || got.Origin != nil {
		t.Fatalf("expected plain text as latest state, got %+v", got)
	}
}

func TestResolveText_ThenResolvePayload(t *testing.T) {
	session, id := newSessionWithPlaceholder(t)

	if !session.ResolveText(id, "on it") {
		t.Fatalf("expected text resolution to succeed")
	}
	payload := &RecommendationResult{OverallReasoning: "denim works"}
	origin := &RequestOrigin{Kind: KindProductRecommendations, Recommendation: &RecommendationRequest{UserPreferences: "jeans"}}
	if !session.ResolvePayload(id, payload, origin) {
		t.Fatalf("expected payload re-resolution to succeed")
	}

	got, _ := session.Get(id)
	if got.Kind != KindProductRecommendations || got.Text != "" || got.Loading {
		t.Fatalf("expected card as latest state, got %+v", got)
	}
	if got.Payload != payload || got.Origin != origin {
		t.Fatalf("expected payload and origin attached, got %+v", got)
	}
	if len(session.Messages()) != 2 {
		t.Fatalf("re-resolution must not duplicate the entry")
	}
}

func TestResolve_UnknownIDReturnsFalse(t *testing.T) {
	session := NewChatSession("s1")

	if session.ResolveText("ghost", "nope") {
		t.Fatalf("resolving an unknown id must return false")
	}
	if session.ResolvePayload("ghost", &RecommendationResult{}, nil) {
		t.Fatalf("resolving an unknown id must return false")
	}
	if session.Fail("ghost", "nope") {
		t.Fatalf("failing an unknown id must return false")
	}
	if len(session.Messages()) != 0 {
		t.Fatalf("failed resolutions must not append messages")
	}
}
