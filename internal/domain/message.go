package domain

import "time"

// MessageSender identifica quien origino un mensaje dentro de la sesion.
type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderBot  MessageSender = "bot"
	SenderAI   MessageSender = "ai"
)

// MessageKind discrimina la variante de payload que carga un mensaje.
type MessageKind string

const (
	KindText                   MessageKind = "text"
	KindProductRecommendations MessageKind = "product_recommendations"
	KindStyleSuggestions       MessageKind = "style_suggestions"
	KindFormRequest            MessageKind = "form_request"
)

// Payload es la union etiquetada de resultados estructurados que puede
// cargar un mensaje. Solo los mensajes de tipo card llevan payload.
type Payload interface {
	PayloadKind() MessageKind
}

// RequestOrigin guarda la solicitud que produjo el payload de un mensaje.
// Exactamente uno de los campos tipados es no-nil segun Kind.
type RequestOrigin struct {
	Kind           MessageKind            `json:"kind"`
	Recommendation *RecommendationRequest `json:"recommendation,omitempty"`
	Style          *StyleRequest          `json:"style,omitempty"`
}

// Message es una entrada del historial de la sesion. El historial es
// append-only: un mensaje nunca se elimina, solo se resuelve en sitio
// (loading -> resuelto) identificado por su ID estable.
type Message struct {
	ID        string         `json:"id"`
	Sender    MessageSender  `json:"sender"`
	Kind      MessageKind    `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Payload   Payload        `json:"payload,omitempty"`
	Origin    *RequestOrigin `json:"origin,omitempty"`
	Loading   bool           `json:"loading,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HasUsableContext indica si el mensaje aporta contexto util para el
// responder conversacional: texto no vacio o un indicador de card.
func (m Message) HasUsableContext() bool {
	if m.Text != "" {
		return true
	}
	switch m.Kind {
	case KindProductRecommendations, KindStyleSuggestions, KindFormRequest:
		return true
	}
	return false
}
