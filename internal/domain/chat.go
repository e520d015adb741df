package domain

// TriggerAction es el descriptor de intencion que el responder puede
// devolver; solo el orquestador de sesion actua sobre el.
type TriggerAction string

const (
	TriggerFetchMoreProducts         TriggerAction = "fetch_more_products"
	TriggerFetchMoreStyleSuggestions TriggerAction = "fetch_more_style_suggestions"
)

// ChatTurn es la vista reducida de un mensaje que viaja como contexto al
// responder conversacional: sender/texto/tipo y, para cards, la solicitud
// original necesaria para follow-ups de "dame mas".
type ChatTurn struct {
	Sender                  MessageSender `json:"sender"`
	Text                    string        `json:"text,omitempty"`
	Kind                    MessageKind   `json:"type,omitempty"`
	OriginalUserPreferences string        `json:"originalUserPreferences,omitempty"`
	OriginalStyleRequest    *StyleRequest `json:"originalStyleRequest,omitempty"`
}

// ChatReply es la salida contractual del responder conversacional.
// AIResponse nunca es vacio en un reply valido.
type ChatReply struct {
	AIResponse    string        `json:"aiResponse"`
	TriggerAction TriggerAction `json:"triggerAction,omitempty"`
	ActionInput   string        `json:"actionInput,omitempty"`
}
