package domain

import (
	"sync"
	"time"
)

// ChatSession es el estado de una conversacion: un log append-only de
// mensajes mas un flag de ocupado. Vive solo en memoria durante la vida
// del proceso; no hay persistencia. Toda mutacion pasa por las
// transiciones Append / ResolveText / ResolvePayload / Fail.
type ChatSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu       sync.Mutex
	messages []Message
	index    map[string]int
	busy     bool
}

// NewChatSession crea una sesion vacia con el ID dado.
func NewChatSession(id string) *ChatSession {
	return &ChatSession{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		index:     make(map[string]int),
	}
}

// Append agrega un mensaje al final del historial. Los mensajes se
// agregan en estricto orden de inicio de llamada.
func (s *ChatSession) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index[msg.ID] = len(s.messages)
	s.messages = append(s.messages, msg)
}

// ResolveText resuelve en sitio un placeholder a mensaje de texto plano.
// Es idempotente por ID: resolver dos veces aplica el ultimo estado sin
// duplicar la entrada en el historial.
func (s *ChatSession) ResolveText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.messages[i].Kind = KindText
	s.messages[i].Text = text
	s.messages[i].Payload = nil
	s.messages[i].Origin = nil
	s.messages[i].Loading = false
	return true
}

// ResolvePayload resuelve un placeholder con su resultado estructurado y
// la solicitud que lo produjo (back-reference para follow-ups).
func (s *ChatSession) ResolvePayload(id string, payload Payload, origin *RequestOrigin) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.messages[i].Kind = payload.PayloadKind()
	s.messages[i].Text = ""
	s.messages[i].Payload = payload
	s.messages[i].Origin = origin
	s.messages[i].Loading = false
	return true
}

// Fail resuelve un placeholder a un mensaje de texto con la explicacion
// del error. Mismo contrato de idempotencia que ResolveText.
func (s *ChatSession) Fail(id, text string) bool {
	return s.ResolveText(id, text)
}

// Get devuelve una copia del mensaje con el ID dado.
func (s *ChatSession) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Message{}, false
	}
	return s.messages[i], true
}

// Messages devuelve una copia del historial completo en orden.
func (s *ChatSession) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Tail devuelve una copia de los ultimos n mensajes.
func (s *ChatSession) Tail(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.messages) == 0 {
		return nil
	}
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// TryBegin intenta tomar el flag de ocupado de la sesion. Devuelve false
// si ya hay una peticion de nivel superior en vuelo; no se encolan
// peticiones adicionales.
func (s *ChatSession) TryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// End libera el flag de ocupado.
func (s *ChatSession) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy reporta si hay una peticion en vuelo.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
