package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para avisos de escalada a soporte humano.
type Sender interface {
	SendEscalationNotice(ctx context.Context, sessionID, reason string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendEscalationNotice(_ context.Context, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
