package domain

import (
	"fmt"
	"strings"
)

// Gender acota las identidades aceptadas por el asesor de estilo.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender normaliza y valida el genero recibido por la API.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	}
	return "", fmt.Errorf("invalid gender %q", s)
}

// StyleRequest es el perfil que alimenta al asesor de estilo.
// PreviousSuggestions llega solo en pedidos de "mas ideas" y obliga a que
// las nuevas sugerencias sean distintas de las anteriores.
type StyleRequest struct {
	SkinTone            string   `json:"skinTone"`
	Preferences         string   `json:"preferences"`
	Gender              Gender   `json:"gender"`
	Occasion            string   `json:"occasion,omitempty"`
	CurrentTrends       string   `json:"currentTrends,omitempty"`
	PreviousSuggestions []string `json:"previousSuggestions,omitempty"`
}

// StyleSuggestionResult es la lista ordenada de sugerencias devuelta por
// el asesor. Nunca es vacia: sin ideas nuevas se devuelve un fallback.
type StyleSuggestionResult struct {
	Suggestions []string `json:"suggestions"`
}

func (*StyleSuggestionResult) PayloadKind() MessageKind { return KindStyleSuggestions }
