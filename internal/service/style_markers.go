package service

import "regexp"

// SegmentKind discrimina las unidades renderizables de una sugerencia.
type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentColor SegmentKind = "color"
)

// SuggestionSegment es una unidad renderizable: texto plano verbatim o
// un swatch de color con nombre y valor (hex o color con nombre CSS).
type SuggestionSegment struct {
	Kind       SegmentKind `json:"kind"`
	Text       string      `json:"text,omitempty"`
	ColorName  string      `json:"colorName,omitempty"`
	ColorValue string      `json:"colorValue,omitempty"`
}

// Acepta hex de 6 digitos o colores con nombre.
var colorMarkerRe = regexp.MustCompile(`\{color:([^:{}]+):(#[0-9A-Fa-f]{6}|[a-zA-Z]+)\}`)

// ParseSuggestionSegments divide una sugerencia en segmentos ordenados,
// preservando el texto alrededor de cada marker {color:<nombre>:<valor>}
// verbatim. Maneja cero, uno o varios markers; los markers malformados
// quedan como texto plano.
func ParseSuggestionSegments(suggestion string) []SuggestionSegment {
	if suggestion == "" {
		return nil
	}

	matches := colorMarkerRe.FindAllStringSubmatchIndex(suggestion, -1)
	if len(matches) == 0 {
		return []SuggestionSegment{{Kind: SegmentText, Text: suggestion}}
	}

	var segments []SuggestionSegment
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, SuggestionSegment{Kind: SegmentText, Text: suggestion[last:m[0]]})
		}
		segments = append(segments, SuggestionSegment{
			Kind:       SegmentColor,
			ColorName:  suggestion[m[2]:m[3]],
			ColorValue: suggestion[m[4]:m[5]],
		})
		last = m[1]
	}
	if last < len(suggestion) {
		segments = append(segments, SuggestionSegment{Kind: SegmentText, Text: suggestion[last:]})
	}
	return segments
}
