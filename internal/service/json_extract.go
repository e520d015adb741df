package service

import "strings"

// extractFirstJSONObject devuelve el primer objeto JSON balanceado dentro
// del texto, o cadena vacia si no hay ninguno completo. Las llaves dentro
// de strings JSON (incluyendo escapes) no cuentan para el balanceo, asi
// que el texto libre que el LLM agregue alrededor del objeto no afecta la
// extraccion.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	// Objeto sin cerrar: no hay nada rescatable.
	return ""
}
