package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Responses se
// consume en orden, una por llamada; la ultima se repite si hay mas
// llamadas que respuestas.
type MockClient struct {
	Responses []string
	Err       error
	Prompts   []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	i := len(m.Prompts) - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// MockEmbedder devuelve un vector fijo para cualquier texto.
type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.Vector, m.Err
}
