package catalog

import (
	"context"
	"strings"
	"time"

	"stylebot/internal/domain"
)

// MaxResults acota el tamano de una respuesta de busqueda.
const MaxResults = 15

// Provider define el contrato de consulta del catalogo.
type Provider interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// InMemoryProvider sirve el catalogo estatico sembrado en memoria.
// Es puro salvo una latencia simulada que respeta la cancelacion del
// contexto.
type InMemoryProvider struct {
	products []domain.Product
	latency  time.Duration
}

// NewInMemoryProvider crea un provider con los productos dados; con nil
// usa el catalogo por defecto.
func NewInMemoryProvider(products []domain.Product, latency time.Duration) *InMemoryProvider {
	if products == nil {
		products = DefaultProducts()
	}
	return &InMemoryProvider{products: products, latency: latency}
}

// Search devuelve los productos que contienen al menos un token de la
// consulta (substring case-insensitive, semantica OR) en nombre,
// descripcion, categoria o tags, en orden de catalogo y con tope de
// MaxResults. Sin consulta devuelve el catalogo completo.
func (p *InMemoryProvider) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	keywords := QueryKeywords(query)
	if len(keywords) == 0 {
		out := make([]domain.Product, len(p.products))
		copy(out, p.products)
		return out, nil
	}

	var out []domain.Product
	for _, prod := range p.products {
		if MatchesKeywords(prod, keywords) {
			out = append(out, prod)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out, nil
}

// QueryKeywords tokeniza la consulta en palabras clave en minusculas,
// descartando tokens de un solo caracter. A lo sumo MaxResults keywords
// para acotar consultas patologicamente largas.
func QueryKeywords(query string) []string {
	var keywords []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if len(tok) > 1 {
			keywords = append(keywords, tok)
			if len(keywords) == MaxResults {
				break
			}
		}
	}
	return keywords
}

// MatchesKeywords reporta si algun keyword aparece en los campos de
// texto del producto.
func MatchesKeywords(p domain.Product, keywords []string) bool {
	haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category + " " + strings.Join(p.Tags, " "))
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
