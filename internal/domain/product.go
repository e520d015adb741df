package domain

// Product es un registro inmutable del catalogo.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}
