package domain

// RecommendationRequest son las preferencias que el usuario envia para
// pedir recomendaciones. PastBehavior es un campo legado opcional.
type RecommendationRequest struct {
	UserPreferences string `json:"userPreferences"`
	PastBehavior    string `json:"pastBehavior,omitempty"`
}

// RecommendedProduct es un item elegido del catalogo con su justificacion.
// ImageURL se omite cuando el registro del catalogo no traia imagen.
type RecommendedProduct struct {
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// RecommendationResult es el resultado inmutable de una solicitud de
// recomendaciones; queda referenciado por el mensaje que lo muestra.
type RecommendationResult struct {
	Products         []RecommendedProduct `json:"products"`
	OverallReasoning string               `json:"overallReasoning"`
}

func (*RecommendationResult) PayloadKind() MessageKind { return KindProductRecommendations }
