package domain

// FeatureKind identifica las funciones invocables del asistente.
type FeatureKind string

const (
	FeatureRecommendations FeatureKind = "recommendations"
	FeatureStyleAdvice     FeatureKind = "style_advice"
	FeatureFAQList         FeatureKind = "faq_list"
	FeatureContactInfo     FeatureKind = "contact_info"
	FeatureEscalation      FeatureKind = "escalate"
)

// FormRequest es el payload de un mensaje que pide al cliente mostrar un
// formulario para la funcion indicada.
type FormRequest struct {
	Feature FeatureKind `json:"feature"`
}

func (*FormRequest) PayloadKind() MessageKind { return KindFormRequest }
