package faq

import "strings"

// Entry es una pregunta frecuente con sus keywords de activacion.
type Entry struct {
	ID       string   `json:"id"`
	Keywords []string `json:"-"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// ContactInfo son los datos de contacto de soporte humano.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Hours string `json:"hours"`
}

// Entries devuelve la lista fija y ordenada de FAQs. El orden importa:
// el matcher es first-match-wins.
func Entries() []Entry {
	return entries
}

// Contact devuelve los datos de contacto de soporte.
func Contact() ContactInfo {
	return ContactInfo{
		Email: "support@stylebot.com",
		Phone: "1-800-STYLEBOT (1-800-789-5326)",
		Hours: "Monday-Friday, 9 AM - 5 PM EST",
	}
}

// Match recorre las FAQs en orden y devuelve la respuesta de la primera
// entrada cuyo keyword aparezca como substring del input. El input se
// compara en minusculas; no hay scoring de mejor coincidencia.
func Match(userInput string) (string, bool) {
	lower := strings.ToLower(userInput)
	for _, e := range entries {
		for _, kw := range e.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return e.Answer, true
			}
		}
	}
	return "", false
}

var entries = []Entry{
	{
		ID:       "faq1",
		Keywords: []string{"shipping", "delivery", "ship my order"},
		Question: "What are your shipping options?",
		Answer:   "We offer standard shipping (5-7 business days) and express shipping (2-3 business days). Shipping costs vary based on location and order size.",
	},
	{
		ID:       "faq2",
		Keywords: []string{"return policy", "return item", "exchange"},
		Question: "What is your return policy?",
		Answer:   "You can return most items within 30 days of purchase for a full refund or exchange. Items must be in new, unused condition with original tags. Some exclusions apply.",
	},
	{
		ID:       "faq3",
		Keywords: []string{"contact", "support", "customer service", "phone number", "email"},
		Question: "How can I contact customer support?",
		Answer:   "You can reach our customer support team via email at support@stylebot.com or by phone at 1-800-STYLEBOT (1-800-789-5326) during business hours (Monday-Friday, 9 AM - 5 PM EST).",
	},
	{
		ID:       "faq4",
		Keywords: []string{"payment", "payment methods", "credit card", "paypal"},
		Question: "What payment methods do you accept?",
		Answer:   "We accept all major credit cards (Visa, MasterCard, American Express, Discover) and PayPal.",
	},
	{
		ID:       "faq5",
		Keywords: []string{"size", "sizing chart", "fit guide"},
		Question: "Do you have a sizing chart?",
		Answer:   "Yes, you can find our comprehensive sizing chart on each product page and also under the 'Help' section on our website.",
	},
}
