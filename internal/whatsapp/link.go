package whatsapp

import (
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://wa.me/"

// Template is a predefined message a user can start from.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

var templates = []Template{
	{ID: "custom", Name: "✍️ Mensaje personalizado", Text: ""},
	{ID: "intro", Name: "👋 Presentación de negocio", Text: "¡Hola! Soy [Tu Nombre] de [Tu Negocio]. Ofrecemos [producto/servicio]. ¿Te gustaría conocer más?"},
	{ID: "catalog", Name: "📋 Solicitar catálogo", Text: "Hola, me gustaría recibir su catálogo de productos y precios. ¡Gracias!"},
	{ID: "quote", Name: "💰 Consulta de precio", Text: "Hola, quisiera consultar el precio de [producto/servicio]. ¿Podrías enviarme información?"},
	{ID: "order", Name: "🛒 Hacer un pedido", Text: "Hola, me gustaría hacer un pedido de [producto]. ¿Cuál es el proceso?"},
	{ID: "appointment", Name: "📅 Agendar cita", Text: "Hola, quisiera agendar una cita para [servicio]. ¿Qué disponibilidad tienen?"},
	{ID: "info", Name: "ℹ️ Más información", Text: "Hola, me gustaría obtener más información sobre sus productos/servicios."},
	{ID: "promo", Name: "🎁 Promociones actuales", Text: "¡Hola! Vi que tienen promociones. ¿Podrían contarme más sobre las ofertas actuales?"},
}

// Templates returns a copy of the predefined message templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID looks up a template by id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// CleanPhone keeps only the ASCII digits of phone.
func CleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

// BuildLink returns a wa.me link for phone with an optional prefilled
// message. It returns "" when phone is empty.
func BuildLink(phone, message string) string {
	if phone == "" {
		return ""
	}

	link := baseURL + CleanPhone(phone)
	if message != "" {
		link += "?text=" + encodeURIComponent(message)
	}
	return link
}

// encodeURIComponent escapes s like the browser function of the same name:
// spaces become %20 and !'()*-._~ are kept.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")

	r := strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
	return r.Replace(escaped)
}
