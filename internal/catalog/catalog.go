package catalog

// Tool is an entry of the dashboard.
type Tool struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Ready       bool   `json:"is_ready"`
}

var tools = []Tool{
	{ID: "margin", Icon: "💰", Title: "Calculadora Margen", Description: "Calcula el precio de venta exacto para ganar dinero.", Path: "/api/margin", Ready: true},
	{ID: "markup", Icon: "📈", Title: "Calculadora Recargo", Description: "Suma un porcentaje sobre el costo y compáralo con el margen.", Path: "/api/markup", Ready: true},
	{ID: "discount", Icon: "🏷️", Title: "Calculadora Ofertas", Description: "Define descuentos sin perder dinero.", Path: "/api/discount", Ready: true},
	{ID: "breakeven", Icon: "⚖️", Title: "Punto de Equilibrio", Description: "Descubre cuánto necesitas vender para cubrir tus costos.", Path: "/api/breakeven", Ready: true},
	{ID: "pricing", Icon: "🏭", Title: "Calculadora de Precios", Description: "Precio de venta para fabricantes y revendedores.", Path: "/api/pricing/{mode}", Ready: true},
	{ID: "quote", Icon: "📄", Title: "Cotizador Express", Description: "Crea presupuestos formales en segundos.", Path: "/api/quote", Ready: true},
	{ID: "whatsapp", Icon: "💬", Title: "Link WhatsApp", Description: "Genera enlaces directos a WhatsApp.", Path: "/api/whatsapp", Ready: true},
	{ID: "pass", Icon: "🔐", Title: "Generar Claves", Description: "Crea contraseñas seguras y aleatorias.", Path: "/api/password", Ready: true},
	{ID: "pdf", Icon: "📝", Title: "Rellenar PDF", Description: "Completa formularios y postulaciones sin imprimir.", Path: "", Ready: false},
	{ID: "sign", Icon: "✍️", Title: "Firma Digital", Description: "Dibuja tu firma y descárgala sin fondo.", Path: "", Ready: false},
	{ID: "compress", Icon: "🖼️", Title: "Comprimir Fotos", Description: "Reduce el peso de tus imágenes para la web.", Path: "", Ready: false},
	{ID: "watermark", Icon: "💧", Title: "Marca de Agua", Description: "Protege las fotos de tus productos.", Path: "", Ready: false},
	{ID: "crop", Icon: "✂️", Title: "Recortar para Redes", Description: "Ajusta tus fotos a formato Historia o Post.", Path: "", Ready: false},
}

// Tools returns the dashboard entries in display order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}
