package mailrelay

import (
	"fmt"
	"html"
	"strings"

	"github.com/brt-intranet/backend/internal/tickets"
)

// ContactForm is a message from the public contact page.
type ContactForm struct {
	Nombre  string
	Email   string
	Asunto  string
	Mensaje string
}

func ticketSubject(f tickets.Form, code string) string {
	return fmt.Sprintf("Nuevo requerimiento: %s (Código: %s)", f.Asunto, code)
}

func contactSubject(f ContactForm) string {
	return "Nuevo mensaje de contacto: " + f.Asunto
}

func ticketBody(f tickets.Form, code string) string {
	var b strings.Builder
	b.WriteString("<h2>Nuevo requerimiento recibido</h2>\n")
	field(&b, "Código", code)
	field(&b, "Correo", f.Email)
	field(&b, "Asunto", f.Asunto)
	field(&b, "Tipo", f.Tipo)
	field(&b, "Solución", f.Solucion)
	field(&b, "Programa", f.Programa)
	field(&b, "Versión", f.Version)
	block(&b, "Detalle", f.Detalle)
	field(&b, "Contacto", f.Contacto)
	return b.String()
}

func contactBody(f ContactForm) string {
	var b strings.Builder
	b.WriteString("<h2>Nuevo mensaje desde el formulario de contacto</h2>\n")
	field(&b, "Nombre", f.Nombre)
	field(&b, "Correo", f.Email)
	field(&b, "Asunto", f.Asunto)
	block(&b, "Mensaje", f.Mensaje)
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<p><strong>%s:</strong> %s</p>\n", label, html.EscapeString(value))
}

// block renders multi-line text with its line breaks kept.
func block(b *strings.Builder, label, value string) {
	escaped := strings.ReplaceAll(html.EscapeString(value), "\n", "<br>")
	fmt.Fprintf(b, "<p><strong>%s:</strong><br>%s</p>\n", label, escaped)
}
