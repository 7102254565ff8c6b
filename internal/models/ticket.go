package models

// Ticket is a support request (requerimiento) row in dbw00002.
type Ticket struct {
	Requerimiento string
	Correo        string
	Asunto        string
	Tipo          string
	Solucion      string
	Programa      string
	Version       string
	Detalle       string
	Contacto      string
	Estado        string
}

// TicketSummary is a ticket as listed inside its solucion group.
type TicketSummary struct {
	Requerimiento string `json:"requerimiento"`
	Correo        string `json:"correo"`
	Asunto        string `json:"asunto"`
	Tipo          string `json:"tipo"`
	Programa      string `json:"programa"`
	Version       string `json:"version"`
	Detalle       string `json:"detalle"`
	Contacto      string `json:"contacto"`
	Estado        string `json:"estado"`
}

// Summary drops the grouping key.
func (t Ticket) Summary() TicketSummary {
	return TicketSummary{
		Requerimiento: t.Requerimiento,
		Correo:        t.Correo,
		Asunto:        t.Asunto,
		Tipo:          t.Tipo,
		Programa:      t.Programa,
		Version:       t.Version,
		Detalle:       t.Detalle,
		Contacto:      t.Contacto,
		Estado:        t.Estado,
	}
}
