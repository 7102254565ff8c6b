package tickets

import "github.com/brt-intranet/backend/internal/models"

// NoSolucion is the group for tickets stored without a solucion.
const NoSolucion = "Sin solución"

// GroupBySolucion buckets tickets by solucion, keeping the input order inside
// each bucket. Every ticket lands in exactly one bucket.
func GroupBySolucion(rows []models.Ticket) map[string][]models.TicketSummary {
	out := make(map[string][]models.TicketSummary)
	for _, t := range rows {
		key := t.Solucion
		if key == "" {
			key = NoSolucion
		}
		out[key] = append(out[key], t.Summary())
	}
	return out
}
