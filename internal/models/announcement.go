package models

import "time"

// Announcement tipos accepted on write.
const (
	TipoInfo    = "info"
	TipoSuccess = "success"
	TipoWarning = "warning"
	TipoDanger  = "danger"
)

// Announcement is a banner row (dbw00003) in the shape the API returns it.
// Empty titulo and link_url are omitted; the remaining optional fields render as null.
type Announcement struct {
	ID           int64      `json:"id"`
	Activo       bool       `json:"activo"`
	Tipo         string     `json:"tipo"`
	Titulo       string     `json:"titulo,omitempty"`
	Mensaje      string     `json:"mensaje"`
	LinkURL      string     `json:"link_url,omitempty"`
	ImageURL     *string    `json:"image_url"`
	ImageAlt     *string    `json:"image_alt"`
	Dismissible  bool       `json:"dismissible"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	IncludePages *string    `json:"include_pages"`
	ExcludePages *string    `json:"exclude_pages"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

// LiveAt reports whether the banner is eligible to be shown at t:
// activo and t inside the inclusive [starts_at, ends_at] window.
func (a Announcement) LiveAt(t time.Time) bool {
	if !a.Activo {
		return false
	}
	if a.StartsAt != nil && a.StartsAt.After(t) {
		return false
	}
	if a.EndsAt != nil && a.EndsAt.Before(t) {
		return false
	}
	return true
}
