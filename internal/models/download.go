package models

// Download is one catalog row (dbw00001) for a product.
type Download struct {
	Solucion string
	Nombre   string
	Imagen   *string
	Programa *string
	Manual   *string
}

// DownloadItem is a download as listed under its solucion code.
type DownloadItem struct {
	Nombre   string  `json:"nombre"`
	Imagen   *string `json:"imagen"`
	Programa *string `json:"programa"`
	Manual   *string `json:"manual"`
}
