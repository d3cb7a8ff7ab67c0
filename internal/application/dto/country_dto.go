package dto

// CountryResponse salida de un país.
type CountryResponse struct {
	ID     int64  `json:"pais_id"`
	Nombre string `json:"nombre"`
}
