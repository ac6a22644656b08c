package models

import "time"

// Rate is one row of the per-tenant transport rate table
// (tabla tarifas_transporte).
type Rate struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Origen       string    `json:"origen"`
	Destino      string    `json:"destino"`
	Tarifa       float64   `json:"tarifa"`
	Moneda       string    `json:"moneda"`
	CreatedAt    time.Time `json:"created_at"`
}
