package models

import "time"

// Club is a membership plan the chatbot offers (tabla clubesdv0).
// Nombre is unique within the tenant.
type Club struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Nombre       string    `json:"nombre"`
	Descripcion  string    `json:"descripcion"`
	Monto        float64   `json:"monto"`
	FechaPago    string    `json:"fechapago"`
	Habilitado   bool      `json:"habilitado"`
	CreatedAt    time.Time `json:"created_at"`
}
