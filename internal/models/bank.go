package models

import "time"

// Bank is a payment account shown by the chatbot (tabla bancosdv0).
// NumeroCuenta is unique within the tenant.
type Bank struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Banco        string    `json:"banco"`
	Titular      string    `json:"titular"`
	Cedula       string    `json:"cedula"`
	NumeroCuenta string    `json:"numerocuenta"`
	TipoCuenta   string    `json:"tipocuenta"`
	Habilitado   bool      `json:"habilitado"`
	CreatedAt    time.Time `json:"created_at"`
}
