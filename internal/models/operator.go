package models

import "time"

// Estados de aprobacion de un usuario final del chatbot.
const (
	UsuarioPendiente = "pendiente"
	UsuarioAprobado  = "aprobado"
	UsuarioRechazado = "rechazado"
)

// ChatUser is an end user of the chatbot pending operator approval
// (tabla usuariossystem).
type ChatUser struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Nombre       string    `json:"nombre"`
	Telefono     string    `json:"telefono"`
	Estado       string    `json:"estado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
