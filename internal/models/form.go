package models

import "time"

// FormSubmission is a contact form captured by the chatbot
// (tabla formdv0). Read/delete only from the panel.
type FormSubmission struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Nombre       string    `json:"nombre"`
	Telefono     string    `json:"telefono"`
	Correo       string    `json:"correo"`
	Mensaje      string    `json:"mensaje"`
	CreatedAt    time.Time `json:"created_at"`
}
