package models

import (
	"strings"
	"time"
)

// Question is a FAQ entry the chatbot answers from (tabla
// preguntassystem). Variante stores the alternative phrasings as a
// semicolon-joined list; Habilitado only flips to true once an operator
// supplies a non-empty Respuesta.
type Question struct {
	ID           int       `json:"id"`
	TelefonoCaso string    `json:"telefonocaso"`
	Categoria    string    `json:"categoria"`
	Necesidad    string    `json:"necesidad"`
	Pregunta     string    `json:"pregunta"`
	Respuesta    string    `json:"respuesta"`
	Variante     string    `json:"variante"`
	URLImagen    string    `json:"urlimagen"`
	VideoURL     string    `json:"videourl"`
	Habilitado   bool      `json:"habilitado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Variantes splits the stored semicolon-joined list, preserving order.
func (q *Question) Variantes() []string {
	return SplitVariantes(q.Variante)
}

// JoinVariantes encodes the alternatives column. Exact and
// order-preserving for inputs without semicolons.
func JoinVariantes(variantes []string) string {
	return strings.Join(variantes, ";")
}

// SplitVariantes decodes the alternatives column.
func SplitVariantes(variante string) []string {
	if variante == "" {
		return nil
	}
	return strings.Split(variante, ";")
}

// CreateQuestionRequest represents the request body for creating a
// question. ImagenExt/VideoExt, when present, make the service derive
// the public media URLs from the new row id.
type CreateQuestionRequest struct {
	TelefonoCaso string   `json:"telefonocaso"`
	Categoria    string   `json:"categoria"`
	Necesidad    string   `json:"necesidad"`
	Pregunta     string   `json:"pregunta"`
	Respuesta    string   `json:"respuesta"`
	Variantes    []string `json:"variantes"`
	URLImagen    string   `json:"urlimagen"`
	VideoURL     string   `json:"videourl"`
	ImagenExt    string   `json:"imagenext,omitempty"`
	VideoExt     string   `json:"videoext,omitempty"`
}

// UpdateQuestionRequest is a coalesce patch: omitted fields keep the
// stored value, explicit nulls clear it.
type UpdateQuestionRequest struct {
	Categoria Optional[string]   `json:"categoria"`
	Necesidad Optional[string]   `json:"necesidad"`
	Pregunta  Optional[string]   `json:"pregunta"`
	Respuesta Optional[string]   `json:"respuesta"`
	Variantes Optional[[]string] `json:"variantes"`
	URLImagen Optional[string]   `json:"urlimagen"`
	VideoURL  Optional[string]   `json:"videourl"`
}
