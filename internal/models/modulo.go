package models

// Modulo is one entry of the static permission catalog (modulossystem).
// Read-only from the panel.
type Modulo struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria"`
}
