package models

import "time"

// Need is a chatbot intent/need (tabla necesidadessystem). Questions
// hang off it by the (telefonocaso, necesidad) pair, by convention
// rather than a declared foreign key.
type Need struct {
	ID            int       `json:"id"`
	TelefonoCaso  string    `json:"telefonocaso"`
	Categoria     string    `json:"categoria"`
	Necesidad     string    `json:"necesidad"`
	Descripcion   string    `json:"descripcion"`
	Habilitado    bool      `json:"habilitado"`
	ControlHumano bool      `json:"controlhumano"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateNeedRequest represents the request body for creating a need
type CreateNeedRequest struct {
	TelefonoCaso  string `json:"telefonocaso"`
	Categoria     string `json:"categoria"`
	Necesidad     string `json:"necesidad"`
	Descripcion   string `json:"descripcion"`
	ControlHumano bool   `json:"controlhumano"`
}

// UpdateNeedRequest is a coalesce patch over a need.
type UpdateNeedRequest struct {
	Categoria     Optional[string] `json:"categoria"`
	Necesidad     Optional[string] `json:"necesidad"`
	Descripcion   Optional[string] `json:"descripcion"`
	Habilitado    Optional[bool]   `json:"habilitado"`
	ControlHumano Optional[bool]   `json:"controlhumano"`
}
