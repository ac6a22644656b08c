package models

import (
	"encoding/base64"
	"strings"
	"time"

	"botpanel-backend/internal/apierror"
)

// Estados de una conversacion. La transicion pendiente -> completado
// ocurre exactamente una vez, al enviar la respuesta del operador.
const (
	ConversacionPendiente  = "pendiente"
	ConversacionCompletado = "completado"
)

// Conversation is a chatbot escalation waiting for (or answered by) an
// operator (tabla consultanecesidad). TelefonoEmpresa is the tenant key.
type Conversation struct {
	GUID            string    `json:"guid"`
	TelefonoCliente string    `json:"telefonocliente"`
	TelefonoEmpresa string    `json:"telefonoempresa"`
	Contexto        string    `json:"contexto"`
	Pregunta        string    `json:"pregunta"`
	Estado          string    `json:"estado"`
	Paso            string    `json:"paso"`
	Enlace          string    `json:"enlace"`
	AccionAdmin     string    `json:"accionadmin"`
	Respuesta       string    `json:"respuesta"`
	Imagen          string    `json:"imagen,omitempty"` // data-URL inline
	Video           string    `json:"video,omitempty"`  // data-URL inline
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EnviarRespuestaRequest is the operator reply forwarded to the
// conversation's callback URL.
type EnviarRespuestaRequest struct {
	GUID      string `json:"guid"`
	Enlace    string `json:"enlace"`
	Respuesta string `json:"respuesta"`
}

// DecodeDataURL splits an inline "data:<tipo>;base64,<datos>" payload
// into its content type and raw bytes.
func DecodeDataURL(dataURL string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, apierror.Validation("El contenido no es un data-URL valido")
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, apierror.Validation("El contenido no es un data-URL valido")
	}
	contentType = rest[:sep]
	raw, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, apierror.Validation("El contenido base64 esta corrupto")
	}
	return contentType, raw, nil
}
