// Package webhook delivers operator responses to the callback URL the
// chatbot left on each conversation.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/metrics"
)

type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// RespuestaPayload is what the chatbot receives on its callback URL.
type RespuestaPayload struct {
	GUID      string `json:"guid"`
	Respuesta string `json:"respuesta"`
}

// SendRespuesta POSTs the operator reply to enlace. Any non-2xx answer
// is an upstream failure; the caller's local state is already committed
// and is not rolled back.
func (c *Client) SendRespuesta(ctx context.Context, enlace string, payload RespuestaPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, enlace, bytes.NewBuffer(jsonData))
	if err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return apierror.Upstream("No se pudo contactar el enlace de respuesta")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return apierror.Upstream("No se pudo contactar el enlace de respuesta")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return apierror.Upstream(fmt.Sprintf("El enlace de respuesta devolvio %d", resp.StatusCode))
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues("ok").Inc()
	return nil
}
