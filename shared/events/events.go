// Package events defines the message contract published on RabbitMQ.
// Producers and the generator worker share ONLY this package.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ── Routing keys (RabbitMQ topic exchange: textforge.events) ─────────────────
const (
	GenerationRequested = "generation.requested"
	GenerationComplete  = "generation.complete"
	GenerationFailed    = "generation.failed"
)

// ── Envelope wraps every message ─────────────────────────────────────────────

type Envelope struct {
	ID         string          `json:"id"`
	RoutingKey string          `json:"routing_key"`
	Timestamp  time.Time       `json:"ts"`
	Payload    json.RawMessage `json:"payload"`
}

func Wrap(routingKey string, payload any) ([]byte, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		ID:         uuid.New().String(),
		RoutingKey: routingKey,
		Timestamp:  time.Now().UTC(),
		Payload:    p,
	})
}

// Unwrap decodes raw and its payload into T. An envelope without a payload
// is an error.
func Unwrap[T any](raw []byte) (*Envelope, *T, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Payload) == 0 {
		return &env, nil, fmt.Errorf("envelope %s has no payload", env.ID)
	}
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return &env, nil, fmt.Errorf("decode payload: %w", err)
	}
	return &env, &t, nil
}

// ── Payload types ─────────────────────────────────────────────────────────────

type GenerationRequestedPayload struct {
	RequestID string `json:"request_id"`
	Prompt    string `json:"prompt"`
	Data      string `json:"data,omitempty"`
	Model     string `json:"model,omitempty"`
}

type GenerationCompletePayload struct {
	RequestID string `json:"request_id"`
	Model     string `json:"model"`
	Result    string `json:"result"`
}

type GenerationFailedPayload struct {
	RequestID string `json:"request_id"`
	Model     string `json:"model,omitempty"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
	Status    int    `json:"status"`
}
