// Package worker serves generation requests that arrive over RabbitMQ.
// Each generation.requested message yields exactly one generation.complete
// or generation.failed reply.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forge-ai/textforge/internal/api"
	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/forge-ai/textforge/shared/events"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Queue is the durable queue the worker consumes.
const Queue = "svc.generator"

// Publisher is satisfied by *mq.Broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Generator is satisfied by *textgen.Service.
type Generator interface {
	Generate(ctx context.Context, req textgen.Request) (dispatch.Result, error)
}

type Worker struct {
	gen Generator
	pub Publisher
}

func New(gen Generator, pub Publisher) *Worker {
	return &Worker{gen: gen, pub: pub}
}

// Run fans deliveries out to n consumers and blocks until ctx is done or
// the delivery channel closes. A generation already in flight when ctx is
// canceled runs to completion, bounded by the provider HTTP timeout, so its
// reply is still published and acked.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery, n int) error {
	if n < 1 {
		n = 1
	}

	work := context.WithoutCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case d, ok := <-deliveries:
					if !ok {
						return nil
					}
					if ctx.Err() != nil {
						// Shutting down; hand the message to the next consumer.
						_ = d.Nack(false, true)
						return nil
					}
					w.deliver(work, d)
				}
			}
		})
	}
	return g.Wait()
}

// deliver acks once a reply is published. Failures are never requeued.
func (w *Worker) deliver(ctx context.Context, d amqp.Delivery) {
	if err := w.Handle(ctx, d.Body); err != nil {
		log.Error().Err(err).Uint64("tag", d.DeliveryTag).Msg("generation message dropped")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// Handle processes one raw envelope. The payload is validated the same way
// as an HTTP body. A bad payload or a generation failure is published as
// generation.failed and is not an error; only an unreadable envelope, a bad
// payload without request_id, or a failed publish is.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	_, raw, err := events.Unwrap[json.RawMessage](body)
	if err != nil {
		return err
	}

	var meta struct {
		RequestID string `json:"request_id"`
	}
	_ = json.Unmarshal(*raw, &meta)

	req, err := api.DecodeRequest(*raw)
	if err != nil && meta.RequestID == "" {
		return fmt.Errorf("decode payload: %w", err)
	}

	l := log.With().Str("request_id", meta.RequestID).Logger()
	ctx = l.WithContext(ctx)

	var res dispatch.Result
	if err == nil {
		res, err = w.gen.Generate(ctx, req)
	}

	var (
		key     string
		payload any
	)
	if err != nil {
		key = events.GenerationFailed
		payload = events.GenerationFailedPayload{
			RequestID: meta.RequestID,
			Model:     req.ProviderID,
			Kind:      dispatch.KindOf(err).String(),
			Error:     api.MessageFor(err),
			Status:    api.StatusFor(err),
		}
	} else {
		key = events.GenerationComplete
		payload = events.GenerationCompletePayload{
			RequestID: meta.RequestID,
			Model:     res.Provider,
			Result:    res.Text,
		}
	}

	b, err := events.Wrap(key, payload)
	if err != nil {
		return fmt.Errorf("wrap %s: %w", key, err)
	}
	if err := w.pub.Publish(ctx, key, b); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
