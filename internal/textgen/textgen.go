// Package textgen validates a generation request, renders its prompt and
// hands it to the provider dispatcher.
package textgen

import (
	"context"
	"time"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/logging"
	"github.com/forge-ai/textforge/internal/prompt"
)

// Request is one generation. Instruction is required; SubjectText is the
// optional text the instruction applies to; an empty ProviderID selects the
// default provider.
type Request struct {
	Instruction string
	SubjectText string
	ProviderID  string
}

// Validate reports a missing instruction as an InvalidInput error.
func (r Request) Validate() error {
	if r.Instruction == "" {
		return dispatch.NewInvalidInput("Invalid or missing 'prompt' field")
	}
	return nil
}

// Dispatcher is the subset of *dispatch.Dispatcher the service needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, providerID, prompt string) (dispatch.Result, error)
	Providers() []dispatch.Info
	Default() string
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	d Dispatcher
}

func New(d Dispatcher) *Service {
	return &Service{d: d}
}

// Generate runs one request. Every error is a *dispatch.Error.
func (s *Service) Generate(ctx context.Context, req Request) (dispatch.Result, error) {
	if err := req.Validate(); err != nil {
		return dispatch.Result{}, err
	}

	start := time.Now()
	res, err := s.d.Dispatch(ctx, req.ProviderID, prompt.Build(req.Instruction, req.SubjectText))

	l := logging.FromContext(ctx)
	if err != nil {
		l.Warn().
			Str("model", req.ProviderID).
			Str("kind", dispatch.KindOf(err).String()).
			Dur("took", time.Since(start)).
			Err(err).
			Msg("generation failed")
		return dispatch.Result{}, err
	}

	l.Info().
		Str("provider", res.Provider).
		Str("llm_model", res.Model).
		Int("chars", len(res.Text)).
		Dur("took", time.Since(start)).
		Msg("generation complete")
	return res, nil
}

// Providers lists the configured providers.
func (s *Service) Providers() []dispatch.Info { return s.d.Providers() }

// DefaultProvider is the id used when a request names none.
func (s *Service) DefaultProvider() string { return s.d.Default() }
