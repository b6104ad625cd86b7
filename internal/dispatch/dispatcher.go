// Package dispatch resolves a logical provider id to a configured backend,
// invokes it and normalizes the outcome into a Result or an *Error.
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Backend is a single text-generation API.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Entry registers a Backend under an id.
type Entry struct {
	ID      string
	Name    string // display name
	Model   string
	Backend Backend
}

// Info describes a registered provider without exposing its backend.
type Info struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// Result is a successful generation.
type Result struct {
	Text     string
	Provider string
	Model    string
}

// Dispatcher is immutable after New and safe for concurrent use.
type Dispatcher struct {
	defaultID string
	entries   map[string]Entry
	ids       []string
}

// New builds a Dispatcher from entries. Ids are matched case-insensitively,
// so two entries differing only in case are a duplicate.
func New(defaultID string, entries ...Entry) (*Dispatcher, error) {
	d := &Dispatcher{
		defaultID: normalizeID(defaultID),
		entries:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		id := normalizeID(e.ID)
		if id == "" {
			return nil, fmt.Errorf("dispatch: provider with empty id")
		}
		if e.Backend == nil {
			return nil, fmt.Errorf("dispatch: provider %q has no backend", id)
		}
		if _, dup := d.entries[id]; dup {
			return nil, fmt.Errorf("dispatch: duplicate provider %q", id)
		}
		e.ID = id
		if e.Name == "" {
			e.Name = id
		}
		d.entries[id] = e
		d.ids = append(d.ids, id)
	}
	sort.Strings(d.ids)
	return d, nil
}

// Default returns the id used when a request names no provider.
func (d *Dispatcher) Default() string { return d.defaultID }

// Providers lists the registered providers sorted by id.
func (d *Dispatcher) Providers() []Info {
	out := make([]Info, 0, len(d.ids))
	for _, id := range d.ids {
		e := d.entries[id]
		out = append(out, Info{ID: e.ID, Name: e.Name, Model: e.Model})
	}
	return out
}

// Dispatch sends prompt to the provider named by providerID, or to the
// default provider when providerID is empty. Asterisks are stripped from
// the returned text. Every error is an *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, providerID, prompt string) (Result, error) {
	id := normalizeID(providerID)
	if id == "" {
		id = d.defaultID
	}

	e, ok := d.entries[id]
	if !ok {
		return Result{}, &Error{
			Kind:    InvalidProvider,
			Message: fmt.Sprintf("invalid model %q, choose from: %s", id, strings.Join(d.ids, ", ")),
		}
	}

	text, err := e.Backend.Generate(ctx, prompt)
	if err != nil {
		return Result{}, translate(id, err)
	}

	return Result{
		Text:     strings.ReplaceAll(text, "*", ""),
		Provider: id,
		Model:    e.Model,
	}, nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
