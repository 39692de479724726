// Package registry maps each provider key to its adapter and to the curated
// allowlist of model identifiers that may be served through it. The allowlist
// is defined independently of whatever the adapter reports live, so a
// provider expanding its public catalog never silently authorizes new spend.
package registry

import (
	"fmt"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/llm"
	"chat-relay/internal/model"
)

// The closed set of provider keys accepted on the wire.
const (
	KeyOpenAI    = "openai"
	KeyAnthropic = "anthropic"
	KeyGoogle    = "google"
	KeyXAI       = "x"
)

type entry struct {
	adapter llm.Provider
	allowed map[string]bool
}

// Registry is the static provider dispatch table, built once at startup and
// read-only afterwards.
type Registry struct {
	keys    []string
	entries map[string]entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a provider under the given key with its model allowlist.
// Registration order is preserved by Keys.
func (r *Registry) Register(key string, adapter llm.Provider, models []model.ModelOption) {
	allowed := make(map[string]bool, len(models))
	for _, m := range models {
		allowed[m.Value] = true
	}
	r.keys = append(r.keys, key)
	r.entries[key] = entry{adapter: adapter, allowed: allowed}
}

// Resolve returns the adapter for a provider key, or ErrUnknownProvider if
// the key is not in the registered set.
func (r *Registry) Resolve(key string) (llm.Provider, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, key)
	}
	return e.adapter, nil
}

// IsValidModel reports whether modelID is in the curated allowlist of the
// given provider. A model belonging to a different provider is invalid here.
func (r *Registry) IsValidModel(key, modelID string) bool {
	e, ok := r.entries[key]
	if !ok {
		return false
	}
	return e.allowed[modelID]
}

// Keys returns the provider keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Status reports, per provider key, whether a credential is configured.
func (r *Registry) Status() map[string]bool {
	status := make(map[string]bool, len(r.keys))
	for _, key := range r.keys {
		status[key] = r.entries[key].adapter.Configured()
	}
	return status
}
