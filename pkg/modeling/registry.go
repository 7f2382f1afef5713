package modeling

import (
	"sync"

	"github.com/df07/go-scattering/pkg/log"
	"golang.org/x/xerrors"
)

var logger = log.New("modeling")

// Factory is the part of a model factory shared by every kind of model
type Factory interface {
	Model() string
	ModelMetadata() ModelMetadata
	InputMetadata() []InputMetadata
}

// Registry maps model identifiers to their factories. It is filled during
// initialization; lookups are safe from any number of goroutines.
type Registry[F Factory] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]F
	order     []string
}

// NewRegistry creates an empty registry. kind names the models it holds in
// errors and logs ("bssrdf", "closure").
func NewRegistry[F Factory](kind string) *Registry[F] {
	return &Registry[F]{
		kind:      kind,
		factories: make(map[string]F),
	}
}

// Register adds a factory under its model identifier
func (r *Registry[F]) Register(f F) error {
	model := f.Model()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[model]; exists {
		return xerrors.Errorf("%s %q: %w", r.kind, model, ErrDuplicateModel)
	}
	r.factories[model] = f
	r.order = append(r.order, model)

	logger.Debugf("registered %s model %q", r.kind, model)
	return nil
}

// Lookup returns the factory for model
func (r *Registry[F]) Lookup(model string) (F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[model]
	if !ok {
		var zero F
		return zero, xerrors.Errorf("%s %q: %w", r.kind, model, ErrUnknownModel)
	}
	return f, nil
}

// Models returns the registered identifiers in registration order
func (r *Registry[F]) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
