// Package fill orchestrates whole-page autofill: it enumerates eligible
// controls, classifies them, fingerprints the form, selects one persona for
// the batch, and plays values in either instantly or through the typing
// simulator.
package fill

import (
	"errors"

	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/field"
	"github.com/entrhq/fillforge/pkg/fingerprint"
	"github.com/entrhq/fillforge/pkg/logging"
	"github.com/entrhq/fillforge/pkg/typing"
)

// ErrNoSelector is returned when an engine is built without a dataset source.
var ErrNoSelector = errors.New("fill: engine has no dataset selector")

// Mode chooses how values reach text controls. Select and radio controls are
// always filled instantly regardless of mode.
type Mode int

const (
	// ModeInstant assigns values directly and dispatches synthetic events.
	ModeInstant Mode = iota

	// ModeAnimated types values through the typing simulator.
	ModeAnimated
)

// Selector yields one dataset per form fingerprint. *dataset.Store and
// *dataset.Pool both satisfy it.
type Selector interface {
	Select(fp fingerprint.Fingerprint) (dataset.Dataset, error)
}

// Options configures one fill operation.
type Options struct {
	// Mode selects instant or animated filling.
	Mode Mode

	// Typing tunes the simulator in animated mode.
	Typing typing.Config
}

// EngineConfig wires an Engine's collaborators.
type EngineConfig struct {
	// Selector is the dataset source. Required.
	Selector Selector

	// Classifier defaults to field.NewClassifier().
	Classifier *field.Classifier

	// Simulator defaults to a fresh typing.NewSimulator.
	Simulator *typing.Simulator

	// Logger may be nil.
	Logger *logging.Logger
}

// Engine is an explicit context object owning all fill state: the dataset
// selector, the classifier, and the single active typing simulation. Hosts
// create one engine per browsing session; independent engines never share
// state, so tests and parallel sessions cannot contaminate each other.
type Engine struct {
	selector   Selector
	classifier *field.Classifier
	sim        *typing.Simulator
	log        *logging.Logger
}

// NewEngine builds an engine from the config, applying defaults for optional
// collaborators.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Selector == nil {
		return nil, ErrNoSelector
	}
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = field.NewClassifier()
	}
	sim := cfg.Simulator
	if sim == nil {
		sim = typing.NewSimulator(cfg.Logger)
	}
	return &Engine{
		selector:   cfg.Selector,
		classifier: classifier,
		sim:        sim,
		log:        cfg.Logger,
	}, nil
}

// Simulator exposes the engine's typing simulator so hosts can pause, resume
// or abort an in-flight animated fill.
func (e *Engine) Simulator() *typing.Simulator { return e.sim }
