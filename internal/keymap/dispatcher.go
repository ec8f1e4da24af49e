package keymap

import (
	"folio/internal/log"
	"folio/internal/palette"
)

// ExecuteFunc observes executed commands. mode is the mode the command was
// resolved in, before the command ran.
type ExecuteFunc func(cmd Command, mode palette.Mode)

// Dispatcher routes chords to commands using the live palette mode.
type Dispatcher struct {
	registry  *Registry
	store     *palette.Store
	onExecute ExecuteFunc
}

// NewDispatcher creates a dispatcher over registry and store.
func NewDispatcher(registry *Registry, store *palette.Store) *Dispatcher {
	return &Dispatcher{registry: registry, store: store}
}

// OnExecute installs fn as the execution observer, replacing any previous one.
func (d *Dispatcher) OnExecute(fn ExecuteFunc) { d.onExecute = fn }

// Registry returns the command table.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch runs the command bound to chord in the current mode. It reports
// whether a command ran; unbound chords do nothing.
func (d *Dispatcher) Dispatch(chord Chord) bool {
	mode := d.store.Mode()
	cmd, ok := d.registry.Lookup(chord, mode)
	if !ok {
		return false
	}

	log.LogWithFields(
		log.F("chord", chord.String()),
		log.F("mode", mode.String()),
		log.F("command", cmd.Description),
	).Debug("Dispatching command")

	cmd.Execute()
	if d.onExecute != nil {
		d.onExecute(cmd, mode)
	}
	return true
}
