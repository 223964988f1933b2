package keys

import (
	"fmt"
	"log/slog"
	"sort"
)

// Control names the microbe controller resolves at construction.
const (
	ControlMoveForward    = "MoveForward"
	ControlMoveBackwards  = "MoveBackwards"
	ControlMoveLeft       = "MoveLeft"
	ControlMoveRight      = "MoveRight"
	ControlReproduceCheat = "ReproduceCheat"
)

var defaultControls = map[string][]string{
	ControlMoveForward:    {"w", "up"},
	ControlMoveBackwards:  {"s", "down"},
	ControlMoveLeft:       {"a", "left"},
	ControlMoveRight:      {"d", "right"},
	ControlReproduceCheat: {"p"},
}

// Configuration maps named controls to an ordered list of bindings.
type Configuration struct {
	controls map[string][]Binding
}

func DefaultConfiguration() *Configuration {
	cfg, err := NewConfiguration(nil)
	if err != nil {
		// defaultControls is static; a parse failure is a programming error.
		panic(err)
	}
	return cfg
}

// NewConfiguration starts from the default controls and replaces every
// control named in overrides. An empty override list unbinds the control.
func NewConfiguration(overrides map[string][]string) (*Configuration, error) {
	c := &Configuration{controls: make(map[string][]Binding, len(defaultControls)+len(overrides))}
	for name, keyNames := range defaultControls {
		if err := c.set(name, keyNames); err != nil {
			return nil, err
		}
	}
	for name, keyNames := range overrides {
		if err := c.set(name, keyNames); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Configuration) set(name string, keyNames []string) error {
	bindings := make([]Binding, 0, len(keyNames))
	for _, k := range keyNames {
		b, err := ParseBinding(k)
		if err != nil {
			return fmt.Errorf("control %s: %w", name, err)
		}
		bindings = append(bindings, b)
	}
	c.controls[name] = bindings
	return nil
}

// Bindings returns all bindings of a control in configured order.
func (c *Configuration) Bindings(name string) []Binding {
	if c == nil {
		return nil
	}
	return append([]Binding(nil), c.controls[name]...)
}

// ResolveControlNameToFirstKey returns the first binding of the named
// control, or None if the control has no bindings.
func (c *Configuration) ResolveControlNameToFirstKey(name string) Binding {
	if c == nil {
		return None
	}
	bindings := c.controls[name]
	if len(bindings) == 0 {
		slog.Warn("Control has no key binding", "control", name)
		return None
	}
	return bindings[0]
}

func (c *Configuration) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.controls))
	for name := range c.controls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
