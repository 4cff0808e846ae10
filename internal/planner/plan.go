package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResetPlan represents a plan to reset widgets to their theme defaults.
type ResetPlan struct {
	// Commands is the ordered list of update commands, one per changed widget
	Commands []UpdateCommand

	// Skipped records lookups that found no theming data
	Skipped []Skip
}

// UpdateCommand is one widget's full set of path -> value resets.
type UpdateCommand struct {
	// InstanceID is the ID of the widget to update
	InstanceID string `json:"widgetId"`

	// Modifications maps dot-delimited property paths to target values
	Modifications *Modifications `json:"modify"`
}

// Skip describes a widget or sub-record left alone for lack of theming data.
type Skip struct {
	// InstanceID is the widget the skip applies to
	InstanceID string `json:"widgetId"`

	// Path is the skipped sub-record, empty for the whole widget
	Path string `json:"path,omitempty"`

	// Reason is a human-readable explanation
	Reason string `json:"reason"`
}

// Skip reasons
const (
	SkipNoDefaults      = "no style defaults for widget type"
	SkipNoChildTemplate = "no child style template"
)

// NewResetPlan creates a new empty ResetPlan.
func NewResetPlan() *ResetPlan {
	return &ResetPlan{
		Commands: []UpdateCommand{},
		Skipped:  []Skip{},
	}
}

// HasCommands returns true if the plan changes at least one widget.
func (p *ResetPlan) HasCommands() bool {
	return len(p.Commands) > 0
}

// AddCommand adds a command to the plan.
func (p *ResetPlan) AddCommand(cmd UpdateCommand) {
	p.Commands = append(p.Commands, cmd)
}

// AddSkip records a skipped lookup.
func (p *ResetPlan) AddSkip(skip Skip) {
	p.Skipped = append(p.Skipped, skip)
}

// ModificationCount returns the total number of modifications across commands.
func (p *ResetPlan) ModificationCount() int {
	n := 0
	for _, cmd := range p.Commands {
		n += cmd.Modifications.Len()
	}
	return n
}

// Modifications is an insertion-ordered path -> value mapping. Setting an
// existing path overwrites its value and keeps its position.
type Modifications struct {
	paths  []string
	values map[string]any
}

// NewModifications creates an empty Modifications.
func NewModifications() *Modifications {
	return &Modifications{values: make(map[string]any)}
}

// Set records value at path.
func (m *Modifications) Set(path string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[path]; !exists {
		m.paths = append(m.paths, path)
	}
	m.values[path] = value
}

// Get returns the value recorded at path.
func (m *Modifications) Get(path string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[path]
	return v, ok
}

// Len returns the number of recorded paths.
func (m *Modifications) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

// Paths returns the recorded paths in insertion order.
func (m *Modifications) Paths() []string {
	if m == nil {
		return nil
	}
	paths := make([]string, len(m.paths))
	copy(paths, m.paths)
	return paths
}

// Map returns the modifications as a plain map.
func (m *Modifications) Map() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, path := range m.paths {
		out[path] = m.values[path]
	}
	return out
}

// MarshalJSON encodes the modifications as a JSON object in insertion order.
func (m *Modifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, path := range m.Paths() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(path)
		if err != nil {
			return nil, err
		}
		value, err := marshalUnescaped(m.values[path])
		if err != nil {
			return nil, fmt.Errorf("failed to encode modification %s: %w", path, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalUnescaped encodes v without escaping <, > and &, which binding
// expressions use freely.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes a JSON object. Key order follows the document.
func (m *Modifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("modifications: expected object, got %v", tok)
	}

	*m = Modifications{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, ok := tok.(string)
		if !ok {
			return fmt.Errorf("modifications: expected string key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("modifications: failed to decode %s: %w", path, err)
		}
		m.Set(path, value)
	}
	_, err = dec.Token()
	return err
}
