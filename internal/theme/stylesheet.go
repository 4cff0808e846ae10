package theme

import "fmt"

// Reserved stylesheet keys. They hold nested style tables rather than
// resettable values and are never compared at the top level.
const (
	ChildStylesheetKey    = "childStylesheet"
	SubmitButtonStylesKey = "submitButtonStyles"
	ResetButtonStylesKey  = "resetButtonStyles"
)

// AuxiliaryGroupKeys lists the fixed auxiliary button style groups, in the
// order they are diffed.
var AuxiliaryGroupKeys = []string{SubmitButtonStylesKey, ResetButtonStylesKey}

// IsReservedKey reports whether key names a structural stylesheet table.
func IsReservedKey(key string) bool {
	switch key {
	case ChildStylesheetKey, SubmitButtonStylesKey, ResetButtonStylesKey:
		return true
	}
	return false
}

// StyleDefaults is a theme's default property values for one widget type.
type StyleDefaults struct {
	// Properties holds the direct property defaults
	Properties Properties

	// ChildStylesheet maps a sub-type key (column type, field type, or the
	// shared child template key) to its property defaults
	ChildStylesheet map[string]Properties

	// SubmitButtonStyles holds the submit control defaults
	SubmitButtonStyles Properties

	// ResetButtonStyles holds the reset control defaults
	ResetButtonStyles Properties
}

// ChildStyle returns the child template stored under key.
func (d *StyleDefaults) ChildStyle(key string) (Properties, bool) {
	if d == nil || d.ChildStylesheet == nil {
		return nil, false
	}
	style, ok := d.ChildStylesheet[key]
	return style, ok && style != nil
}

// Group returns one of the auxiliary style groups by key.
func (d *StyleDefaults) Group(key string) (Properties, bool) {
	if d == nil {
		return nil, false
	}
	var group Properties
	switch key {
	case SubmitButtonStylesKey:
		group = d.SubmitButtonStyles
	case ResetButtonStylesKey:
		group = d.ResetButtonStyles
	}
	return group, group != nil
}

// Stylesheet maps widget types to their style defaults.
type Stylesheet map[string]*StyleDefaults

// Lookup returns the style defaults for a widget type.
func (s Stylesheet) Lookup(widgetType string) (*StyleDefaults, bool) {
	d, ok := s[widgetType]
	return d, ok && d != nil
}

// Theme is a named stylesheet.
type Theme struct {
	Name        string
	DisplayName string
	Stylesheet  Stylesheet
}

// Kind is the closed set of widget shapes a reset strategy exists for.
type Kind string

const (
	KindFlat        Kind = "flat"
	KindRowTemplate Kind = "rowTemplate"
	KindFlatChild   Kind = "flatChild"
	KindSchema      Kind = "schema"
)

// Widget types with a dedicated strategy in the default kind table.
const (
	TableWidget       = "TABLE_WIDGET"
	ButtonGroupWidget = "BUTTON_GROUP_WIDGET"
	JSONFormWidget    = "JSON_FORM_WIDGET"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFlat, KindRowTemplate, KindFlatChild, KindSchema:
		return k, nil
	}
	return "", fmt.Errorf("unknown widget kind %q", s)
}

// KindTable maps widget types to kinds. Unlisted types are KindFlat.
type KindTable map[string]Kind

// DefaultKindTable returns the built-in type to kind mapping.
func DefaultKindTable() KindTable {
	return KindTable{
		TableWidget:       KindRowTemplate,
		ButtonGroupWidget: KindFlatChild,
		JSONFormWidget:    KindSchema,
	}
}

// KindOf returns the kind for a widget type.
func (t KindTable) KindOf(widgetType string) Kind {
	if k, ok := t[widgetType]; ok {
		return k
	}
	return KindFlat
}
