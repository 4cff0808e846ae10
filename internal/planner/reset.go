package planner

import (
	"github.com/danieljhkim/themereset/internal/binding"
	"github.com/danieljhkim/themereset/internal/theme"
)

// Defaults for row expression synthesis and shared child templates.
const (
	DefaultChildTemplateKey   = "button"
	DefaultSanitizedDataField = "sanitizedTableData"
	DefaultRowVariable        = "currentRow"
)

// Options tunes how widgets are classified and how row expressions are built.
type Options struct {
	// Kinds maps widget types to reset strategies
	Kinds theme.KindTable

	// ChildTemplateKey selects the shared child template in childStylesheet
	ChildTemplateKey string

	// SanitizedDataField is the table field the row expression maps over
	SanitizedDataField string

	// RowVariable is the loop variable bound to each row
	RowVariable string
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{
		Kinds:              theme.DefaultKindTable(),
		ChildTemplateKey:   DefaultChildTemplateKey,
		SanitizedDataField: DefaultSanitizedDataField,
		RowVariable:        DefaultRowVariable,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Kinds == nil {
		o.Kinds = d.Kinds
	}
	if o.ChildTemplateKey == "" {
		o.ChildTemplateKey = d.ChildTemplateKey
	}
	if o.SanitizedDataField == "" {
		o.SanitizedDataField = d.SanitizedDataField
	}
	if o.RowVariable == "" {
		o.RowVariable = d.RowVariable
	}
	return o
}

// FieldStyleResolver returns the style template for a form field type, or
// nil when the childStylesheet has none.
type FieldStyleResolver func(fieldType string, childStylesheet map[string]theme.Properties) theme.Properties

// DefaultFieldStyle looks fieldType up directly in childStylesheet.
func DefaultFieldStyle(fieldType string, childStylesheet map[string]theme.Properties) theme.Properties {
	if childStylesheet == nil {
		return nil
	}
	return childStylesheet[fieldType]
}

// Planner builds reset plans.
type Planner struct {
	compiler     binding.Compiler
	resolveField FieldStyleResolver
	opts         Options
}

// NewPlanner creates a Planner. A nil compiler or resolver selects the
// default implementation and zero-valued options fall back to defaults.
func NewPlanner(compiler binding.Compiler, resolver FieldStyleResolver, opts Options) *Planner {
	if compiler == nil {
		compiler = binding.NewMustache()
	}
	if resolver == nil {
		resolver = DefaultFieldStyle
	}
	return &Planner{
		compiler:     compiler,
		resolveField: resolver,
		opts:         opts.withDefaults(),
	}
}

// ComputeResetModifications plans a reset with the default collaborators.
func ComputeResetModifications(instances *theme.Collection, stylesheet theme.Stylesheet) []UpdateCommand {
	return NewPlanner(nil, nil, DefaultOptions()).ComputeResetModifications(instances, stylesheet)
}

// ComputeResetModifications returns one UpdateCommand per widget whose
// styling differs from the stylesheet, in snapshot order.
func (p *Planner) ComputeResetModifications(instances *theme.Collection, stylesheet theme.Stylesheet) []UpdateCommand {
	return p.BuildResetPlan(instances, stylesheet).Commands
}

// BuildResetPlan generates a deterministic plan to reset every widget in
// instances. Widgets whose type has no style defaults are skipped.
func (p *Planner) BuildResetPlan(instances *theme.Collection, stylesheet theme.Stylesheet) *ResetPlan {
	plan := NewResetPlan()

	for _, id := range instances.IDs() {
		inst, _ := instances.Get(id)

		defaults, ok := stylesheet.Lookup(inst.Type)
		if !ok {
			plan.AddSkip(Skip{InstanceID: id, Reason: SkipNoDefaults})
			continue
		}

		mods := NewModifications()
		diffFlat(mods, "", defaults.Properties, inst.Properties, true)

		switch p.opts.Kinds.KindOf(inst.Type) {
		case theme.KindRowTemplate:
			p.diffRowTemplates(plan, mods, inst, defaults)
		case theme.KindFlatChild:
			p.diffFlatChildren(plan, mods, inst, defaults)
		case theme.KindSchema:
			p.diffSchema(mods, inst, defaults)
		case theme.KindFlat:
		}

		if mods.Len() > 0 {
			plan.AddCommand(UpdateCommand{InstanceID: id, Modifications: mods})
		}
	}

	return plan
}
