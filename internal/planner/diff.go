package planner

import (
	"fmt"

	"github.com/danieljhkim/themereset/internal/schema"
	"github.com/danieljhkim/themereset/internal/theme"
)

// diffFlat records every default whose current value is missing or not the
// same value. Paths are prefix.key, or key when prefix is empty.
func diffFlat(mods *Modifications, prefix string, defaults, current theme.Properties, skipReserved bool) {
	for _, key := range defaults.SortedKeys() {
		if skipReserved && theme.IsReservedKey(key) {
			continue
		}
		value := defaults[key]
		if cur, ok := current.Get(key); !ok || !theme.SameValue(value, cur) {
			mods.Set(theme.JoinPath(prefix, key), value)
		}
	}
}

// diffRowTemplates re-synthesizes the row expression for every column
// property its column type's template defines.
func (p *Planner) diffRowTemplates(plan *ResetPlan, mods *Modifications, inst *theme.Instance, defaults *theme.StyleDefaults) {
	for _, columnKey := range theme.Keys(inst.Columns) {
		column := inst.Columns[columnKey]
		columnType, _ := column[theme.ColumnTypeKey].(string)

		template, ok := defaults.ChildStyle(columnType)
		if !ok {
			plan.AddSkip(Skip{
				InstanceID: inst.ID,
				Path:       theme.JoinPath(theme.ColumnsKey, columnKey),
				Reason:     SkipNoChildTemplate,
			})
			continue
		}

		for _, key := range template.SortedKeys() {
			computed := p.RowExpression(inst.Name, template[key])
			if cur, ok := column.Get(key); !ok || !theme.SameValue(computed, cur) {
				mods.Set(theme.JoinPath(theme.ColumnsKey, columnKey, key), computed)
			}
		}
	}
}

// RowExpression wraps a template value into an expression evaluated once
// per table row:
//
//	{{<name>.<sanitizedDataField>.map((<rowVariable>) => ( <expression>))}}
//
// Non-string template values produce an empty expression.
func (p *Planner) RowExpression(instanceName string, templateValue any) string {
	text, _ := templateValue.(string)
	snippets, segments := p.compiler.Decompose(text)
	expression := p.compiler.Recombine(snippets, segments)
	return fmt.Sprintf("{{%s.%s.map((%s) => ( %s))}}",
		instanceName, p.opts.SanitizedDataField, p.opts.RowVariable, expression)
}

// diffFlatChildren compares every child against the one shared child template.
func (p *Planner) diffFlatChildren(plan *ResetPlan, mods *Modifications, inst *theme.Instance, defaults *theme.StyleDefaults) {
	template, ok := defaults.ChildStyle(p.opts.ChildTemplateKey)
	if !ok {
		if len(inst.Children) > 0 {
			plan.AddSkip(Skip{InstanceID: inst.ID, Path: theme.ChildrenKey, Reason: SkipNoChildTemplate})
		}
		return
	}

	for _, name := range theme.Keys(inst.Children) {
		diffFlat(mods, theme.JoinPath(theme.ChildrenKey, name), template, inst.Children[name], false)
	}
}

// diffSchema walks the form schema, then diffs the auxiliary button style
// groups. The groups are checked even when the widget has no schema.
func (p *Planner) diffSchema(mods *Modifications, inst *theme.Instance, defaults *theme.StyleDefaults) {
	schema.WalkSchema(inst.Schema, func(node *theme.SchemaNode, path string) {
		style := p.resolveField(node.FieldType, defaults.ChildStylesheet)
		for _, key := range style.SortedKeys() {
			value := style[key]
			if cur, ok := node.Lookup(key); !ok || !theme.SameValue(value, cur) {
				mods.Set(theme.JoinPath(path, key), value)
			}
		}
	})

	for _, groupKey := range theme.AuxiliaryGroupKeys {
		group, ok := defaults.Group(groupKey)
		if !ok {
			continue
		}
		current, _ := inst.Properties.Record(groupKey)
		diffFlat(mods, groupKey, group, current, false)
	}
}
