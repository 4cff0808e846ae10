// Package planner computes theme reset plans.
//
// The planner compares every widget in a snapshot against its type's style
// defaults and produces the smallest set of path -> value modifications
// that restore the theme's styling. Planning is pure and deterministic: it
// never mutates its inputs and yields the same plan for the same snapshot.
//
// Key responsibilities:
//   - Flat diff of a widget's direct properties (reserved tables excluded)
//   - Row-template diff for tables, re-synthesizing per-row expressions
//   - Shared-template diff for button group children
//   - Recursive schema diff for forms, plus submit/reset button styles
//   - One UpdateCommand per widget that has at least one modification
package planner
