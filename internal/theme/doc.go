// Package theme defines the widget and stylesheet model that reset plans
// are computed over.
//
// The model is a read-only snapshot during planning. Widgets carry an
// open property mapping plus at most one typed nested collection, selected
// by the widget type:
//   - Columns: row-template collection keyed by column key (tables)
//   - Children: flat child records keyed by child name (button groups)
//   - Schema: recursive form-field tree (JSON forms)
//
// A Stylesheet maps widget types to StyleDefaults. Values are compared with
// SameValue, which is deliberately shallow: composite values only match
// when they are the same map or slice.
package theme
