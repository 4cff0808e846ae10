// Package state loads and saves the documents a reset works on.
//
// A reset reads two documents: the widget snapshot (widget ID -> widget
// record) and the theme. Both may be JSON, JSONC or YAML. After a reset the
// updated snapshot is written back atomically as JSON.
//
// Key concepts:
//   - Snapshot: a decoded widget collection plus the fingerprint of the
//     bytes it was decoded from
//   - SnapshotStore: interface for loading snapshots and themes and saving
//     snapshots
package state
