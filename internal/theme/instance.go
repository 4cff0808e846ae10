package theme

import "strings"

// Well-known widget property keys.
const (
	WidgetIDKey   = "widgetId"
	WidgetNameKey = "widgetName"
	TypeKey       = "type"

	// ColumnsKey holds the row-template collection of table widgets.
	ColumnsKey    = "primaryColumns"
	ColumnTypeKey = "columnType"

	// ChildrenKey holds the flat child collection of button group widgets.
	ChildrenKey = "groupButtons"

	// SchemaKey holds the schema tree of form widgets.
	SchemaKey            = "schema"
	SchemaChildrenKey    = "children"
	FieldTypeKey         = "fieldType"
	DefaultRootSchemaKey = "__root_schema__"
)

// Instance is one configured widget in the tree being reset.
type Instance struct {
	// ID is the unique, stable widget ID
	ID string

	// Name is the widget name used when synthesizing row expressions
	Name string

	// Type selects the style defaults and diff strategy
	Type string

	// Properties holds every property that is not a typed collection
	Properties Properties

	// Columns is the row-template collection (column key -> column record)
	Columns map[string]Properties

	// Children is the flat child collection (child name -> child record)
	Children map[string]Properties

	// Schema is the form field tree, nil when the widget has none
	Schema *Schema
}

// Schema is a schema tree together with the key its root is stored under.
type Schema struct {
	RootKey string
	Root    *SchemaNode
}

// SchemaNode is one node of a recursive form-field definition tree.
type SchemaNode struct {
	FieldType  string
	Properties Properties
	Children   map[string]*SchemaNode
}

// NewInstance creates an Instance with empty property storage.
func NewInstance(id, name, widgetType string) *Instance {
	return &Instance{
		ID:         id,
		Name:       name,
		Type:       widgetType,
		Properties: make(Properties),
	}
}

// Lookup resolves a path-aware key against the node. fieldType is
// addressable like any other property.
func (n *SchemaNode) Lookup(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	if v, ok := n.Properties.GetPath(key); ok {
		return v, true
	}
	if key == FieldTypeKey {
		return n.FieldType, true
	}
	return nil, false
}

// ChildKeys returns the node's child keys in lexical order.
func (n *SchemaNode) ChildKeys() []string {
	if n == nil {
		return nil
	}
	return Keys(n.Children)
}

// SetPath writes value at a modification path, routing the typed
// collection prefixes (primaryColumns, groupButtons, schema) into the
// matching collection. Every other path lands in Properties.
func (i *Instance) SetPath(path string, value any) {
	if i.Properties == nil {
		i.Properties = make(Properties)
	}

	segments := strings.Split(path, PathSeparator)
	if len(segments) >= 3 {
		rest := strings.Join(segments[2:], PathSeparator)
		switch segments[0] {
		case ColumnsKey:
			if i.Columns == nil {
				i.Columns = make(map[string]Properties)
			}
			i.Columns[segments[1]] = setRecordPath(i.Columns[segments[1]], rest, value)
			return
		case ChildrenKey:
			if i.Children == nil {
				i.Children = make(map[string]Properties)
			}
			i.Children[segments[1]] = setRecordPath(i.Children[segments[1]], rest, value)
			return
		case SchemaKey:
			if i.Schema != nil && i.Schema.Root != nil && i.Schema.RootKey == segments[1] {
				i.Schema.Root.setPath(segments[2:], value)
				return
			}
		}
	}

	i.Properties.SetPath(path, value)
}

// GetPath reads the value at a modification path, following the same
// routing as SetPath.
func (i *Instance) GetPath(path string) (any, bool) {
	segments := strings.Split(path, PathSeparator)
	if len(segments) >= 3 {
		rest := strings.Join(segments[2:], PathSeparator)
		switch segments[0] {
		case ColumnsKey:
			if i.Columns != nil {
				return i.Columns[segments[1]].GetPath(rest)
			}
		case ChildrenKey:
			if i.Children != nil {
				return i.Children[segments[1]].GetPath(rest)
			}
		case SchemaKey:
			if i.Schema != nil && i.Schema.Root != nil && i.Schema.RootKey == segments[1] {
				return i.Schema.Root.getPath(segments[2:])
			}
		}
	}
	return i.Properties.GetPath(path)
}

func (n *SchemaNode) getPath(segments []string) (any, bool) {
	node, rest := n.resolve(segments)
	return node.Lookup(rest)
}

// resolve finds the node a schema path addresses and the property path left
// on it. A child and a dotted property can share a prefix, as with a child
// named labelStyle next to a labelStyle.color property. The node that
// already holds the property wins, otherwise the path descends.
func (n *SchemaNode) resolve(segments []string) (*SchemaNode, string) {
	node := n
	for len(segments) > 1 {
		if _, ok := node.Properties.GetPath(strings.Join(segments, PathSeparator)); ok {
			break
		}
		child, ok := node.Children[segments[0]]
		if !ok || child == nil {
			break
		}
		node = child
		segments = segments[1:]
	}
	return node, strings.Join(segments, PathSeparator)
}

// setPath writes value at the node and property path resolve picks. A
// property missing on both sides still lands on the child.
func (n *SchemaNode) setPath(segments []string, value any) {
	node, rest := n.resolve(segments)

	if rest == FieldTypeKey {
		if s, ok := value.(string); ok {
			node.FieldType = s
			return
		}
	}

	if node.Properties == nil {
		node.Properties = make(Properties)
	}
	node.Properties.SetPath(rest, value)
}

func setRecordPath(record Properties, path string, value any) Properties {
	if record == nil {
		record = make(Properties)
	}
	record.SetPath(path, value)
	return record
}

// Collection is an ordered mapping of widget ID to Instance.
// Iteration follows insertion order.
type Collection struct {
	ids  []string
	byID map[string]*Instance
}

// NewCollection creates a Collection holding the given instances in order.
func NewCollection(instances ...*Instance) *Collection {
	c := &Collection{byID: make(map[string]*Instance)}
	for _, inst := range instances {
		c.Add(inst)
	}
	return c
}

// Add inserts inst under its ID. Replacing an existing ID keeps its position.
func (c *Collection) Add(inst *Instance) {
	if inst == nil {
		return
	}
	if c.byID == nil {
		c.byID = make(map[string]*Instance)
	}
	if _, exists := c.byID[inst.ID]; !exists {
		c.ids = append(c.ids, inst.ID)
	}
	c.byID[inst.ID] = inst
}

// Get returns the instance with the given ID.
func (c *Collection) Get(id string) (*Instance, bool) {
	if c == nil {
		return nil, false
	}
	inst, ok := c.byID[id]
	return inst, ok
}

// IDs returns instance IDs in insertion order.
func (c *Collection) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Len returns the number of instances.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}
