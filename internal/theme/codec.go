package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Theme variants held by an application export.
const (
	ThemeEditMode  = "editModeTheme"
	ThemePublished = "publishedTheme"
)

const (
	themeStylesheetKey  = "stylesheet"
	themeNameKey        = "name"
	themeDisplayNameKey = "displayName"
)

// jsonDocument strips JSONC comments and trailing commas and reports
// whether the result is a JSON document. Anything else is read as YAML.
func jsonDocument(data []byte) ([]byte, bool) {
	converted := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(converted) == 0 || (converted[0] != '{' && converted[0] != '[') {
		return nil, false
	}
	return converted, true
}

// mappingRoot parses a YAML document and returns its top-level mapping
// node, or nil for an empty document.
func mappingRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at document root, got %s", nodeKindName(root.Kind))
	}
	return root, nil
}

// DecodeCollection decodes a widget snapshot (widget ID -> widget record)
// from JSON, JSONC or YAML. Widget order in the document is preserved.
func DecodeCollection(data []byte) (*Collection, error) {
	return DecodeCollectionWithRoot(data, DefaultRootSchemaKey)
}

// DecodeCollectionWithRoot is DecodeCollection with a custom preferred key
// for the root of form schemas.
func DecodeCollectionWithRoot(data []byte, rootSchemaKey string) (*Collection, error) {
	if doc, ok := jsonDocument(data); ok {
		return decodeJSONCollection(doc, rootSchemaKey)
	}

	root, err := mappingRoot(data)
	if err != nil {
		return nil, err
	}

	c := NewCollection()
	if root == nil {
		return c, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		id := root.Content[i].Value
		var record map[string]any
		if err := root.Content[i+1].Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode widget %q: %w", id, err)
		}
		c.Add(instanceFromRecord(id, record, rootSchemaKey))
	}
	return c, nil
}

// decodeJSONCollection walks the top-level object token by token so widgets
// keep their document order.
func decodeJSONCollection(doc []byte, rootSchemaKey string) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a mapping at document root, got %s", jsonTokenKind(tok))
	}

	c := NewCollection()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		id, _ := tok.(string)

		var record map[string]any
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode widget %q: %w", id, err)
		}
		c.Add(instanceFromRecord(id, record, rootSchemaKey))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: unexpected data after the document")
	}
	return c, nil
}

func jsonTokenKind(tok json.Token) string {
	if delim, ok := tok.(json.Delim); ok && delim == '[' {
		return "sequence"
	}
	return "scalar"
}

func instanceFromRecord(id string, record map[string]any, rootSchemaKey string) *Instance {
	props := Properties(record)
	if props == nil {
		props = make(Properties)
	}

	name, _ := props[WidgetNameKey].(string)
	widgetType, _ := props[TypeKey].(string)
	delete(props, WidgetIDKey)
	delete(props, WidgetNameKey)
	delete(props, TypeKey)

	inst := &Instance{ID: id, Name: name, Type: widgetType, Properties: props}

	if records, ok := recordMap(props[ColumnsKey]); ok {
		inst.Columns = records
		delete(props, ColumnsKey)
	}
	if records, ok := recordMap(props[ChildrenKey]); ok {
		inst.Children = records
		delete(props, ChildrenKey)
	}
	if schema, ok := schemaFromValue(props[SchemaKey], rootSchemaKey); ok {
		inst.Schema = schema
		delete(props, SchemaKey)
	}
	return inst
}

// recordMap converts a mapping of records. It fails when any entry is not
// a record, in which case the value stays an opaque property.
func recordMap(v any) (map[string]Properties, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	records := make(map[string]Properties, len(m))
	for key, entry := range m {
		record, ok := asMap(entry)
		if !ok {
			return nil, false
		}
		records[key] = Properties(record)
	}
	return records, true
}

// schemaFromValue prefers rootKey and otherwise accepts a schema with a
// single root entry under any key.
func schemaFromValue(v any, rootKey string) (*Schema, bool) {
	m, ok := asMap(v)
	if !ok || len(m) == 0 {
		return nil, false
	}

	if rootKey == "" {
		rootKey = DefaultRootSchemaKey
	}
	if _, ok := m[rootKey]; !ok {
		if len(m) != 1 {
			return nil, false
		}
		for key := range m {
			rootKey = key
		}
	}

	root, ok := schemaNodeFromValue(m[rootKey])
	if !ok {
		return nil, false
	}
	return &Schema{RootKey: rootKey, Root: root}, true
}

// schemaNodeFromValue decodes a node. Children that are not records are
// dropped along with their subtree.
func schemaNodeFromValue(v any) (*SchemaNode, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}

	node := &SchemaNode{Properties: make(Properties, len(m))}
	for key, value := range m {
		switch key {
		case FieldTypeKey:
			if s, ok := value.(string); ok {
				node.FieldType = s
				continue
			}
			node.Properties[key] = value
		case SchemaChildrenKey:
			children, ok := asMap(value)
			if !ok {
				continue
			}
			node.Children = make(map[string]*SchemaNode, len(children))
			for childKey, childValue := range children {
				if child, ok := schemaNodeFromValue(childValue); ok {
					node.Children[childKey] = child
				}
			}
		default:
			node.Properties[key] = value
		}
	}
	return node, true
}

// EncodeCollection encodes a snapshot as indented JSON, keeping widget order.
func EncodeCollection(c *Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for n, id := range c.IDs() {
		inst, _ := c.Get(id)

		key, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("failed to encode widget ID %q: %w", id, err)
		}
		var value bytes.Buffer
		enc := json.NewEncoder(&value)
		enc.SetEscapeHTML(false)
		enc.SetIndent("  ", "  ")
		if err := enc.Encode(instanceRecord(inst)); err != nil {
			return nil, fmt.Errorf("failed to encode widget %q: %w", id, err)
		}

		if n > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(bytes.TrimSuffix(value.Bytes(), []byte("\n")))
	}
	if c.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func instanceRecord(inst *Instance) map[string]any {
	record := make(map[string]any, len(inst.Properties)+6)
	for k, v := range inst.Properties {
		record[k] = v
	}

	record[WidgetIDKey] = inst.ID
	if inst.Name != "" {
		record[WidgetNameKey] = inst.Name
	}
	if inst.Type != "" {
		record[TypeKey] = inst.Type
	}
	if inst.Columns != nil {
		record[ColumnsKey] = inst.Columns
	}
	if inst.Children != nil {
		record[ChildrenKey] = inst.Children
	}
	if inst.Schema != nil && inst.Schema.Root != nil {
		record[SchemaKey] = map[string]any{inst.Schema.RootKey: schemaNodeRecord(inst.Schema.Root)}
	}
	return record
}

func schemaNodeRecord(n *SchemaNode) map[string]any {
	record := make(map[string]any, len(n.Properties)+2)
	for k, v := range n.Properties {
		record[k] = v
	}
	if n.FieldType != "" {
		record[FieldTypeKey] = n.FieldType
	}
	children := make(map[string]any, len(n.Children))
	for key, child := range n.Children {
		children[key] = schemaNodeRecord(child)
	}
	record[SchemaChildrenKey] = children
	return record
}

// DecodeStylesheet decodes a widget type -> style defaults mapping.
func DecodeStylesheet(data []byte) (Stylesheet, error) {
	raw, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}
	return stylesheetFromMap(raw), nil
}

// DecodeTheme decodes a theme document. Three shapes are accepted: a bare
// stylesheet, a theme object with a "stylesheet" key, or an application
// export holding editModeTheme and publishedTheme, of which variant picks one.
func DecodeTheme(data []byte, variant string) (*Theme, error) {
	raw, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}

	_, hasEdit := raw[ThemeEditMode]
	_, hasPublished := raw[ThemePublished]
	if hasEdit || hasPublished {
		if variant == "" {
			variant = ThemeEditMode
		}
		if variant != ThemeEditMode && variant != ThemePublished {
			return nil, fmt.Errorf("unknown theme variant %q", variant)
		}
		selected, ok := asMap(raw[variant])
		if !ok {
			return nil, fmt.Errorf("application export has no %s", variant)
		}
		raw = selected
	}

	t := &Theme{}
	if sheet, ok := asMap(raw[themeStylesheetKey]); ok {
		t.Name, _ = raw[themeNameKey].(string)
		t.DisplayName, _ = raw[themeDisplayNameKey].(string)
		t.Stylesheet = stylesheetFromMap(sheet)
		return t, nil
	}

	t.Stylesheet = stylesheetFromMap(raw)
	return t, nil
}

func decodeMapping(data []byte) (map[string]any, error) {
	if doc, ok := jsonDocument(data); ok {
		var raw map[string]any
		if err := json.Unmarshal(doc, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
		return raw, nil
	}

	root, err := mappingRoot(data)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]any)
	if root == nil {
		return raw, nil
	}
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode mapping: %w", err)
	}
	return raw, nil
}

func stylesheetFromMap(raw map[string]any) Stylesheet {
	sheet := make(Stylesheet, len(raw))
	for widgetType, value := range raw {
		m, ok := asMap(value)
		if !ok {
			continue
		}
		sheet[widgetType] = styleDefaultsFromMap(m)
	}
	return sheet
}

func styleDefaultsFromMap(m map[string]any) *StyleDefaults {
	d := &StyleDefaults{Properties: make(Properties, len(m))}
	for key, value := range m {
		switch key {
		case ChildStylesheetKey:
			d.ChildStylesheet = childStyles(value)
		case SubmitButtonStylesKey:
			if group, ok := asMap(value); ok {
				d.SubmitButtonStyles = Properties(group)
			}
		case ResetButtonStylesKey:
			if group, ok := asMap(value); ok {
				d.ResetButtonStyles = Properties(group)
			}
		default:
			d.Properties[key] = value
		}
	}
	return d
}

// childStyles keeps every record entry of a childStylesheet table and
// ignores the rest.
func childStyles(v any) map[string]Properties {
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	styles := make(map[string]Properties, len(m))
	for key, entry := range m {
		if record, ok := asMap(entry); ok {
			styles[key] = Properties(record)
		}
	}
	return styles
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "mapping"
}
