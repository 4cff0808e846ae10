package theme

import (
	"reflect"
	"testing"
)

func TestCollection_PreservesInsertionOrder(t *testing.T) {
	c := NewCollection(
		NewInstance("z", "Z", "BUTTON_WIDGET"),
		NewInstance("a", "A", "BUTTON_WIDGET"),
	)
	c.Add(NewInstance("m", "M", "BUTTON_WIDGET"))
	c.Add(NewInstance("z", "Z2", "BUTTON_WIDGET"))

	if got := c.IDs(); !reflect.DeepEqual(got, []string{"z", "a", "m"}) {
		t.Errorf("IDs() = %v, want [z a m]", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if inst, _ := c.Get("z"); inst.Name != "Z2" {
		t.Errorf("expected replaced instance, got %q", inst.Name)
	}

	var nilCollection *Collection
	if nilCollection.Len() != 0 || nilCollection.IDs() != nil {
		t.Error("expected nil collection to be empty")
	}
}

func TestInstance_SetPathRoutesCollections(t *testing.T) {
	inst := NewInstance("w1", "Form1", JSONFormWidget)
	inst.Columns = map[string]Properties{"name": {ColumnTypeKey: "text"}}
	inst.Schema = &Schema{
		RootKey: DefaultRootSchemaKey,
		Root: &SchemaNode{
			FieldType: "Object",
			Children: map[string]*SchemaNode{
				"name": {FieldType: "Text Input", Properties: Properties{}},
			},
		},
	}

	inst.SetPath("primaryColumns.name.cellBackground", "red")
	inst.SetPath("groupButtons.b1.buttonColor", "blue")
	inst.SetPath("schema.__root_schema__.borderRadius", "4px")
	inst.SetPath("schema.__root_schema__.name.accentColor", "green")
	inst.SetPath("schema.__root_schema__.name.labelStyle.color", "black")
	inst.SetPath("schema.__root_schema__.name.fieldType", "Email Input")
	inst.SetPath("resetButtonStyles.buttonColor", "grey")
	inst.SetPath("borderRadius", "0px")

	if got := inst.Columns["name"]["cellBackground"]; got != "red" {
		t.Errorf("column value = %v", got)
	}
	if got := inst.Children["b1"]["buttonColor"]; got != "blue" {
		t.Errorf("child value = %v", got)
	}
	if got := inst.Schema.Root.Properties["borderRadius"]; got != "4px" {
		t.Errorf("root value = %v", got)
	}

	name := inst.Schema.Root.Children["name"]
	if got := name.Properties["accentColor"]; got != "green" {
		t.Errorf("child node value = %v", got)
	}
	if got, _ := name.Lookup("labelStyle.color"); got != "black" {
		t.Errorf("nested node value = %v", got)
	}
	if name.FieldType != "Email Input" {
		t.Errorf("FieldType = %q", name.FieldType)
	}
	if got, _ := inst.Properties.GetPath("resetButtonStyles.buttonColor"); got != "grey" {
		t.Errorf("group value = %v", got)
	}
	if got := inst.Properties["borderRadius"]; got != "0px" {
		t.Errorf("top-level value = %v", got)
	}
}

func TestInstance_SetPathSchemaRootMismatch(t *testing.T) {
	inst := NewInstance("w1", "Form1", JSONFormWidget)
	inst.Schema = &Schema{RootKey: "root", Root: &SchemaNode{}}

	inst.SetPath("schema.other.accentColor", "red")

	if _, ok := inst.Schema.Root.Lookup("accentColor"); ok {
		t.Error("write under another root key must not reach the schema tree")
	}
	if got, _ := inst.Properties.GetPath("schema.other.accentColor"); got != "red" {
		t.Errorf("expected fallback to properties, got %v", got)
	}
}

func TestSchemaNode_Lookup(t *testing.T) {
	n := &SchemaNode{FieldType: "Text Input", Properties: Properties{"accentColor": "red"}}

	if v, ok := n.Lookup("accentColor"); !ok || v != "red" {
		t.Errorf("Lookup(accentColor) = %v, %v", v, ok)
	}
	if v, ok := n.Lookup(FieldTypeKey); !ok || v != "Text Input" {
		t.Errorf("Lookup(fieldType) = %v, %v", v, ok)
	}
	if _, ok := n.Lookup("missing"); ok {
		t.Error("expected Lookup(missing) to fail")
	}

	var nilNode *SchemaNode
	if _, ok := nilNode.Lookup("accentColor"); ok {
		t.Error("expected nil node Lookup to fail")
	}
}

func TestKindTable(t *testing.T) {
	kinds := DefaultKindTable()

	tests := map[string]Kind{
		TableWidget:       KindRowTemplate,
		ButtonGroupWidget: KindFlatChild,
		JSONFormWidget:    KindSchema,
		"BUTTON_WIDGET":   KindFlat,
	}
	for widgetType, want := range tests {
		if got := kinds.KindOf(widgetType); got != want {
			t.Errorf("KindOf(%q) = %q, want %q", widgetType, got, want)
		}
	}

	if _, err := ParseKind("rowTemplate"); err != nil {
		t.Errorf("ParseKind(rowTemplate) error = %v", err)
	}
	if _, err := ParseKind("tree"); err == nil {
		t.Error("expected ParseKind(tree) to fail")
	}
}

func TestStyleDefaults_Lookups(t *testing.T) {
	d := &StyleDefaults{
		ChildStylesheet:    map[string]Properties{"button": {"buttonColor": "red"}},
		SubmitButtonStyles: Properties{"buttonColor": "blue"},
	}

	if _, ok := d.ChildStyle("button"); !ok {
		t.Error("expected button child style")
	}
	if _, ok := d.ChildStyle("text"); ok {
		t.Error("expected no text child style")
	}
	if _, ok := d.Group(SubmitButtonStylesKey); !ok {
		t.Error("expected submit group")
	}
	if _, ok := d.Group(ResetButtonStylesKey); ok {
		t.Error("expected no reset group")
	}

	var nilDefaults *StyleDefaults
	if _, ok := nilDefaults.ChildStyle("button"); ok {
		t.Error("expected nil defaults to have no child style")
	}

	if !IsReservedKey(ChildStylesheetKey) || IsReservedKey("borderRadius") {
		t.Error("IsReservedKey misclassified keys")
	}
}

func TestInstance_GetPathMirrorsSetPath(t *testing.T) {
	inst := NewInstance("w1", "Form1", JSONFormWidget)
	inst.Schema = &Schema{
		RootKey: DefaultRootSchemaKey,
		Root: &SchemaNode{
			Children: map[string]*SchemaNode{"name": {FieldType: "Text Input"}},
		},
	}

	paths := map[string]any{
		"primaryColumns.name.cellBackground":           "red",
		"groupButtons.b1.buttonColor":                  "blue",
		"schema.__root_schema__.name.accentColor":      "green",
		"schema.__root_schema__.name.labelStyle.color": "black",
		"schema.__root_schema__.borderRadius":          "4px",
		"submitButtonStyles.buttonColor":               "grey",
		"borderRadius":                                 "0px",
	}
	for path, value := range paths {
		inst.SetPath(path, value)
	}
	for path, want := range paths {
		if got, ok := inst.GetPath(path); !ok || got != want {
			t.Errorf("GetPath(%q) = %v, %v, want %v", path, got, ok, want)
		}
	}

	if got, ok := inst.GetPath("schema.__root_schema__.name.fieldType"); !ok || got != "Text Input" {
		t.Errorf("GetPath(fieldType) = %v, %v", got, ok)
	}
	if _, ok := inst.GetPath("primaryColumns.missing.cellBackground"); ok {
		t.Error("expected missing column to resolve nothing")
	}
}

func TestInstance_SetPathPrefersNodeHoldingProperty(t *testing.T) {
	newForm := func(rootProps Properties) *Instance {
		inst := NewInstance("f1", "JSONForm1", JSONFormWidget)
		inst.Schema = &Schema{
			RootKey: DefaultRootSchemaKey,
			Root: &SchemaNode{
				FieldType:  "Object",
				Properties: rootProps,
				Children: map[string]*SchemaNode{
					"labelStyle": {FieldType: "Text Input", Properties: Properties{"color": "y"}},
				},
			},
		}
		return inst
	}
	const path = "schema.__root_schema__.labelStyle.color"

	t.Run("root holds the dotted property", func(t *testing.T) {
		inst := newForm(Properties{"labelStyle": map[string]any{"color": "x"}})
		inst.SetPath(path, "#000")

		if got, _ := inst.Schema.Root.Lookup("labelStyle.color"); got != "#000" {
			t.Errorf("root labelStyle.color = %v, want #000", got)
		}
		if got := inst.Schema.Root.Children["labelStyle"].Properties["color"]; got != "y" {
			t.Errorf("child color = %v, want it untouched", got)
		}
		if got, _ := inst.GetPath(path); got != "#000" {
			t.Errorf("GetPath = %v, want the root value", got)
		}
	})

	t.Run("only the child holds it", func(t *testing.T) {
		inst := newForm(Properties{})
		inst.SetPath(path, "#000")

		if got := inst.Schema.Root.Children["labelStyle"].Properties["color"]; got != "#000" {
			t.Errorf("child color = %v, want #000", got)
		}
		if _, ok := inst.Schema.Root.Lookup("labelStyle.color"); ok {
			t.Error("root should not gain a labelStyle record")
		}
	})
}
