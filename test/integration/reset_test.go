package integration

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/theme"
)

const (
	primaryColor   = "{{appsmith.theme.colors.primaryColor}}"
	secondaryColor = "{{appsmith.theme.colors.secondaryColor}}"
	borderRadius   = "{{appsmith.theme.borderRadius.appBorderRadius}}"
)

// The snapshot is YAML so the decoder's YAML path is exercised end to end.
const widgetsYAML = `
g1:
  widgetName: ButtonGroup1
  type: BUTTON_GROUP_WIDGET
  borderRadius: "0px"
  groupButtons:
    groupButton1:
      label: Favorite
      buttonColor: "#000000"
    groupButton2:
      label: More
      buttonColor: "{{appsmith.theme.colors.primaryColor}}"
f1:
  widgetName: JSONForm1
  type: JSON_FORM_WIDGET
  borderRadius: "{{appsmith.theme.borderRadius.appBorderRadius}}"
  submitButtonStyles:
    buttonColor: "#03b365"
  schema:
    __root_schema__:
      fieldType: Object
      borderRadius: "{{appsmith.theme.borderRadius.appBorderRadius}}"
      children:
        email:
          fieldType: Email Input
          accentColor: "#553DE9"
t1:
  widgetName: Table1
  type: TABLE_WIDGET
  primaryColumns:
    action:
      columnType: button
      buttonColor: "#ff0000"
i1:
  widgetName: Icon1
  type: ICON_WIDGET
  color: blue
`

// exportJSON is an application export whose two theme variants disagree on
// the button colors. It carries JSONC comments and trailing commas.
const exportJSON = `{
	// shown in the editor
	"editModeTheme": {
		"name": "Draft",
		"stylesheet": {
			"BUTTON_GROUP_WIDGET": {
				"borderRadius": "{{appsmith.theme.borderRadius.appBorderRadius}}",
				"childStylesheet": {"button": {"buttonColor": "{{appsmith.theme.colors.secondaryColor}}"}},
			},
		},
	},
	"publishedTheme": {
		"name": "Rounded",
		"stylesheet": {
			"BUTTON_GROUP_WIDGET": {
				"borderRadius": "{{appsmith.theme.borderRadius.appBorderRadius}}",
				"childStylesheet": {"button": {"buttonColor": "{{appsmith.theme.colors.primaryColor}}"}},
			},
			"JSON_FORM_WIDGET": {
				"borderRadius": "{{appsmith.theme.borderRadius.appBorderRadius}}",
				"childStylesheet": {
					"Object": {"borderRadius": "{{appsmith.theme.borderRadius.appBorderRadius}}"},
					"Email Input": {"accentColor": "{{appsmith.theme.colors.primaryColor}}"},
				},
				"submitButtonStyles": {"buttonColor": "{{appsmith.theme.colors.primaryColor}}"},
			},
			"TABLE_WIDGET": {
				"childStylesheet": {"button": {"buttonColor": "{{appsmith.theme.colors.primaryColor}}"}},
			},
		},
	},
}`

func TestReset_PublishedThemeAcrossWidgetKinds(t *testing.T) {
	env := newTestEnv(t, widgetsYAML, exportJSON)
	ctx := context.Background()

	result, err := env.engine.Reset(ctx, &engine.ResetRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
		Variant:      theme.ThemePublished,
	})
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if result.Theme.Name != "Rounded" {
		t.Errorf("theme = %q, want published theme", result.Theme.Name)
	}

	cmds := result.Plan.Commands
	if len(cmds) != 3 {
		t.Fatalf("expected commands for g1, f1, t1, got %s", describe(cmds))
	}
	for i, id := range []string{"g1", "f1", "t1"} {
		if cmds[i].InstanceID != id {
			t.Errorf("command %d = %s, want %s", i, cmds[i].InstanceID, id)
		}
	}

	tests := []struct {
		id   string
		want map[string]any
	}{
		{"g1", map[string]any{
			"borderRadius":                          borderRadius,
			"groupButtons.groupButton1.buttonColor": primaryColor,
		}},
		{"f1", map[string]any{
			"submitButtonStyles.buttonColor":           primaryColor,
			"schema.__root_schema__.email.accentColor": primaryColor,
		}},
		{"t1", map[string]any{
			"primaryColumns.action.buttonColor": "{{Table1.sanitizedTableData.map((currentRow) => ( appsmith.theme.colors.primaryColor))}}",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := modsOf(t, cmds, tt.id); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("modifications = %v, want %v", got, tt.want)
			}
		})
	}

	if len(result.Plan.Skipped) != 1 || result.Plan.Skipped[0].InstanceID != "i1" {
		t.Errorf("expected the icon to be skipped, got %+v", result.Plan.Skipped)
	}

	written := env.fs.read(t, snapshotPath)
	if !strings.HasPrefix(written, "{") {
		t.Errorf("expected the snapshot to be written back as JSON, got:\n%s", written)
	}
	if !strings.Contains(written, "(currentRow) => (") {
		t.Errorf("row expression should be written unescaped:\n%s", written)
	}

	again, err := env.engine.Plan(ctx, &engine.PlanRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
		Variant:      theme.ThemePublished,
		Check:        true,
	})
	if err != nil {
		t.Fatalf("expected a clean plan after reset, got %v", err)
	}

	icon, _ := again.Snapshot.Instances.Get("i1")
	if icon.Properties["color"] != "blue" {
		t.Error("widget without defaults must be left alone")
	}
	form, _ := again.Snapshot.Instances.Get("f1")
	if form.Schema == nil || form.Schema.Root.Children["email"].FieldType != "Email Input" {
		t.Errorf("form schema lost in round trip: %+v", form.Schema)
	}
}

func TestReset_EditModeVariant(t *testing.T) {
	env := newTestEnv(t, widgetsYAML, exportJSON)

	result, err := env.engine.Plan(context.Background(), &engine.PlanRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if result.Theme.Name != "Draft" {
		t.Errorf("theme = %q, want edit-mode theme", result.Theme.Name)
	}
	want := map[string]any{
		"borderRadius":                          borderRadius,
		"groupButtons.groupButton1.buttonColor": secondaryColor,
		"groupButtons.groupButton2.buttonColor": secondaryColor,
	}
	if got := modsOf(t, result.Plan.Commands, "g1"); !reflect.DeepEqual(got, want) {
		t.Errorf("modifications = %v, want %v", got, want)
	}
	if len(result.Plan.Commands) != 1 {
		t.Errorf("only the button group is themed in edit mode, got %s", describe(result.Plan.Commands))
	}
}

func TestReset_RefusesConcurrentEdit(t *testing.T) {
	env := newTestEnv(t, widgetsYAML, exportJSON)

	edited := widgetsYAML + "x1:\n  widgetName: Text1\n  type: TEXT_WIDGET\n"
	reads := 0
	env.fs.afterRead = func(path string) {
		if path != snapshotPath {
			return
		}
		reads++
		if reads == 1 {
			env.fs.write(snapshotPath, edited)
		}
	}

	_, err := env.engine.Reset(context.Background(), &engine.ResetRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
		Variant:      theme.ThemePublished,
	})
	if !errors.Is(err, engine.ErrDrift) {
		t.Fatalf("expected ErrDrift, got %v", err)
	}

	if got := env.fs.read(t, snapshotPath); got != edited {
		t.Error("the concurrent edit must not be overwritten")
	}
	entries, err := env.journal.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no journal entry expected after drift, got %d", len(entries))
	}
}

func TestReset_JournalHistory(t *testing.T) {
	env := newTestEnv(t, widgetsYAML, exportJSON)
	ctx := context.Background()

	first, err := env.engine.Reset(ctx, &engine.ResetRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
	})
	if err != nil {
		t.Fatalf("edit-mode Reset failed: %v", err)
	}
	second, err := env.engine.Reset(ctx, &engine.ResetRequest{
		SnapshotPath: snapshotPath,
		ThemePath:    themePath,
		Variant:      theme.ThemePublished,
	})
	if err != nil {
		t.Fatalf("published Reset failed: %v", err)
	}
	if second.Snapshot.Hash != first.AfterHash {
		t.Errorf("second reset should start from the first one's output")
	}

	history, err := env.engine.History(ctx, &engine.HistoryRequest{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history.Entries))
	}
	if history.Entries[0].ID != second.Entry.ID || history.Entries[1].ID != first.Entry.ID {
		t.Errorf("expected newest first, got %s, %s", history.Entries[0].ID, history.Entries[1].ID)
	}
	if history.Entries[0].Variant != theme.ThemePublished {
		t.Errorf("variant = %q", history.Entries[0].Variant)
	}

	one, err := env.engine.History(ctx, &engine.HistoryRequest{ID: first.Entry.ID})
	if err != nil {
		t.Fatalf("History by ID failed: %v", err)
	}
	if got := one.Entries[0].ModificationCount(); got != first.Plan.ModificationCount() {
		t.Errorf("recorded %d modifications, want %d", got, first.Plan.ModificationCount())
	}
}
