package recipe_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/constraint"
	"github.com/goliatone/go-blockkit/pkg/recipe"
	"github.com/goliatone/go-blockkit/pkg/testsupport"
)

func load(t *testing.T, path string) recipe.Recipe {
	t.Helper()
	r, err := recipe.LoadFile(os.DirFS("testdata"), path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return r
}

func TestBuild_Golden(t *testing.T) {
	surface, err := recipe.Build(load(t, "ticket.yaml"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if surface.Kind() != "modal" {
		t.Fatalf("unexpected kind %q", surface.Kind())
	}
	testsupport.AssertGoldenEntity(t, "testdata/ticket.golden.json", surface)
}

func TestBuild_Message(t *testing.T) {
	surface, err := recipe.Build(load(t, "standup.yaml"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	msg, ok := surface.(*blockkit.Message)
	if !ok {
		t.Fatalf("expected *blockkit.Message, got %T", surface)
	}
	if msg.Text() != "Standup reminder" {
		t.Fatalf("unexpected fallback %q", msg.Text())
	}

	var types []string
	for _, b := range msg.Blocks() {
		types = append(types, b.Type())
	}
	if diff := cmp.Diff([]string{"header", "section", "actions", "context"}, types); diff != "" {
		t.Fatalf("block types mismatch (-want +got):\n%s", diff)
	}

	data := testsupport.Plain(t, msg)
	actions := data["blocks"].([]any)[2].(map[string]any)
	menu := actions["elements"].([]any)[1].(map[string]any)
	want := map[string]any{
		"text":  map[string]any{"type": "plain_text", "text": "Good", "emoji": true},
		"value": "good",
	}
	if diff := cmp.Diff(want, menu["initial_option"]); diff != "" {
		t.Fatalf("initial option mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_GroupsFilterAndDispatch(t *testing.T) {
	surface, err := recipe.Build(load(t, "escalation.yaml"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	blocks := testsupport.Plain(t, surface)["blocks"].([]any)
	element := func(i int) map[string]any {
		return blocks[i].(map[string]any)["element"].(map[string]any)
	}

	team := element(0)
	if _, ok := team["options"]; ok {
		t.Fatalf("option groups should replace options: %v", team)
	}
	groups := team["option_groups"].([]any)
	if len(groups) != 2 {
		t.Fatalf("expected two option groups, got %v", groups)
	}
	wantInitial := map[string]any{
		"text":  map[string]any{"type": "plain_text", "text": "SRE", "emoji": true},
		"value": "sre",
	}
	if diff := cmp.Diff(wantInitial, team["initial_option"]); diff != "" {
		t.Fatalf("initial option mismatch (-want +got):\n%s", diff)
	}

	channel := element(1)
	wantFilter := map[string]any{
		"include":                          []any{"public", "private"},
		"exclude_external_shared_channels": false,
		"exclude_bot_users":                true,
	}
	if diff := cmp.Diff(wantFilter, channel["filter"]); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
	if channel["default_to_current_conversation"] != true {
		t.Fatalf("expected default_to_current_conversation, got %v", channel)
	}

	summary := element(2)
	wantDispatch := map[string]any{"trigger_actions_on": []any{"on_enter_pressed"}}
	if diff := cmp.Diff(wantDispatch, summary["dispatch_action_config"]); diff != "" {
		t.Fatalf("dispatch config mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name   string
		recipe recipe.Recipe
		target error
	}{
		{
			name:   "unknown surface",
			recipe: recipe.Recipe{Surface: "canvas"},
			target: recipe.ErrUnknownSurface,
		},
		{
			name:   "unknown block",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{Type: "carousel"}}},
			target: recipe.ErrUnknownBlock,
		},
		{
			name: "multi select in actions",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{
				Type:     "actions",
				Elements: []recipe.Element{{Type: "multi_users_select", ActionID: "who"}},
			}}},
			target: constraint.ErrCardinality,
		},
		{
			name: "input element in section",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{
				Type:      "section",
				Text:      "hi",
				Accessory: &recipe.Element{Type: "plain_text_input", ActionID: "x"},
			}}},
			target: recipe.ErrPlacement,
		},
		{
			name: "header too long",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{
				Type: "header",
				Text: strings.Repeat("h", 151),
			}}},
			target: constraint.ErrRange,
		},
		{
			name: "dispatch without a known trigger",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{
				Type:    "input",
				Label:   "Query",
				Element: &recipe.Element{Type: "plain_text_input", ActionID: "q", DispatchTriggers: []string{"on_blur"}},
			}}},
			target: constraint.ErrEnum,
		},
		{
			name: "filter with an unknown scope",
			recipe: recipe.Recipe{Surface: "home", Blocks: []recipe.Block{{
				Type:     "actions",
				Elements: []recipe.Element{{Type: "conversations_select", ActionID: "c", Filter: &recipe.Filter{Include: []string{"dm"}}}},
			}}},
			target: constraint.ErrEnum,
		},
		{
			name:   "modal without title",
			recipe: recipe.Recipe{Surface: "modal"},
			target: constraint.ErrRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recipe.Build(tc.recipe)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestParse_JSONAndYAML(t *testing.T) {
	fromJSON, err := recipe.Parse([]byte(`{"surface":"home","blocks":[{"type":"divider"}]}`), "inline.json")
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	fromYAML, err := recipe.Parse([]byte("surface: home\nblocks:\n  - type: divider\n"), "inline.yaml")
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Fatalf("recipes differ (-json +yaml):\n%s", diff)
	}

	if _, err := recipe.Parse([]byte("  \n"), "blank.yaml"); !errors.Is(err, recipe.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml":    {Data: []byte("surface: home\nblocks: []\n")},
		"b.json":    {Data: []byte(`{"surface":"message","text":"hi","blocks":[]}`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	got, err := recipe.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got["a.yaml"].Surface != "home" || got["b.json"].Text != "hi" {
		t.Fatalf("unexpected recipes: %+v", got)
	}
}
