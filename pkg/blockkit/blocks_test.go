package blockkit_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/constraint"
	"github.com/goliatone/go-blockkit/pkg/testsupport"
)

func buttons(t *testing.T, n int) []blockkit.ActionsElement {
	t.Helper()
	out := make([]blockkit.ActionsElement, n)
	for i := range out {
		out[i] = newButton(t, fmt.Sprintf("button-%d", i))
	}
	return out
}

func TestActionsBlockCapacity(t *testing.T) {
	block, err := blockkit.NewActionsBlock(buttons(t, 24), "")
	if err != nil {
		t.Fatalf("new actions block: %v", err)
	}
	if err := block.AddElements(newButton(t, "25th")); err != nil {
		t.Fatalf("25th element should be accepted: %v", err)
	}
	if err := block.AddElements(newButton(t, "26th")); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("26th element: expected ErrCardinality, got %v", err)
	}
	if got := len(block.Elements()); got != 25 {
		t.Fatalf("elements = %d, want 25", got)
	}
	if _, err := blockkit.NewActionsBlock(nil, ""); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("empty actions block: expected ErrCardinality, got %v", err)
	}
}

func TestActionsBlockRejectsMultiSelect(t *testing.T) {
	menu, err := blockkit.NewUsersSelect(blockkit.UsersSelectConfig{Type: blockkit.MultiUsersSelect, ActionID: "who"})
	if err != nil {
		t.Fatalf("new users select: %v", err)
	}
	if _, err := blockkit.NewActionsBlock([]blockkit.ActionsElement{menu}, ""); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("expected ErrCardinality, got %v", err)
	}
	if err := menu.SetType(blockkit.UsersSelect); err != nil {
		t.Fatalf("to single: %v", err)
	}
	if _, err := blockkit.NewActionsBlock([]blockkit.ActionsElement{menu}, "actions"); err != nil {
		t.Fatalf("single select should be accepted: %v", err)
	}
}

func TestActionsBlockIgnoresLaterChildMutation(t *testing.T) {
	menu, err := blockkit.NewStaticSelect(blockkit.StaticSelectConfig{
		ActionID: "priority",
		Options:  testsupport.MustOptions(t, "low", "high"),
	})
	if err != nil {
		t.Fatalf("new static select: %v", err)
	}
	actions, err := blockkit.NewActionsBlock([]blockkit.ActionsElement{menu}, "")
	if err != nil {
		t.Fatalf("new actions block: %v", err)
	}
	if err := menu.SetType(blockkit.MultiStaticSelect); err != nil {
		t.Fatalf("to multi: %v", err)
	}

	elements, _ := blockkit.Build(actions).Get("elements")
	got, _ := elements.([]any)[0].(*blockkit.Body).Get("type")
	if got != blockkit.StaticSelect {
		t.Fatalf("element type = %v, want %s", got, blockkit.StaticSelect)
	}
	if err := actions.SetElements([]blockkit.ActionsElement{menu}); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("setting the multi select: expected ErrCardinality, got %v", err)
	}
}

func TestHeaderBlockIgnoresLaterTextMutation(t *testing.T) {
	text := testsupport.MustPlainText(t, "Weekly report")
	block, err := blockkit.NewHeaderBlock(text, "")
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	if err := text.SetText(strings.Repeat("x", 3000)); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if got := block.Text().Text(); got != "Weekly report" {
		t.Fatalf("header text = %q", got)
	}
	if err := block.SetText(text); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("setting the long text: expected ErrRange, got %v", err)
	}
}

func TestBlockID(t *testing.T) {
	if _, err := blockkit.NewDividerBlock(strings.Repeat("b", 256)); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
	divider, err := blockkit.NewDividerBlock("")
	if err != nil {
		t.Fatalf("new divider: %v", err)
	}
	if divider.Build().Has("block_id") {
		t.Fatalf("unset block_id must be absent")
	}
	if err := divider.SetBlockID("div-1"); err != nil {
		t.Fatalf("set block id: %v", err)
	}
	if got := divider.BlockID(); got != "div-1" {
		t.Fatalf("block id = %q", got)
	}
}

func TestContextBlockCapacity(t *testing.T) {
	elements := make([]blockkit.ContextElement, 11)
	for i := range elements {
		elements[i] = testsupport.MustMrkdwn(t, fmt.Sprintf("item %d", i))
	}
	if _, err := blockkit.NewContextBlock(elements[:10], ""); err != nil {
		t.Fatalf("10 elements should be accepted: %v", err)
	}
	if _, err := blockkit.NewContextBlock(elements, ""); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("expected ErrCardinality, got %v", err)
	}
}

func TestSectionNeedsTextOrFields(t *testing.T) {
	if _, err := blockkit.NewSectionBlock(blockkit.SectionBlockConfig{}); !errors.Is(err, constraint.ErrMutualExclusion) {
		t.Fatalf("expected ErrMutualExclusion, got %v", err)
	}
	section, err := blockkit.NewSectionBlock(blockkit.SectionBlockConfig{
		Text:   testsupport.MustMrkdwn(t, "*Hello*"),
		Fields: []*blockkit.Text{testsupport.MustPlainText(t, "a")},
	})
	if err != nil {
		t.Fatalf("new section: %v", err)
	}
	if err := section.SetText(nil); err != nil {
		t.Fatalf("remove text while fields remain: %v", err)
	}
	if err := section.SetFields(nil); !errors.Is(err, constraint.ErrMutualExclusion) {
		t.Fatalf("removing the last source: expected ErrMutualExclusion, got %v", err)
	}
	if len(section.Fields()) != 1 {
		t.Fatalf("failed SetFields must leave fields unchanged")
	}
}

func TestSectionFieldLimits(t *testing.T) {
	long := testsupport.MustPlainText(t, strings.Repeat("f", 2001))
	if _, err := blockkit.NewSectionBlock(blockkit.SectionBlockConfig{Fields: []*blockkit.Text{long}}); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestHeaderBlock(t *testing.T) {
	if _, err := blockkit.NewHeaderBlock(testsupport.MustPlainText(t, strings.Repeat("h", 151)), ""); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
	if _, err := blockkit.NewHeaderBlock(testsupport.MustMrkdwn(t, "*h*"), ""); !errors.Is(err, constraint.ErrEnum) {
		t.Fatalf("expected ErrEnum, got %v", err)
	}
}

func TestInputBlockDispatchAction(t *testing.T) {
	element, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "comment"})
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	input, err := blockkit.NewInputBlock(blockkit.InputBlockConfig{
		Label:   testsupport.MustPlainText(t, "Comment"),
		Element: element,
	})
	if err != nil {
		t.Fatalf("new input block: %v", err)
	}
	body := input.Build()
	if body.Has("dispatch_action") {
		t.Fatalf("dispatch_action must be absent unless enabled")
	}
	if v, _ := body.Get("optional"); v != false {
		t.Fatalf("optional must always be present, got %v", v)
	}

	input.SetDispatchAction(true)
	if v, _ := input.Build().Get("dispatch_action"); v != true {
		t.Fatalf("dispatch_action = %v", v)
	}
	if _, err := blockkit.NewInputBlock(blockkit.InputBlockConfig{Label: testsupport.MustPlainText(t, "x")}); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("missing element: expected ErrRange, got %v", err)
	}
}

func TestVideoBlockRequiresHTTPS(t *testing.T) {
	cfg := blockkit.VideoBlockConfig{
		AltText:      "demo",
		Title:        testsupport.MustPlainText(t, "Demo"),
		ThumbnailURL: "https://example.com/thumb.png",
		VideoURL:     "http://example.com/embed",
	}
	if _, err := blockkit.NewVideoBlock(cfg); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	cfg.VideoURL = "https://example.com/embed"
	video, err := blockkit.NewVideoBlock(cfg)
	if err != nil {
		t.Fatalf("new video: %v", err)
	}
	if err := video.SetTitleURL("http://example.com"); !errors.Is(err, constraint.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if err := video.SetAuthorName(strings.Repeat("a", 51)); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestFileBlockIsRemote(t *testing.T) {
	file, err := blockkit.NewFileBlock("ABCD1", "")
	if err != nil {
		t.Fatalf("new file block: %v", err)
	}
	if file.Source() != "remote" {
		t.Fatalf("source = %q", file.Source())
	}
	if _, err := blockkit.NewFileBlock("", ""); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}
