package blockkit_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
	"github.com/goliatone/go-blockkit/pkg/constraint"
	"github.com/goliatone/go-blockkit/pkg/testsupport"
)

func divider(t *testing.T, id string) *blockkit.DividerBlock {
	t.Helper()
	d, err := blockkit.NewDividerBlock(id)
	if err != nil {
		t.Fatalf("new divider: %v", err)
	}
	return d
}

func header(t *testing.T, text string) *blockkit.HeaderBlock {
	t.Helper()
	h, err := blockkit.NewHeaderBlock(testsupport.MustPlainText(t, text), "")
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	return h
}

func inputBlock(t *testing.T) *blockkit.InputBlock {
	t.Helper()
	element, err := blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{ActionID: "note"})
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	in, err := blockkit.NewInputBlock(blockkit.InputBlockConfig{
		Label:   testsupport.MustPlainText(t, "Note"),
		Element: element,
	})
	if err != nil {
		t.Fatalf("new input block: %v", err)
	}
	return in
}

func blockIDs(blocks []blockkit.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Type() + ":" + b.BlockID()
	}
	return out
}

func TestHomeAddAndInsert(t *testing.T) {
	home, err := blockkit.NewHome(blockkit.HomeConfig{})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}
	if err := home.Add(divider(t, "a"), divider(t, "c")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := home.Insert(1, divider(t, "b")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := home.Insert(4, divider(t, "x")); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("out of range insert: expected ErrRange, got %v", err)
	}
	if err := home.Insert(-1, divider(t, "x")); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("negative insert: expected ErrRange, got %v", err)
	}

	want := []string{"divider:a", "divider:b", "divider:c"}
	if diff := cmp.Diff(want, blockIDs(home.Blocks())); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBeforeAndAfter(t *testing.T) {
	home, err := blockkit.NewHome(blockkit.HomeConfig{
		Blocks: []blockkit.Block{divider(t, "d1"), header(t, "Title"), divider(t, "d2")},
	})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}

	if err := home.AddBefore(divider(t, "before-d2"), "divider", 2, true); err != nil {
		t.Fatalf("add before: %v", err)
	}
	if err := home.AddAfter(divider(t, "after-d1"), "divider", 1, true); err != nil {
		t.Fatalf("add after: %v", err)
	}

	want := []string{"divider:d1", "divider:after-d1", "header:", "divider:before-d2", "divider:d2"}
	if diff := cmp.Diff(want, blockIDs(home.Blocks())); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRelativeMissingTarget(t *testing.T) {
	home, err := blockkit.NewHome(blockkit.HomeConfig{Blocks: []blockkit.Block{divider(t, "only")}})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}

	if err := home.AddAfter(divider(t, "x"), "section", 1, true); !errors.Is(err, blockkit.ErrBlockNotFound) {
		t.Fatalf("strict: expected ErrBlockNotFound, got %v", err)
	}
	if len(home.Blocks()) != 1 {
		t.Fatalf("strict failure must leave blocks unchanged")
	}

	if err := home.AddBefore(divider(t, "appended"), "section", 1, false); err != nil {
		t.Fatalf("non strict: %v", err)
	}
	want := []string{"divider:only", "divider:appended"}
	if diff := cmp.Diff(want, blockIDs(home.Blocks())); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}

	if err := home.AddBefore(divider(t, "x"), "divider", 0, false); !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("occurrence 0: expected ErrRange, got %v", err)
	}
}

func TestFileBlocksOnlyInMessages(t *testing.T) {
	file, err := blockkit.NewFileBlock("F1", "")
	if err != nil {
		t.Fatalf("new file block: %v", err)
	}

	if _, err := blockkit.NewHome(blockkit.HomeConfig{Blocks: []blockkit.Block{file}}); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("home: expected ErrCardinality, got %v", err)
	}

	modal, err := blockkit.NewModal(blockkit.ModalConfig{
		Title: testsupport.MustPlainText(t, "Modal"),
		Close: testsupport.MustPlainText(t, "Close"),
	})
	if err != nil {
		t.Fatalf("new modal: %v", err)
	}
	if err := modal.Add(file); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("modal: expected ErrCardinality, got %v", err)
	}

	if _, err := blockkit.NewMessage("", file); err != nil {
		t.Fatalf("message should accept file blocks: %v", err)
	}
}

func TestSurfaceBlockCapacity(t *testing.T) {
	blocks := make([]blockkit.Block, 51)
	for i := range blocks {
		blocks[i] = divider(t, "")
	}
	if _, err := blockkit.NewMessage("", blocks[:50]...); err != nil {
		t.Fatalf("50 blocks should be accepted: %v", err)
	}
	if _, err := blockkit.NewMessage("", blocks...); !errors.Is(err, constraint.ErrCardinality) {
		t.Fatalf("expected ErrCardinality, got %v", err)
	}
}

func TestModalRequiresSubmitWithInputs(t *testing.T) {
	cfg := blockkit.ModalConfig{
		Title:  testsupport.MustPlainText(t, "Feedback"),
		Close:  testsupport.MustPlainText(t, "Cancel"),
		Blocks: []blockkit.Block{inputBlock(t)},
	}
	if _, err := blockkit.NewModal(cfg); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("expected ErrCrossField, got %v", err)
	}

	cfg.Blocks = nil
	modal, err := blockkit.NewModal(cfg)
	if err != nil {
		t.Fatalf("new modal: %v", err)
	}
	if err := modal.AddAfter(inputBlock(t), "divider", 1, false); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("add input without submit: expected ErrCrossField, got %v", err)
	}
	if err := modal.SetSubmit(testsupport.MustPlainText(t, "Send")); err != nil {
		t.Fatalf("set submit: %v", err)
	}
	if err := modal.Add(inputBlock(t)); err != nil {
		t.Fatalf("add input with submit: %v", err)
	}
	if err := modal.SetSubmit(nil); !errors.Is(err, constraint.ErrCrossField) {
		t.Fatalf("removing submit with inputs present: expected ErrCrossField, got %v", err)
	}
}

func TestModalTitleLength(t *testing.T) {
	_, err := blockkit.NewModal(blockkit.ModalConfig{
		Title: testsupport.MustPlainText(t, "A title that is far too long"),
		Close: testsupport.MustPlainText(t, "Close"),
	})
	if !errors.Is(err, constraint.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestModalFlagsPresentOnlyWhenSet(t *testing.T) {
	modal, err := blockkit.NewModal(blockkit.ModalConfig{
		Title:        testsupport.MustPlainText(t, "Modal"),
		Close:        testsupport.MustPlainText(t, "Close"),
		ClearOnClose: true,
	})
	if err != nil {
		t.Fatalf("new modal: %v", err)
	}
	body := modal.Build()
	if !body.Has("clear_on_close") || body.Has("notify_on_close") {
		t.Fatalf("unexpected keys %v", body.Keys())
	}
	modal.SetClearOnClose(false)
	if modal.Build().Has("clear_on_close") {
		t.Fatalf("clear_on_close must be removed when disabled")
	}
}

func TestMessageTextPrecedesBlocks(t *testing.T) {
	msg, err := blockkit.NewMessage("", divider(t, ""))
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if err := msg.SetText("fallback"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if diff := cmp.Diff([]string{"text", "blocks"}, msg.Build().Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestSurfaceCopyIsIndependent(t *testing.T) {
	home, err := blockkit.NewHome(blockkit.HomeConfig{
		Blocks:     []blockkit.Block{header(t, "Hello")},
		CallbackID: "home",
	})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}
	dup := home.Copy()
	if !blockkit.Equal(home, dup) {
		t.Fatalf("copy should be equal to the original")
	}

	if err := dup.Add(divider(t, "")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := dup.Blocks()[0].(*blockkit.HeaderBlock).Text().SetText("Changed"); err != nil {
		t.Fatalf("set text: %v", err)
	}

	if len(home.Blocks()) != 1 {
		t.Fatalf("adding to the copy changed the original")
	}
	if got := home.Blocks()[0].(*blockkit.HeaderBlock).Text().Text(); got != "Hello" {
		t.Fatalf("original header text = %q", got)
	}
}

func TestModalGolden(t *testing.T) {
	menu, err := blockkit.NewStaticSelect(blockkit.StaticSelectConfig{
		ActionID:    "priority",
		Placeholder: testsupport.MustPlainText(t, "Pick one"),
		Options:     testsupport.MustOptions(t, "low", "high"),
	})
	if err != nil {
		t.Fatalf("new static select: %v", err)
	}
	section, err := blockkit.NewSectionBlock(blockkit.SectionBlockConfig{
		Text:      testsupport.MustMrkdwn(t, "*Priority*"),
		Accessory: menu,
		BlockID:   "priority",
	})
	if err != nil {
		t.Fatalf("new section: %v", err)
	}
	modal, err := blockkit.NewModal(blockkit.ModalConfig{
		Title:      testsupport.MustPlainText(t, "New ticket"),
		Close:      testsupport.MustPlainText(t, "Cancel"),
		Submit:     testsupport.MustPlainText(t, "Create"),
		Blocks:     []blockkit.Block{section, divider(t, ""), inputBlock(t)},
		CallbackID: "ticket",
	})
	if err != nil {
		t.Fatalf("new modal: %v", err)
	}

	testsupport.AssertGoldenEntity(t, "testdata/modal.golden.json", modal)
}
