package blockkit

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// ErrBlockNotFound is returned by strict AddBefore and AddAfter calls when no
// matching block exists.
var ErrBlockNotFound = errors.New("blockkit: block not found")

// Surface is a top-level container sent to the platform.
type Surface interface {
	Entity
	Blocks() []Block
}

// surface holds the ordered block list shared by home tabs, messages and
// modals.
type surface struct {
	base
	maxBlocks int
	// allowFile is set for surfaces that accept file blocks.
	allowFile bool
}

const (
	maxHomeBlocks    = 100
	maxModalBlocks   = 100
	maxMessageBlocks = 50
)

func newSurface(kind string, maxBlocks int, allowFile bool) surface {
	return surface{base: newBase(kind), maxBlocks: maxBlocks, allowFile: allowFile}
}

// Blocks returns a copy of the block list.
func (s *surface) Blocks() []Block {
	v, _ := field[[]Block](&s.base, "blocks")
	return cloneSlice(v)
}

func (s *surface) checkBlocks(blocks []Block) error {
	if err := constraint.Capacity("blocks", len(blocks), 0, s.maxBlocks); err != nil {
		return err
	}
	for i, b := range blocks {
		if b == nil {
			return constraint.Newf(constraint.KindRange, "blocks", "block %d is nil", i)
		}
		if !s.allowFile && b.Type() == "file" {
			return constraint.Newf(constraint.KindCardinality, "blocks", "block %d: file blocks are only allowed in messages", i)
		}
	}
	return nil
}

// commit validates the candidate list, runs the surface specific check and
// stores it.
func (s *surface) commit(blocks []Block, check func([]Block) error) error {
	if err := s.checkBlocks(blocks); err != nil {
		return err
	}
	if check != nil {
		if err := check(blocks); err != nil {
			return err
		}
	}
	s.store("blocks", blocks)
	return nil
}

func (s *surface) add(check func([]Block) error, blocks ...Block) error {
	next := append(s.Blocks(), blocks...)
	return s.commit(next, check)
}

func (s *surface) insert(check func([]Block) error, index int, block Block) error {
	current := s.Blocks()
	if index < 0 || index > len(current) {
		return constraint.Newf(constraint.KindRange, "index", "index %d out of range [0, %d]", index, len(current))
	}
	next := make([]Block, 0, len(current)+1)
	next = append(next, current[:index]...)
	next = append(next, block)
	next = append(next, current[index:]...)
	return s.commit(next, check)
}

// locate returns the position of the nth (1-based) block of the given kind,
// or -1.
func locate(blocks []Block, kind string, nth int) int {
	seen := 0
	for i, b := range blocks {
		if b.Type() != kind {
			continue
		}
		seen++
		if seen == nth {
			return i
		}
	}
	return -1
}

func (s *surface) addRelative(check func([]Block) error, block Block, kind string, nth int, strict, after bool) error {
	if nth < 1 {
		return constraint.Newf(constraint.KindRange, "nth", "occurrence must be at least 1, is %d", nth)
	}
	current := s.Blocks()
	i := locate(current, kind, nth)
	if i < 0 {
		if strict {
			return fmt.Errorf("%w: occurrence %d of %q", ErrBlockNotFound, nth, kind)
		}
		return s.add(check, block)
	}
	if after {
		i++
	}
	return s.insert(check, i, block)
}

// Home is an app home tab.
type Home struct {
	surface
}

// HomeConfig holds the home tab fields. Everything is optional.
type HomeConfig struct {
	Blocks          []Block
	PrivateMetadata string
	CallbackID      string
	ExternalID      string
}

const (
	maxPrivateMetadata = 3000
	maxCallbackID      = 255
)

func checkViewMetadata(privateMetadata, callbackID, externalID string) error {
	if privateMetadata != "" {
		if err := constraint.Length("private_metadata", privateMetadata, 1, maxPrivateMetadata); err != nil {
			return err
		}
	}
	if callbackID != "" {
		if err := constraint.Length("callback_id", callbackID, 1, maxCallbackID); err != nil {
			return err
		}
	}
	if externalID != "" {
		if err := constraint.Length("external_id", externalID, 1, maxBlockID); err != nil {
			return err
		}
	}
	return nil
}

func (s *surface) writeViewMetadata(privateMetadata, callbackID, externalID string) {
	s.setOptional("private_metadata", privateMetadata, privateMetadata != "")
	s.setOptional("callback_id", callbackID, callbackID != "")
	s.setOptional("external_id", externalID, externalID != "")
}

// NewHome validates and constructs a home tab.
func NewHome(cfg HomeConfig) (*Home, error) {
	h := &Home{surface: newSurface("home", maxHomeBlocks, false)}
	if err := h.checkBlocks(cfg.Blocks); err != nil {
		return nil, err
	}
	if err := checkViewMetadata(cfg.PrivateMetadata, cfg.CallbackID, cfg.ExternalID); err != nil {
		return nil, err
	}
	h.store("type", "home")
	h.store("blocks", cfg.Blocks)
	h.writeViewMetadata(cfg.PrivateMetadata, cfg.CallbackID, cfg.ExternalID)
	return h, nil
}

func (h *Home) PrivateMetadata() string { return stringField(&h.base, "private_metadata") }
func (h *Home) CallbackID() string      { return stringField(&h.base, "callback_id") }
func (h *Home) ExternalID() string      { return stringField(&h.base, "external_id") }

// Add appends blocks.
func (h *Home) Add(blocks ...Block) error { return h.add(nil, blocks...) }

// Insert places block at index, which must lie in [0, len(blocks)].
func (h *Home) Insert(index int, block Block) error { return h.insert(nil, index, block) }

// AddBefore places block before the nth block of kind. When there is no such
// block, strict calls fail with ErrBlockNotFound and others append.
func (h *Home) AddBefore(block Block, kind string, nth int, strict bool) error {
	return h.addRelative(nil, block, kind, nth, strict, false)
}

// AddAfter places block after the nth block of kind. See AddBefore.
func (h *Home) AddAfter(block Block, kind string, nth int, strict bool) error {
	return h.addRelative(nil, block, kind, nth, strict, true)
}

func (h *Home) SetBlocks(blocks []Block) error { return h.commit(cloneSlice(blocks), nil) }

func (h *Home) SetPrivateMetadata(v string) error {
	return h.setOptionalString("private_metadata", v, 1, maxPrivateMetadata)
}

func (h *Home) SetCallbackID(v string) error {
	return h.setOptionalString("callback_id", v, 1, maxCallbackID)
}

func (h *Home) SetExternalID(v string) error {
	return h.setOptionalString("external_id", v, 1, maxBlockID)
}

// Copy returns a deep copy sharing nothing mutable with h.
func (h *Home) Copy() *Home { return Clone(h) }

// Message is a chat message payload.
type Message struct {
	surface
}

// NewMessage validates and constructs a message. text is the notification
// fallback and may be empty.
func NewMessage(text string, blocks ...Block) (*Message, error) {
	m := &Message{surface: newSurface("message", maxMessageBlocks, true)}
	if err := checkFallback(text); err != nil {
		return nil, err
	}
	if err := m.checkBlocks(blocks); err != nil {
		return nil, err
	}
	m.setOptional("text", text, text != "")
	m.store("blocks", blocks)
	return m, nil
}

func checkFallback(text string) error {
	if text == "" {
		return nil
	}
	return constraint.Length("text", text, 1, maxText)
}

// Text returns the fallback text.
func (m *Message) Text() string { return stringField(&m.base, "text") }

// SetText updates the fallback text; the empty string removes it. The text
// key stays ahead of the blocks.
func (m *Message) SetText(text string) error {
	if err := checkFallback(text); err != nil {
		return err
	}
	if text == "" || m.body.Has("text") {
		m.setOptional("text", text, text != "")
		return nil
	}
	blocks, _ := m.body.Get("blocks")
	m.body.del("blocks")
	m.store("text", text)
	m.store("blocks", blocks)
	return nil
}

func (m *Message) Add(blocks ...Block) error           { return m.add(nil, blocks...) }
func (m *Message) Insert(index int, block Block) error { return m.insert(nil, index, block) }
func (m *Message) SetBlocks(blocks []Block) error      { return m.commit(cloneSlice(blocks), nil) }

func (m *Message) AddBefore(block Block, kind string, nth int, strict bool) error {
	return m.addRelative(nil, block, kind, nth, strict, false)
}

func (m *Message) AddAfter(block Block, kind string, nth int, strict bool) error {
	return m.addRelative(nil, block, kind, nth, strict, true)
}

// Copy returns a deep copy sharing nothing mutable with m.
func (m *Message) Copy() *Message { return Clone(m) }

// Modal is a modal view.
type Modal struct {
	surface
}

// ModalConfig holds the modal fields. Title and Close are required; Submit
// is required once the modal holds an input block.
type ModalConfig struct {
	Title           *Text
	Close           *Text
	Submit          *Text
	Blocks          []Block
	PrivateMetadata string
	CallbackID      string
	ExternalID      string
	ClearOnClose    bool
	NotifyOnClose   bool
}

const maxModalText = 24

func checkModalText(field string, t *Text) error {
	return checkText(field, t, 1, maxModalText, constraint.PlainText)
}

func hasInput(blocks []Block) bool {
	for _, b := range blocks {
		if b.Type() == "input" {
			return true
		}
	}
	return false
}

func checkSubmit(submit *Text, blocks []Block) error {
	if submit == nil {
		if hasInput(blocks) {
			return constraint.Newf(constraint.KindCrossField, "submit", "submit is required when the modal holds an input block")
		}
		return nil
	}
	return checkModalText("submit", submit)
}

// NewModal validates and constructs a modal.
func NewModal(cfg ModalConfig) (*Modal, error) {
	m := &Modal{surface: newSurface("modal", maxModalBlocks, false)}
	if err := checkModalText("title", cfg.Title); err != nil {
		return nil, err
	}
	if err := checkModalText("close", cfg.Close); err != nil {
		return nil, err
	}
	if err := m.checkBlocks(cfg.Blocks); err != nil {
		return nil, err
	}
	if err := checkSubmit(cfg.Submit, cfg.Blocks); err != nil {
		return nil, err
	}
	if err := checkViewMetadata(cfg.PrivateMetadata, cfg.CallbackID, cfg.ExternalID); err != nil {
		return nil, err
	}

	m.store("type", "modal")
	m.store("title", cfg.Title)
	m.store("close", cfg.Close)
	m.setOptional("submit", cfg.Submit, cfg.Submit != nil)
	m.store("blocks", cfg.Blocks)
	m.writeViewMetadata(cfg.PrivateMetadata, cfg.CallbackID, cfg.ExternalID)
	m.setOptional("clear_on_close", true, cfg.ClearOnClose)
	m.setOptional("notify_on_close", true, cfg.NotifyOnClose)
	return m, nil
}

func (m *Modal) Title() *Text            { t, _ := field[*Text](&m.base, "title"); return t }
func (m *Modal) Close() *Text            { t, _ := field[*Text](&m.base, "close"); return t }
func (m *Modal) Submit() *Text           { t, _ := field[*Text](&m.base, "submit"); return t }
func (m *Modal) PrivateMetadata() string { return stringField(&m.base, "private_metadata") }
func (m *Modal) CallbackID() string      { return stringField(&m.base, "callback_id") }
func (m *Modal) ExternalID() string      { return stringField(&m.base, "external_id") }
func (m *Modal) ClearOnClose() bool      { return boolField(&m.base, "clear_on_close") }
func (m *Modal) NotifyOnClose() bool     { return boolField(&m.base, "notify_on_close") }

func (m *Modal) submitCheck(blocks []Block) error {
	return checkSubmit(m.Submit(), blocks)
}

func (m *Modal) Add(blocks ...Block) error           { return m.add(m.submitCheck, blocks...) }
func (m *Modal) Insert(index int, block Block) error { return m.insert(m.submitCheck, index, block) }
func (m *Modal) SetBlocks(blocks []Block) error      { return m.commit(cloneSlice(blocks), m.submitCheck) }

func (m *Modal) AddBefore(block Block, kind string, nth int, strict bool) error {
	return m.addRelative(m.submitCheck, block, kind, nth, strict, false)
}

func (m *Modal) AddAfter(block Block, kind string, nth int, strict bool) error {
	return m.addRelative(m.submitCheck, block, kind, nth, strict, true)
}

func (m *Modal) SetTitle(t *Text) error {
	if err := checkModalText("title", t); err != nil {
		return err
	}
	m.store("title", t)
	return nil
}

func (m *Modal) SetClose(t *Text) error {
	if err := checkModalText("close", t); err != nil {
		return err
	}
	m.store("close", t)
	return nil
}

// SetSubmit updates the submit button; nil removes it unless the modal holds
// an input block.
func (m *Modal) SetSubmit(t *Text) error {
	if err := checkSubmit(t, m.Blocks()); err != nil {
		return err
	}
	m.setOptional("submit", t, t != nil)
	return nil
}

func (m *Modal) SetPrivateMetadata(v string) error {
	return m.setOptionalString("private_metadata", v, 1, maxPrivateMetadata)
}

func (m *Modal) SetCallbackID(v string) error {
	return m.setOptionalString("callback_id", v, 1, maxCallbackID)
}

func (m *Modal) SetExternalID(v string) error {
	return m.setOptionalString("external_id", v, 1, maxBlockID)
}

func (m *Modal) SetClearOnClose(v bool)  { m.setOptional("clear_on_close", true, v) }
func (m *Modal) SetNotifyOnClose(v bool) { m.setOptional("notify_on_close", true, v) }

// Copy returns a deep copy sharing nothing mutable with m.
func (m *Modal) Copy() *Modal { return Clone(m) }
