package blockkit

import (
	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// Block is a layout block placed on a surface.
type Block interface {
	Entity
	Type() string
	BlockID() string
	isBlock()
}

// blockBase carries the fields every block shares. The block's kind doubles
// as its wire type.
type blockBase struct {
	base
}

func newBlockBase(kind, blockID string) (blockBase, error) {
	if err := checkBlockID(blockID); err != nil {
		return blockBase{}, err
	}
	b := blockBase{base: newBase(kind)}
	b.store("type", kind)
	b.setOptional("block_id", blockID, blockID != "")
	return b, nil
}

func (b *blockBase) Type() string    { return b.kind }
func (b *blockBase) BlockID() string { return stringField(&b.base, "block_id") }

// SetBlockID updates the block id; the empty string removes it.
func (b *blockBase) SetBlockID(id string) error { return b.setBlockID(id) }

func (*blockBase) isBlock() {}

// ActionsBlock holds up to 25 interactive elements. Multi-select menus are
// not allowed.
type ActionsBlock struct {
	blockBase
}

const maxActionsElements = 25

func checkActionsElements(elements []ActionsElement) error {
	if err := constraint.Capacity("elements", len(elements), 1, maxActionsElements); err != nil {
		return err
	}
	for i, el := range elements {
		if el == nil {
			return constraint.Newf(constraint.KindRange, "elements", "element %d is nil", i)
		}
		if mv, ok := el.(multiVariant); ok && mv.IsMulti() {
			return constraint.Newf(constraint.KindCardinality, "elements", "element %d: %s is not allowed in an actions block", i, el.Type())
		}
	}
	return nil
}

// NewActionsBlock validates and constructs an actions block. blockID is
// optional.
func NewActionsBlock(elements []ActionsElement, blockID string) (*ActionsBlock, error) {
	if err := checkActionsElements(elements); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("actions", blockID)
	if err != nil {
		return nil, err
	}
	a := &ActionsBlock{blockBase: bb}
	a.store("elements", elements)
	return a, nil
}

func (a *ActionsBlock) Elements() []ActionsElement {
	v, _ := field[[]ActionsElement](&a.base, "elements")
	return cloneSlice(v)
}

func (a *ActionsBlock) SetElements(elements []ActionsElement) error {
	if err := checkActionsElements(elements); err != nil {
		return err
	}
	a.store("elements", elements)
	return nil
}

// AddElements appends elements, failing when the block would exceed its
// capacity.
func (a *ActionsBlock) AddElements(elements ...ActionsElement) error {
	return a.SetElements(append(a.Elements(), elements...))
}

// ContextBlock shows small images and text.
type ContextBlock struct {
	blockBase
}

const maxContextElements = 10

func checkContextElements(elements []ContextElement) error {
	if err := constraint.Capacity("elements", len(elements), 1, maxContextElements); err != nil {
		return err
	}
	for i, el := range elements {
		if el == nil {
			return constraint.Newf(constraint.KindRange, "elements", "element %d is nil", i)
		}
	}
	return nil
}

// NewContextBlock validates and constructs a context block.
func NewContextBlock(elements []ContextElement, blockID string) (*ContextBlock, error) {
	if err := checkContextElements(elements); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("context", blockID)
	if err != nil {
		return nil, err
	}
	c := &ContextBlock{blockBase: bb}
	c.store("elements", elements)
	return c, nil
}

func (c *ContextBlock) Elements() []ContextElement {
	v, _ := field[[]ContextElement](&c.base, "elements")
	return cloneSlice(v)
}

func (c *ContextBlock) SetElements(elements []ContextElement) error {
	if err := checkContextElements(elements); err != nil {
		return err
	}
	c.store("elements", elements)
	return nil
}

// DividerBlock is a horizontal rule.
type DividerBlock struct {
	blockBase
}

func NewDividerBlock(blockID string) (*DividerBlock, error) {
	bb, err := newBlockBase("divider", blockID)
	if err != nil {
		return nil, err
	}
	return &DividerBlock{blockBase: bb}, nil
}

// FileBlock shows a remote file. It is only valid in messages.
type FileBlock struct {
	blockBase
}

func checkExternalID(id string) error {
	return constraint.Length("external_id", id, 1, maxBlockID)
}

// NewFileBlock validates and constructs a file block for a remote file.
func NewFileBlock(externalID, blockID string) (*FileBlock, error) {
	if err := checkExternalID(externalID); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("file", blockID)
	if err != nil {
		return nil, err
	}
	f := &FileBlock{blockBase: bb}
	f.store("external_id", externalID)
	f.store("source", "remote")
	return f, nil
}

func (f *FileBlock) ExternalID() string { return stringField(&f.base, "external_id") }
func (f *FileBlock) Source() string     { return stringField(&f.base, "source") }

func (f *FileBlock) SetExternalID(id string) error {
	if err := checkExternalID(id); err != nil {
		return err
	}
	f.store("external_id", id)
	return nil
}

// HeaderBlock shows large plain text.
type HeaderBlock struct {
	blockBase
}

func checkHeaderText(t *Text) error {
	return checkText("text", t, 1, 150, constraint.PlainText)
}

func NewHeaderBlock(text *Text, blockID string) (*HeaderBlock, error) {
	if err := checkHeaderText(text); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("header", blockID)
	if err != nil {
		return nil, err
	}
	h := &HeaderBlock{blockBase: bb}
	h.store("text", text)
	return h, nil
}

func (h *HeaderBlock) Text() *Text { t, _ := field[*Text](&h.base, "text"); return t }

func (h *HeaderBlock) SetText(t *Text) error {
	if err := checkHeaderText(t); err != nil {
		return err
	}
	h.store("text", t)
	return nil
}

// ImageBlock shows a standalone image.
type ImageBlock struct {
	blockBase
}

// ImageBlockConfig holds the image block fields. Title and BlockID are
// optional.
type ImageBlockConfig struct {
	ImageURL string
	AltText  string
	Title    *Text
	BlockID  string
}

const maxImageTitle = 2000

func checkImageTitle(t *Text) error {
	return checkOptionalText("title", t, 1, maxImageTitle, constraint.PlainText)
}

func NewImageBlock(cfg ImageBlockConfig) (*ImageBlock, error) {
	if err := checkImage(cfg.ImageURL, cfg.AltText); err != nil {
		return nil, err
	}
	if err := checkImageTitle(cfg.Title); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("image", cfg.BlockID)
	if err != nil {
		return nil, err
	}
	i := &ImageBlock{blockBase: bb}
	i.store("image_url", cfg.ImageURL)
	i.store("alt_text", cfg.AltText)
	i.setOptional("title", cfg.Title, cfg.Title != nil)
	return i, nil
}

func (i *ImageBlock) ImageURL() string { return stringField(&i.base, "image_url") }
func (i *ImageBlock) AltText() string  { return stringField(&i.base, "alt_text") }
func (i *ImageBlock) Title() *Text     { t, _ := field[*Text](&i.base, "title"); return t }

func (i *ImageBlock) SetImageURL(u string) error {
	if err := constraint.Length("image_url", u, 1, maxImageURL); err != nil {
		return err
	}
	i.store("image_url", u)
	return nil
}

func (i *ImageBlock) SetAltText(alt string) error {
	if err := constraint.Length("alt_text", alt, 1, maxAltText); err != nil {
		return err
	}
	i.store("alt_text", alt)
	return nil
}

// SetTitle updates the title; nil removes it.
func (i *ImageBlock) SetTitle(t *Text) error {
	if err := checkImageTitle(t); err != nil {
		return err
	}
	i.setOptional("title", t, t != nil)
	return nil
}

// InputBlock collects user input through a single element.
type InputBlock struct {
	blockBase
}

// InputBlockConfig holds the input block fields. Label and Element are
// required.
type InputBlockConfig struct {
	Label          *Text
	Element        InputElement
	DispatchAction bool
	BlockID        string
	Hint           *Text
	Optional       bool
}

const maxInputLabel = 2000

func checkInputLabel(t *Text) error {
	return checkText("label", t, 1, maxInputLabel, constraint.PlainText)
}

func checkInputHint(t *Text) error {
	return checkOptionalText("hint", t, 1, maxInputLabel, constraint.PlainText)
}

func checkInputElement(el InputElement) error {
	if el == nil {
		return constraint.Newf(constraint.KindRange, "element", "element is required")
	}
	return nil
}

func NewInputBlock(cfg InputBlockConfig) (*InputBlock, error) {
	if err := checkInputLabel(cfg.Label); err != nil {
		return nil, err
	}
	if err := checkInputElement(cfg.Element); err != nil {
		return nil, err
	}
	if err := checkInputHint(cfg.Hint); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("input", cfg.BlockID)
	if err != nil {
		return nil, err
	}
	in := &InputBlock{blockBase: bb}
	in.store("label", cfg.Label)
	in.store("element", cfg.Element)
	in.setOptional("dispatch_action", true, cfg.DispatchAction)
	in.setOptional("hint", cfg.Hint, cfg.Hint != nil)
	in.store("optional", cfg.Optional)
	return in, nil
}

func (in *InputBlock) Label() *Text          { t, _ := field[*Text](&in.base, "label"); return t }
func (in *InputBlock) Element() InputElement { e, _ := field[InputElement](&in.base, "element"); return e }
func (in *InputBlock) DispatchAction() bool  { return boolField(&in.base, "dispatch_action") }
func (in *InputBlock) Hint() *Text           { t, _ := field[*Text](&in.base, "hint"); return t }
func (in *InputBlock) Optional() bool        { return boolField(&in.base, "optional") }

func (in *InputBlock) SetLabel(t *Text) error {
	if err := checkInputLabel(t); err != nil {
		return err
	}
	in.store("label", t)
	return nil
}

func (in *InputBlock) SetElement(el InputElement) error {
	if err := checkInputElement(el); err != nil {
		return err
	}
	in.store("element", el)
	return nil
}

// SetDispatchAction toggles dispatch_action; false removes the key.
func (in *InputBlock) SetDispatchAction(dispatch bool) {
	in.setOptional("dispatch_action", true, dispatch)
}

// SetHint updates the hint; nil removes it.
func (in *InputBlock) SetHint(t *Text) error {
	if err := checkInputHint(t); err != nil {
		return err
	}
	in.setOptional("hint", t, t != nil)
	return nil
}

func (in *InputBlock) SetOptional(optional bool) { in.store("optional", optional) }

// SectionBlock shows text, a grid of fields, or both, with an optional
// accessory element.
type SectionBlock struct {
	blockBase
}

// SectionBlockConfig holds the section fields. At least one of Text and
// Fields is required.
type SectionBlockConfig struct {
	Text      *Text
	Fields    []*Text
	Accessory AccessoryElement
	BlockID   string
}

const (
	maxSectionFields    = 10
	maxSectionFieldText = 2000
)

func checkSection(text *Text, fields []*Text) error {
	if err := constraint.AnyOf([]string{"text", "fields"}, text != nil, len(fields) > 0); err != nil {
		return err
	}
	if err := checkOptionalText("text", text, 1, maxText); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := constraint.Capacity("fields", len(fields), 1, maxSectionFields); err != nil {
		return err
	}
	for _, f := range fields {
		if err := checkText("fields", f, 1, maxSectionFieldText); err != nil {
			return err
		}
	}
	return nil
}

func NewSectionBlock(cfg SectionBlockConfig) (*SectionBlock, error) {
	if err := checkSection(cfg.Text, cfg.Fields); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("section", cfg.BlockID)
	if err != nil {
		return nil, err
	}
	s := &SectionBlock{blockBase: bb}
	s.setOptional("text", cfg.Text, cfg.Text != nil)
	s.setOptional("fields", cloneSlice(cfg.Fields), len(cfg.Fields) > 0)
	s.setOptional("accessory", cfg.Accessory, cfg.Accessory != nil)
	return s, nil
}

func (s *SectionBlock) Text() *Text { t, _ := field[*Text](&s.base, "text"); return t }

func (s *SectionBlock) Fields() []*Text {
	v, _ := field[[]*Text](&s.base, "fields")
	return cloneSlice(v)
}

func (s *SectionBlock) Accessory() AccessoryElement {
	a, _ := field[AccessoryElement](&s.base, "accessory")
	return a
}

// SetText updates the text; nil removes it as long as fields remain.
func (s *SectionBlock) SetText(t *Text) error {
	if err := checkSection(t, s.Fields()); err != nil {
		return err
	}
	s.setOptional("text", t, t != nil)
	return nil
}

// SetFields replaces the fields; nil or empty removes them as long as text
// remains.
func (s *SectionBlock) SetFields(fields []*Text) error {
	if err := checkSection(s.Text(), fields); err != nil {
		return err
	}
	s.setOptional("fields", cloneSlice(fields), len(fields) > 0)
	return nil
}

// SetAccessory updates the accessory; nil removes it.
func (s *SectionBlock) SetAccessory(a AccessoryElement) {
	s.setOptional("accessory", a, a != nil)
}

// VideoBlock embeds a video player.
type VideoBlock struct {
	blockBase
}

// VideoBlockConfig holds the video block fields. AltText, Title,
// ThumbnailURL and VideoURL are required.
type VideoBlockConfig struct {
	AltText         string
	Title           *Text
	ThumbnailURL    string
	VideoURL        string
	AuthorName      string
	BlockID         string
	Description     *Text
	ProviderIconURL string
	ProviderName    string
	TitleURL        string
}

const (
	maxVideoTitle  = 200
	maxAuthorName  = 50
	maxVideoString = 3000
)

func checkVideoTitle(t *Text) error {
	return checkText("title", t, 1, maxVideoTitle, constraint.PlainText)
}

func checkVideoDescription(t *Text) error {
	return checkOptionalText("description", t, 1, maxText, constraint.PlainText)
}

func checkTitleURL(u string) error {
	if u == "" {
		return nil
	}
	return constraint.HTTPS("title_url", u)
}

func NewVideoBlock(cfg VideoBlockConfig) (*VideoBlock, error) {
	if err := constraint.Length("alt_text", cfg.AltText, 1, maxAltText); err != nil {
		return nil, err
	}
	if err := checkVideoTitle(cfg.Title); err != nil {
		return nil, err
	}
	if err := constraint.Length("thumbnail_url", cfg.ThumbnailURL, 1, maxVideoString); err != nil {
		return nil, err
	}
	if err := constraint.HTTPS("video_url", cfg.VideoURL); err != nil {
		return nil, err
	}
	if cfg.AuthorName != "" {
		if err := constraint.Length("author_name", cfg.AuthorName, 1, maxAuthorName); err != nil {
			return nil, err
		}
	}
	if err := checkVideoDescription(cfg.Description); err != nil {
		return nil, err
	}
	if err := checkTitleURL(cfg.TitleURL); err != nil {
		return nil, err
	}
	bb, err := newBlockBase("video", cfg.BlockID)
	if err != nil {
		return nil, err
	}

	v := &VideoBlock{blockBase: bb}
	v.store("alt_text", cfg.AltText)
	v.store("title", cfg.Title)
	v.store("thumbnail_url", cfg.ThumbnailURL)
	v.store("video_url", cfg.VideoURL)
	v.setOptional("author_name", cfg.AuthorName, cfg.AuthorName != "")
	v.setOptional("description", cfg.Description, cfg.Description != nil)
	v.setOptional("provider_icon_url", cfg.ProviderIconURL, cfg.ProviderIconURL != "")
	v.setOptional("provider_name", cfg.ProviderName, cfg.ProviderName != "")
	v.setOptional("title_url", cfg.TitleURL, cfg.TitleURL != "")
	return v, nil
}

func (v *VideoBlock) AltText() string         { return stringField(&v.base, "alt_text") }
func (v *VideoBlock) Title() *Text            { t, _ := field[*Text](&v.base, "title"); return t }
func (v *VideoBlock) ThumbnailURL() string    { return stringField(&v.base, "thumbnail_url") }
func (v *VideoBlock) VideoURL() string        { return stringField(&v.base, "video_url") }
func (v *VideoBlock) AuthorName() string      { return stringField(&v.base, "author_name") }
func (v *VideoBlock) Description() *Text      { t, _ := field[*Text](&v.base, "description"); return t }
func (v *VideoBlock) ProviderIconURL() string { return stringField(&v.base, "provider_icon_url") }
func (v *VideoBlock) ProviderName() string    { return stringField(&v.base, "provider_name") }
func (v *VideoBlock) TitleURL() string        { return stringField(&v.base, "title_url") }

func (v *VideoBlock) SetAltText(alt string) error {
	if err := constraint.Length("alt_text", alt, 1, maxAltText); err != nil {
		return err
	}
	v.store("alt_text", alt)
	return nil
}

func (v *VideoBlock) SetTitle(t *Text) error {
	if err := checkVideoTitle(t); err != nil {
		return err
	}
	v.store("title", t)
	return nil
}

func (v *VideoBlock) SetThumbnailURL(u string) error {
	if err := constraint.Length("thumbnail_url", u, 1, maxVideoString); err != nil {
		return err
	}
	v.store("thumbnail_url", u)
	return nil
}

func (v *VideoBlock) SetVideoURL(u string) error {
	if err := constraint.HTTPS("video_url", u); err != nil {
		return err
	}
	v.store("video_url", u)
	return nil
}

func (v *VideoBlock) SetAuthorName(name string) error {
	return v.setOptionalString("author_name", name, 1, maxAuthorName)
}

// SetDescription updates the description; nil removes it.
func (v *VideoBlock) SetDescription(t *Text) error {
	if err := checkVideoDescription(t); err != nil {
		return err
	}
	v.setOptional("description", t, t != nil)
	return nil
}

func (v *VideoBlock) SetProviderIconURL(u string) error {
	return v.setOptionalString("provider_icon_url", u, 1, maxVideoString)
}

func (v *VideoBlock) SetProviderName(name string) error {
	return v.setOptionalString("provider_name", name, 1, maxVideoString)
}

// SetTitleURL updates the title link; it must use https.
func (v *VideoBlock) SetTitleURL(u string) error {
	if err := checkTitleURL(u); err != nil {
		return err
	}
	v.setOptional("title_url", u, u != "")
	return nil
}
