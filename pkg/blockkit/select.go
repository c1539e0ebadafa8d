package blockkit

import (
	"maps"
	"reflect"

	"github.com/goliatone/go-blockkit/pkg/constraint"
)

// Select menu type spellings.
const (
	StaticSelect             = "static_select"
	MultiStaticSelect        = "multi_static_select"
	ExternalSelect           = "external_select"
	MultiExternalSelect      = "multi_external_select"
	UsersSelect              = "users_select"
	MultiUsersSelect         = "multi_users_select"
	ConversationsSelect      = "conversations_select"
	MultiConversationsSelect = "multi_conversations_select"
	ChannelsSelect           = "channels_select"
	MultiChannelsSelect      = "multi_channels_select"
)

const (
	maxSelectOptions      = 100
	maxSelectedItems      = 100
	defaultMinQueryLength = 3
)

// selectShape names the wire keys of one select family.
type selectShape struct {
	kind   string
	noun   string
	single string
	multi  string
	// responseURL is set when the single spelling carries
	// response_url_enabled.
	responseURL bool
}

var (
	staticShape        = selectShape{kind: "static_select", noun: "option", single: StaticSelect, multi: MultiStaticSelect}
	externalShape      = selectShape{kind: "external_select", noun: "option", single: ExternalSelect, multi: MultiExternalSelect}
	usersShape         = selectShape{kind: "users_select", noun: "user", single: UsersSelect, multi: MultiUsersSelect}
	conversationsShape = selectShape{kind: "conversations_select", noun: "conversation", single: ConversationsSelect, multi: MultiConversationsSelect, responseURL: true}
	channelsShape      = selectShape{kind: "channels_select", noun: "channel", single: ChannelsSelect, multi: MultiChannelsSelect, responseURL: true}
)

func (sh selectShape) singularKey() string { return "initial_" + sh.noun }
func (sh selectShape) pluralKey() string   { return "initial_" + sh.noun + "s" }

func (sh selectShape) initialKey(multi bool) string {
	if multi {
		return sh.pluralKey()
	}
	return sh.singularKey()
}

// checkType accepts either spelling of the family. The empty string selects
// the single spelling.
func (sh selectShape) checkType(typ string) (string, error) {
	if typ == "" {
		return sh.single, nil
	}
	if err := constraint.Enum("type", typ, sh.single, sh.multi); err != nil {
		return "", err
	}
	return typ, nil
}

// reshape returns copies of body and retained rewritten for the target
// variant. The initial selection moves between the singular key and a
// one-element plural list, and variant-only keys trade places with the values
// kept aside in retained. Neither input is modified.
//
// Moving a multi selection holding more than one value to the single variant
// fails, as the extra values could not be restored.
func (sh selectShape) reshape(body *Body, retained map[string]any, toMulti bool) (*Body, map[string]any, error) {
	out := body.shallow()
	kept := maps.Clone(retained)
	if kept == nil {
		kept = make(map[string]any)
	}

	singular, plural := sh.singularKey(), sh.pluralKey()
	if toMulti {
		out.set("type", sh.multi)
		if v, ok := out.Get(singular); ok {
			out.replace(singular, plural, wrapOne(v))
		}
		maxItems, ok := kept["max_selected_items"]
		if !ok {
			maxItems = 1
		}
		delete(kept, "max_selected_items")
		if sh.responseURL {
			if v, ok := out.Get("response_url_enabled"); ok {
				kept["response_url_enabled"] = v
			}
			out.replace("response_url_enabled", "max_selected_items", maxItems)
		} else {
			out.set("max_selected_items", maxItems)
		}
		return out, kept, nil
	}

	out.set("type", sh.single)
	if v, ok := out.Get(plural); ok {
		first, n := unwrapOne(v)
		switch {
		case n > 1:
			return nil, nil, constraint.Newf(constraint.KindCrossField, singular, "cannot switch to %s with %d initial values", sh.single, n)
		case n == 0:
			out.del(plural)
		default:
			out.replace(plural, singular, first)
		}
	}
	if v, ok := out.Get("max_selected_items"); ok {
		kept["max_selected_items"] = v
	}
	if sh.responseURL {
		enabled, ok := kept["response_url_enabled"]
		if !ok {
			enabled = false
		}
		delete(kept, "response_url_enabled")
		out.replace("max_selected_items", "response_url_enabled", enabled)
	} else {
		out.del("max_selected_items")
	}
	return out, kept, nil
}

// wrapOne turns v into a one-element slice of v's dynamic type.
func wrapOne(v any) any {
	s := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(v)), 1, 1)
	s.Index(0).Set(reflect.ValueOf(v))
	return s.Interface()
}

// unwrapOne returns the first element of slice v and the slice length.
func unwrapOne(v any) (any, int) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v, 1
	}
	if rv.Len() == 0 {
		return nil, 0
	}
	return rv.Index(0).Interface(), rv.Len()
}

// selectMenu is the part shared by every select family. The variant tag is
// the "type" key of the body.
type selectMenu struct {
	base
	shape selectShape
}

func newSelectMenu(sh selectShape, typ, actionID string, placeholder *Text) (selectMenu, error) {
	typ, err := sh.checkType(typ)
	if err != nil {
		return selectMenu{}, err
	}
	if err := checkActionID(actionID); err != nil {
		return selectMenu{}, err
	}
	if err := checkPlaceholder(placeholder); err != nil {
		return selectMenu{}, err
	}
	s := selectMenu{base: newBase(sh.kind), shape: sh}
	s.store("type", typ)
	s.store("action_id", actionID)
	s.setOptional("placeholder", placeholder, placeholder != nil)
	return s, nil
}

// Type returns the current spelling.
func (s *selectMenu) Type() string { return stringField(&s.base, "type") }

// IsMulti reports whether the menu uses its multi-select spelling.
func (s *selectMenu) IsMulti() bool { return s.Type() == s.shape.multi }

func (s *selectMenu) ActionID() string             { return stringField(&s.base, "action_id") }
func (s *selectMenu) Placeholder() *Text           { t, _ := field[*Text](&s.base, "placeholder"); return t }
func (s *selectMenu) FocusOnLoad() bool            { return boolField(&s.base, "focus_on_load") }
func (s *selectMenu) Confirm() *ConfirmationDialog { c, _ := field[*ConfirmationDialog](&s.base, "confirm"); return c }

func (s *selectMenu) SetActionID(id string) error       { return s.setActionID(id) }
func (s *selectMenu) SetPlaceholder(t *Text) error      { return s.setPlaceholder(t) }
func (s *selectMenu) SetConfirm(c *ConfirmationDialog) { s.setConfirm(c) }
func (s *selectMenu) SetFocusOnLoad(focus bool)         { s.setFocusOnLoad(focus) }

// SetType switches between the single and multi spelling. The initial
// selection and variant-only fields are carried over; see reshape.
func (s *selectMenu) SetType(typ string) error {
	typ, err := s.shape.checkType(typ)
	if err != nil {
		return err
	}
	if typ == s.Type() {
		return nil
	}
	body, retained, err := s.shape.reshape(s.body, s.retained, typ == s.shape.multi)
	if err != nil {
		return err
	}
	s.body, s.retained = body, retained
	return nil
}

// MaxSelectedItems returns the multi-select limit. It is remembered while
// the menu uses its single spelling.
func (s *selectMenu) MaxSelectedItems() int {
	v, ok := s.body.Get("max_selected_items")
	if !ok {
		v, ok = s.recall("max_selected_items")
	}
	if n, isInt := v.(int); ok && isInt {
		return n
	}
	return 1
}

func checkMaxSelected(n int) (int, error) {
	if n == 0 {
		return 1, nil
	}
	if err := constraint.Between("max_selected_items", n, 1, maxSelectedItems); err != nil {
		return 0, err
	}
	return n, nil
}

// SetMaxSelectedItems updates the multi-select limit; zero restores the
// default of one.
func (s *selectMenu) SetMaxSelectedItems(n int) error {
	n, err := checkMaxSelected(n)
	if err != nil {
		return err
	}
	s.writeMaxSelected(n)
	return nil
}

func (s *selectMenu) writeMaxSelected(n int) {
	if s.IsMulti() {
		s.store("max_selected_items", n)
		return
	}
	s.retain("max_selected_items", n)
}

// responseURLEnabled is only meaningful for the conversations and channels
// families. It is remembered while the menu uses its multi spelling.
func (s *selectMenu) responseURLEnabled() bool {
	v, ok := s.body.Get("response_url_enabled")
	if !ok {
		v, _ = s.recall("response_url_enabled")
	}
	enabled, _ := v.(bool)
	return enabled
}

func (s *selectMenu) writeResponseURLEnabled(enabled bool) {
	if s.IsMulti() {
		s.retain("response_url_enabled", enabled)
		return
	}
	s.store("response_url_enabled", enabled)
}

func (s *selectMenu) checkInitialCount(n int) error {
	if s.IsMulti() {
		return constraint.Count(s.shape.pluralKey(), n, 0, maxSelectOptions)
	}
	return constraint.Count(s.shape.singularKey(), n, 0, 1)
}

// writeVariant writes the variant-only keys for the current spelling and
// retains the inactive ones.
func (s *selectMenu) writeVariant(maxSelected int, responseURL bool) {
	s.writeMaxSelected(maxSelected)
	if s.shape.responseURL {
		s.writeResponseURLEnabled(responseURL)
	}
}

func initialValues[T any](s *selectMenu) []T {
	if s.IsMulti() {
		v, _ := field[[]T](&s.base, s.shape.pluralKey())
		return cloneSlice(v)
	}
	v, ok := field[T](&s.base, s.shape.singularKey())
	if !ok {
		return nil
	}
	return []T{v}
}

func writeInitial[T any](s *selectMenu, values []T) {
	key := s.shape.initialKey(s.IsMulti())
	if len(values) == 0 {
		s.body.del(key)
		return
	}
	if s.IsMulti() {
		s.store(key, values)
		return
	}
	s.store(key, values[0])
}

func checkIDs(field string, ids []string) error {
	for _, id := range ids {
		if err := constraint.Length(field, id, 1, maxBlockID); err != nil {
			return err
		}
	}
	return nil
}

func (*selectMenu) actionsElement()   {}
func (*selectMenu) accessoryElement() {}
func (*selectMenu) inputElement()     {}

// StaticSelectMenu offers a fixed list of options or option groups.
type StaticSelectMenu struct {
	selectMenu
}

// StaticSelectConfig holds the static select fields. Exactly one of Options
// and OptionGroups is required.
type StaticSelectConfig struct {
	Type             string
	ActionID         string
	Placeholder      *Text
	Options          []*Option
	OptionGroups     []*OptionGroup
	InitialOptions   []*Option
	Confirm          *ConfirmationDialog
	MaxSelectedItems int
	FocusOnLoad      bool
}

func checkStaticOptions(options []*Option, groups []*OptionGroup) error {
	if err := constraint.OneOf([]string{"options", "option_groups"}, options != nil, groups != nil); err != nil {
		return err
	}
	if options != nil {
		if err := constraint.Items("options", options, 1, maxSelectOptions); err != nil {
			return err
		}
		return checkOptionsNoURL("options", options)
	}
	if err := constraint.Items("option_groups", groups, 1, maxSelectOptions); err != nil {
		return err
	}
	for _, group := range groups {
		if group == nil {
			return constraint.Newf(constraint.KindRange, "option_groups", "nil option group")
		}
		if err := checkOptionsNoURL("option_groups", group.Options()); err != nil {
			return err
		}
	}
	return nil
}

func checkStaticInitial(options []*Option, groups []*OptionGroup, initial []*Option) error {
	if len(initial) == 0 {
		return nil
	}
	if options != nil {
		return checkSubset("initial_options", options, initial)
	}
	return checkGroupSubset("initial_options", groups, initial)
}

// NewStaticSelect validates and constructs a static select in either
// spelling.
func NewStaticSelect(cfg StaticSelectConfig) (*StaticSelectMenu, error) {
	s, err := newSelectMenu(staticShape, cfg.Type, cfg.ActionID, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if err := checkStaticOptions(cfg.Options, cfg.OptionGroups); err != nil {
		return nil, err
	}
	if err := s.checkInitialCount(len(cfg.InitialOptions)); err != nil {
		return nil, err
	}
	if err := checkStaticInitial(cfg.Options, cfg.OptionGroups, cfg.InitialOptions); err != nil {
		return nil, err
	}
	maxSelected, err := checkMaxSelected(cfg.MaxSelectedItems)
	if err != nil {
		return nil, err
	}

	m := &StaticSelectMenu{selectMenu: s}
	m.setOptional("options", cloneSlice(cfg.Options), cfg.Options != nil)
	m.setOptional("option_groups", cloneSlice(cfg.OptionGroups), cfg.OptionGroups != nil)
	writeInitial(&m.selectMenu, cfg.InitialOptions)
	m.setConfirm(cfg.Confirm)
	m.writeVariant(maxSelected, false)
	m.setFocusOnLoad(cfg.FocusOnLoad)
	return m, nil
}

// Options returns the flat options, nil when the menu uses option groups.
func (m *StaticSelectMenu) Options() []*Option {
	v, _ := field[[]*Option](&m.base, "options")
	return cloneSlice(v)
}

// OptionGroups returns the option groups, nil when the menu uses flat
// options.
func (m *StaticSelectMenu) OptionGroups() []*OptionGroup {
	v, _ := field[[]*OptionGroup](&m.base, "option_groups")
	return cloneSlice(v)
}

// InitialOptions returns the preselected options in either spelling.
func (m *StaticSelectMenu) InitialOptions() []*Option {
	return initialValues[*Option](&m.selectMenu)
}

// SetOptions replaces the options, and any option groups with them. Current
// initial options must be members of the new list.
func (m *StaticSelectMenu) SetOptions(options []*Option) error {
	if err := checkStaticOptions(options, nil); err != nil {
		return err
	}
	if err := checkStaticInitial(options, nil, m.InitialOptions()); err != nil {
		return err
	}
	m.body.replace("option_groups", "options", cloneValue(options))
	return nil
}

// SetOptionGroups replaces the option groups, and any flat options with them.
// Current initial options must fall into exactly one of the new groups.
func (m *StaticSelectMenu) SetOptionGroups(groups []*OptionGroup) error {
	if err := checkStaticOptions(nil, groups); err != nil {
		return err
	}
	if err := checkStaticInitial(nil, groups, m.InitialOptions()); err != nil {
		return err
	}
	m.body.replace("options", "option_groups", cloneValue(groups))
	return nil
}

// SetInitialOptions replaces the preselected options; nil or empty removes
// them. The single spelling accepts at most one.
func (m *StaticSelectMenu) SetInitialOptions(initial []*Option) error {
	if err := m.checkInitialCount(len(initial)); err != nil {
		return err
	}
	if err := checkStaticInitial(m.Options(), m.OptionGroups(), initial); err != nil {
		return err
	}
	writeInitial(&m.selectMenu, initial)
	return nil
}

// ExternalSelectMenu loads its options from the app's options endpoint.
type ExternalSelectMenu struct {
	selectMenu
}

// ExternalSelectConfig holds the external select fields. A zero
// MinQueryLength selects the platform default of three.
type ExternalSelectConfig struct {
	Type             string
	ActionID         string
	Placeholder      *Text
	InitialOptions   []*Option
	MinQueryLength   int
	Confirm          *ConfirmationDialog
	MaxSelectedItems int
	FocusOnLoad      bool
}

func checkMinQueryLength(n int) (int, error) {
	if n == 0 {
		return defaultMinQueryLength, nil
	}
	if n < 1 {
		return 0, constraint.Newf(constraint.KindRange, "min_query_length", "must be at least 1, is %d", n)
	}
	return n, nil
}

// NewExternalSelect validates and constructs an external select in either
// spelling.
func NewExternalSelect(cfg ExternalSelectConfig) (*ExternalSelectMenu, error) {
	s, err := newSelectMenu(externalShape, cfg.Type, cfg.ActionID, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if err := s.checkInitialCount(len(cfg.InitialOptions)); err != nil {
		return nil, err
	}
	minQuery, err := checkMinQueryLength(cfg.MinQueryLength)
	if err != nil {
		return nil, err
	}
	maxSelected, err := checkMaxSelected(cfg.MaxSelectedItems)
	if err != nil {
		return nil, err
	}

	m := &ExternalSelectMenu{selectMenu: s}
	writeInitial(&m.selectMenu, cfg.InitialOptions)
	m.store("min_query_length", minQuery)
	m.setConfirm(cfg.Confirm)
	m.writeVariant(maxSelected, false)
	m.setFocusOnLoad(cfg.FocusOnLoad)
	return m, nil
}

func (m *ExternalSelectMenu) InitialOptions() []*Option {
	return initialValues[*Option](&m.selectMenu)
}

func (m *ExternalSelectMenu) MinQueryLength() int {
	n, _ := field[int](&m.base, "min_query_length")
	return n
}

// SetInitialOptions replaces the preselected options; nil or empty removes
// them.
func (m *ExternalSelectMenu) SetInitialOptions(initial []*Option) error {
	if err := m.checkInitialCount(len(initial)); err != nil {
		return err
	}
	writeInitial(&m.selectMenu, initial)
	return nil
}

// SetMinQueryLength updates the typed prefix length that triggers a lookup;
// zero restores the default.
func (m *ExternalSelectMenu) SetMinQueryLength(n int) error {
	n, err := checkMinQueryLength(n)
	if err != nil {
		return err
	}
	m.store("min_query_length", n)
	return nil
}

// UsersSelectMenu offers the workspace's users.
type UsersSelectMenu struct {
	selectMenu
}

// UsersSelectConfig holds the users select fields.
type UsersSelectConfig struct {
	Type             string
	ActionID         string
	Placeholder      *Text
	InitialUsers     []string
	Confirm          *ConfirmationDialog
	MaxSelectedItems int
	FocusOnLoad      bool
}

// NewUsersSelect validates and constructs a users select in either spelling.
func NewUsersSelect(cfg UsersSelectConfig) (*UsersSelectMenu, error) {
	s, err := newSelectMenu(usersShape, cfg.Type, cfg.ActionID, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if err := s.checkInitialCount(len(cfg.InitialUsers)); err != nil {
		return nil, err
	}
	if err := checkIDs("initial_users", cfg.InitialUsers); err != nil {
		return nil, err
	}
	maxSelected, err := checkMaxSelected(cfg.MaxSelectedItems)
	if err != nil {
		return nil, err
	}

	m := &UsersSelectMenu{selectMenu: s}
	writeInitial(&m.selectMenu, cfg.InitialUsers)
	m.setConfirm(cfg.Confirm)
	m.writeVariant(maxSelected, false)
	m.setFocusOnLoad(cfg.FocusOnLoad)
	return m, nil
}

func (m *UsersSelectMenu) InitialUsers() []string {
	return initialValues[string](&m.selectMenu)
}

func (m *UsersSelectMenu) SetInitialUsers(users []string) error {
	if err := m.checkInitialCount(len(users)); err != nil {
		return err
	}
	if err := checkIDs("initial_users", users); err != nil {
		return err
	}
	writeInitial(&m.selectMenu, users)
	return nil
}

// ConversationsSelectMenu offers public channels, private channels and
// direct messages, optionally narrowed by a filter.
type ConversationsSelectMenu struct {
	selectMenu
}

// ConversationsSelectConfig holds the conversations select fields.
// ResponseURLEnabled reaches the wire only for the single spelling.
type ConversationsSelectConfig struct {
	Type                         string
	ActionID                     string
	Placeholder                  *Text
	InitialConversations         []string
	DefaultToCurrentConversation bool
	Confirm                      *ConfirmationDialog
	MaxSelectedItems             int
	ResponseURLEnabled           bool
	Filter                       *ConversationFilter
	FocusOnLoad                  bool
}

// NewConversationsSelect validates and constructs a conversations select in
// either spelling.
func NewConversationsSelect(cfg ConversationsSelectConfig) (*ConversationsSelectMenu, error) {
	s, err := newSelectMenu(conversationsShape, cfg.Type, cfg.ActionID, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if err := s.checkInitialCount(len(cfg.InitialConversations)); err != nil {
		return nil, err
	}
	if err := checkIDs("initial_conversations", cfg.InitialConversations); err != nil {
		return nil, err
	}
	maxSelected, err := checkMaxSelected(cfg.MaxSelectedItems)
	if err != nil {
		return nil, err
	}

	m := &ConversationsSelectMenu{selectMenu: s}
	writeInitial(&m.selectMenu, cfg.InitialConversations)
	m.store("default_to_current_conversation", cfg.DefaultToCurrentConversation)
	m.setConfirm(cfg.Confirm)
	m.writeVariant(maxSelected, cfg.ResponseURLEnabled)
	m.setOptional("filter", cfg.Filter, cfg.Filter != nil)
	m.setFocusOnLoad(cfg.FocusOnLoad)
	return m, nil
}

func (m *ConversationsSelectMenu) InitialConversations() []string {
	return initialValues[string](&m.selectMenu)
}

func (m *ConversationsSelectMenu) DefaultToCurrentConversation() bool {
	return boolField(&m.base, "default_to_current_conversation")
}

func (m *ConversationsSelectMenu) Filter() *ConversationFilter {
	f, _ := field[*ConversationFilter](&m.base, "filter")
	return f
}

func (m *ConversationsSelectMenu) ResponseURLEnabled() bool { return m.responseURLEnabled() }

func (m *ConversationsSelectMenu) SetInitialConversations(ids []string) error {
	if err := m.checkInitialCount(len(ids)); err != nil {
		return err
	}
	if err := checkIDs("initial_conversations", ids); err != nil {
		return err
	}
	writeInitial(&m.selectMenu, ids)
	return nil
}

func (m *ConversationsSelectMenu) SetDefaultToCurrentConversation(v bool) {
	m.store("default_to_current_conversation", v)
}

// SetFilter updates the filter; nil removes it.
func (m *ConversationsSelectMenu) SetFilter(f *ConversationFilter) {
	m.setOptional("filter", f, f != nil)
}

// SetResponseURLEnabled updates the flag. While the menu uses its multi
// spelling the value is remembered but not sent.
func (m *ConversationsSelectMenu) SetResponseURLEnabled(enabled bool) {
	m.writeResponseURLEnabled(enabled)
}

// ChannelsSelectMenu offers the workspace's public channels.
type ChannelsSelectMenu struct {
	selectMenu
}

// ChannelsSelectConfig holds the channels select fields. ResponseURLEnabled
// reaches the wire only for the single spelling.
type ChannelsSelectConfig struct {
	Type               string
	ActionID           string
	Placeholder        *Text
	InitialChannels    []string
	Confirm            *ConfirmationDialog
	MaxSelectedItems   int
	ResponseURLEnabled bool
	FocusOnLoad        bool
}

// NewChannelsSelect validates and constructs a channels select in either
// spelling.
func NewChannelsSelect(cfg ChannelsSelectConfig) (*ChannelsSelectMenu, error) {
	s, err := newSelectMenu(channelsShape, cfg.Type, cfg.ActionID, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if err := s.checkInitialCount(len(cfg.InitialChannels)); err != nil {
		return nil, err
	}
	if err := checkIDs("initial_channels", cfg.InitialChannels); err != nil {
		return nil, err
	}
	maxSelected, err := checkMaxSelected(cfg.MaxSelectedItems)
	if err != nil {
		return nil, err
	}

	m := &ChannelsSelectMenu{selectMenu: s}
	writeInitial(&m.selectMenu, cfg.InitialChannels)
	m.setConfirm(cfg.Confirm)
	m.writeVariant(maxSelected, cfg.ResponseURLEnabled)
	m.setFocusOnLoad(cfg.FocusOnLoad)
	return m, nil
}

func (m *ChannelsSelectMenu) InitialChannels() []string {
	return initialValues[string](&m.selectMenu)
}

func (m *ChannelsSelectMenu) ResponseURLEnabled() bool { return m.responseURLEnabled() }

func (m *ChannelsSelectMenu) SetInitialChannels(ids []string) error {
	if err := m.checkInitialCount(len(ids)); err != nil {
		return err
	}
	if err := checkIDs("initial_channels", ids); err != nil {
		return err
	}
	writeInitial(&m.selectMenu, ids)
	return nil
}

// SetResponseURLEnabled updates the flag. While the menu uses its multi
// spelling the value is remembered but not sent.
func (m *ChannelsSelectMenu) SetResponseURLEnabled(enabled bool) {
	m.writeResponseURLEnabled(enabled)
}
