package recipe

// Recipe describes one surface in a compact, hand-writable form. It is not
// platform JSON: text fields are plain strings and the builder picks the text
// type each field requires.
type Recipe struct {
	Surface         string  `json:"surface" yaml:"surface"`
	Text            string  `json:"text,omitempty" yaml:"text,omitempty"`
	Title           string  `json:"title,omitempty" yaml:"title,omitempty"`
	Submit          string  `json:"submit,omitempty" yaml:"submit,omitempty"`
	Close           string  `json:"close,omitempty" yaml:"close,omitempty"`
	CallbackID      string  `json:"callback_id,omitempty" yaml:"callback_id,omitempty"`
	PrivateMetadata string  `json:"private_metadata,omitempty" yaml:"private_metadata,omitempty"`
	ExternalID      string  `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	ClearOnClose    bool    `json:"clear_on_close,omitempty" yaml:"clear_on_close,omitempty"`
	NotifyOnClose   bool    `json:"notify_on_close,omitempty" yaml:"notify_on_close,omitempty"`
	Blocks          []Block `json:"blocks" yaml:"blocks"`
}

// Block describes a layout block. Only the fields of its Type are read.
type Block struct {
	Type    string `json:"type" yaml:"type"`
	BlockID string `json:"block_id,omitempty" yaml:"block_id,omitempty"`

	// section, header, context
	Text      string    `json:"text,omitempty" yaml:"text,omitempty"`
	Fields    []string  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Accessory *Element  `json:"accessory,omitempty" yaml:"accessory,omitempty"`
	Elements  []Element `json:"elements,omitempty" yaml:"elements,omitempty"`

	// input
	Label          string   `json:"label,omitempty" yaml:"label,omitempty"`
	Hint           string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	Optional       bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	DispatchAction bool     `json:"dispatch_action,omitempty" yaml:"dispatch_action,omitempty"`
	Element        *Element `json:"element,omitempty" yaml:"element,omitempty"`

	// image, video, file
	ImageURL        string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	AltText         string `json:"alt_text,omitempty" yaml:"alt_text,omitempty"`
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	ExternalID      string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	VideoURL        string `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	TitleURL        string `json:"title_url,omitempty" yaml:"title_url,omitempty"`
	AuthorName      string `json:"author_name,omitempty" yaml:"author_name,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	ProviderName    string `json:"provider_name,omitempty" yaml:"provider_name,omitempty"`
	ProviderIconURL string `json:"provider_icon_url,omitempty" yaml:"provider_icon_url,omitempty"`
}

// Element describes an interactive element, or a context element when Type is
// mrkdwn, plain_text or image.
type Element struct {
	Type        string   `json:"type" yaml:"type"`
	ActionID    string   `json:"action_id,omitempty" yaml:"action_id,omitempty"`
	Text        string   `json:"text,omitempty" yaml:"text,omitempty"`
	Value       string   `json:"value,omitempty" yaml:"value,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Style       string   `json:"style,omitempty" yaml:"style,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// OptionGroups replaces Options on static selects.
	OptionGroups []OptionGroup `json:"option_groups,omitempty" yaml:"option_groups,omitempty"`

	// Initial is the single initial value: an option value, a date, a time,
	// a user/conversation/channel id or input text. InitialValues is its
	// multi-select and checkbox counterpart.
	Initial         string   `json:"initial,omitempty" yaml:"initial,omitempty"`
	InitialValues   []string `json:"initial_values,omitempty" yaml:"initial_values,omitempty"`
	InitialDateTime string   `json:"initial_date_time,omitempty" yaml:"initial_date_time,omitempty"`

	Timezone         string   `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Multiline        bool     `json:"multiline,omitempty" yaml:"multiline,omitempty"`
	MinLength        int      `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength        int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	DecimalAllowed   bool     `json:"decimal_allowed,omitempty" yaml:"decimal_allowed,omitempty"`
	MinValue         string   `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue         string   `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	MinQueryLength   int      `json:"min_query_length,omitempty" yaml:"min_query_length,omitempty"`
	MaxSelectedItems int      `json:"max_selected_items,omitempty" yaml:"max_selected_items,omitempty"`
	ImageURL         string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	AltText          string   `json:"alt_text,omitempty" yaml:"alt_text,omitempty"`
	FocusOnLoad      bool     `json:"focus_on_load,omitempty" yaml:"focus_on_load,omitempty"`
	Confirm          *Confirm `json:"confirm,omitempty" yaml:"confirm,omitempty"`

	// DispatchTriggers sets the dispatch_action_config of text and number
	// inputs.
	DispatchTriggers []string `json:"dispatch_triggers,omitempty" yaml:"dispatch_triggers,omitempty"`

	// Filter, DefaultToCurrent and ResponseURLEnabled apply to conversations
	// selects; ResponseURLEnabled also applies to channels selects.
	Filter             *Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
	DefaultToCurrent   bool    `json:"default_to_current_conversation,omitempty" yaml:"default_to_current_conversation,omitempty"`
	ResponseURLEnabled bool    `json:"response_url_enabled,omitempty" yaml:"response_url_enabled,omitempty"`
}

type Option struct {
	Text        string `json:"text" yaml:"text"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

type OptionGroup struct {
	Label   string   `json:"label" yaml:"label"`
	Options []Option `json:"options" yaml:"options"`
}

// Filter narrows the conversations a conversations select lists.
type Filter struct {
	Include                       []string `json:"include,omitempty" yaml:"include,omitempty"`
	ExcludeExternalSharedChannels bool     `json:"exclude_external_shared_channels,omitempty" yaml:"exclude_external_shared_channels,omitempty"`
	ExcludeBotUsers               bool     `json:"exclude_bot_users,omitempty" yaml:"exclude_bot_users,omitempty"`
}

// Confirm describes a confirmation dialog. Text is mrkdwn.
type Confirm struct {
	Title   string `json:"title" yaml:"title"`
	Text    string `json:"text" yaml:"text"`
	Confirm string `json:"confirm" yaml:"confirm"`
	Deny    string `json:"deny" yaml:"deny"`
	Style   string `json:"style,omitempty" yaml:"style,omitempty"`
}
