package recipe

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-blockkit/pkg/blockkit"
)

var (
	ErrUnknownSurface = errors.New("recipe: unknown surface")
	ErrUnknownBlock   = errors.New("recipe: unknown block type")
	ErrUnknownElement = errors.New("recipe: unknown element type")
	ErrPlacement      = errors.New("recipe: element not allowed here")
)

// Build constructs the surface r describes. Errors name the failing path,
// for example "blocks[2].element", and wrap the constraint violation.
func Build(r Recipe) (blockkit.Surface, error) {
	blocks := make([]blockkit.Block, 0, len(r.Blocks))
	for i, src := range r.Blocks {
		block, err := buildBlock(src)
		if err != nil {
			return nil, fmt.Errorf("recipe: blocks[%d]: %w", i, err)
		}
		blocks = append(blocks, block)
	}

	switch r.Surface {
	case "message", "":
		msg, err := blockkit.NewMessage(r.Text, blocks...)
		if err != nil {
			return nil, err
		}
		return msg, nil
	case "home":
		home, err := blockkit.NewHome(blockkit.HomeConfig{
			Blocks:          blocks,
			PrivateMetadata: r.PrivateMetadata,
			CallbackID:      r.CallbackID,
			ExternalID:      r.ExternalID,
		})
		if err != nil {
			return nil, err
		}
		return home, nil
	case "modal":
		title, err := plain(r.Title)
		if err != nil {
			return nil, fmt.Errorf("recipe: title: %w", err)
		}
		submit, err := optionalPlain(r.Submit)
		if err != nil {
			return nil, fmt.Errorf("recipe: submit: %w", err)
		}
		closeText, err := optionalPlain(r.Close)
		if err != nil {
			return nil, fmt.Errorf("recipe: close: %w", err)
		}
		modal, err := blockkit.NewModal(blockkit.ModalConfig{
			Title:           title,
			Close:           closeText,
			Submit:          submit,
			Blocks:          blocks,
			PrivateMetadata: r.PrivateMetadata,
			CallbackID:      r.CallbackID,
			ExternalID:      r.ExternalID,
			ClearOnClose:    r.ClearOnClose,
			NotifyOnClose:   r.NotifyOnClose,
		})
		if err != nil {
			return nil, err
		}
		return modal, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, r.Surface)
}

func buildBlock(src Block) (blockkit.Block, error) {
	switch src.Type {
	case "divider":
		return blockkit.NewDividerBlock(src.BlockID)
	case "header":
		text, err := plain(src.Text)
		if err != nil {
			return nil, err
		}
		return blockkit.NewHeaderBlock(text, src.BlockID)
	case "section":
		return buildSection(src)
	case "context":
		elements := make([]blockkit.ContextElement, 0, len(src.Elements))
		for i, el := range src.Elements {
			ce, err := buildContextElement(el)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			elements = append(elements, ce)
		}
		return blockkit.NewContextBlock(elements, src.BlockID)
	case "actions":
		elements := make([]blockkit.ActionsElement, 0, len(src.Elements))
		for i, el := range src.Elements {
			built, err := buildElement(el)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			ae, ok := built.(blockkit.ActionsElement)
			if !ok {
				return nil, fmt.Errorf("elements[%d]: %w: %s in actions", i, ErrPlacement, el.Type)
			}
			elements = append(elements, ae)
		}
		return blockkit.NewActionsBlock(elements, src.BlockID)
	case "input":
		return buildInput(src)
	case "image":
		title, err := optionalPlain(src.Title)
		if err != nil {
			return nil, err
		}
		return blockkit.NewImageBlock(blockkit.ImageBlockConfig{
			ImageURL: src.ImageURL,
			AltText:  src.AltText,
			Title:    title,
			BlockID:  src.BlockID,
		})
	case "file":
		return blockkit.NewFileBlock(src.ExternalID, src.BlockID)
	case "video":
		title, err := plain(src.Title)
		if err != nil {
			return nil, err
		}
		description, err := optionalPlain(src.Description)
		if err != nil {
			return nil, err
		}
		return blockkit.NewVideoBlock(blockkit.VideoBlockConfig{
			AltText:         src.AltText,
			Title:           title,
			ThumbnailURL:    src.ThumbnailURL,
			VideoURL:        src.VideoURL,
			AuthorName:      src.AuthorName,
			BlockID:         src.BlockID,
			Description:     description,
			ProviderIconURL: src.ProviderIconURL,
			ProviderName:    src.ProviderName,
			TitleURL:        src.TitleURL,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, src.Type)
}

func buildSection(src Block) (blockkit.Block, error) {
	cfg := blockkit.SectionBlockConfig{BlockID: src.BlockID}
	if src.Text != "" {
		text, err := blockkit.NewMrkdwn(src.Text)
		if err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
		cfg.Text = text
	}
	for i, f := range src.Fields {
		field, err := blockkit.NewMrkdwn(f)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		cfg.Fields = append(cfg.Fields, field)
	}
	if src.Accessory != nil {
		built, err := buildElement(*src.Accessory)
		if err != nil {
			return nil, fmt.Errorf("accessory: %w", err)
		}
		acc, ok := built.(blockkit.AccessoryElement)
		if !ok {
			return nil, fmt.Errorf("accessory: %w: %s", ErrPlacement, src.Accessory.Type)
		}
		cfg.Accessory = acc
	}
	return blockkit.NewSectionBlock(cfg)
}

func buildInput(src Block) (blockkit.Block, error) {
	label, err := plain(src.Label)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	hint, err := optionalPlain(src.Hint)
	if err != nil {
		return nil, fmt.Errorf("hint: %w", err)
	}
	cfg := blockkit.InputBlockConfig{
		Label:          label,
		Hint:           hint,
		Optional:       src.Optional,
		DispatchAction: src.DispatchAction,
		BlockID:        src.BlockID,
	}
	if src.Element != nil {
		built, err := buildElement(*src.Element)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		ie, ok := built.(blockkit.InputElement)
		if !ok {
			return nil, fmt.Errorf("element: %w: %s in input", ErrPlacement, src.Element.Type)
		}
		cfg.Element = ie
	}
	return blockkit.NewInputBlock(cfg)
}

func buildContextElement(el Element) (blockkit.ContextElement, error) {
	switch el.Type {
	case "mrkdwn":
		return blockkit.NewMrkdwn(el.Text)
	case "plain_text":
		return blockkit.NewPlainText(el.Text)
	case "image":
		return blockkit.NewImageElement(el.ImageURL, el.AltText)
	}
	return nil, fmt.Errorf("%w: %s in context", ErrPlacement, el.Type)
}

func buildElement(el Element) (blockkit.Element, error) {
	confirm, err := buildConfirm(el.Confirm)
	if err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}
	placeholder, err := optionalPlain(el.Placeholder)
	if err != nil {
		return nil, fmt.Errorf("placeholder: %w", err)
	}
	dispatch, err := buildDispatch(el.DispatchTriggers)
	if err != nil {
		return nil, fmt.Errorf("dispatch_triggers: %w", err)
	}

	switch el.Type {
	case "button":
		text, err := plain(el.Text)
		if err != nil {
			return nil, err
		}
		return blockkit.NewButton(blockkit.ButtonConfig{
			Text:     text,
			ActionID: el.ActionID,
			URL:      el.URL,
			Value:    el.Value,
			Style:    el.Style,
			Confirm:  confirm,
		})
	case "image":
		return blockkit.NewImageElement(el.ImageURL, el.AltText)
	case "overflow":
		options, err := buildOptions(el.Options)
		if err != nil {
			return nil, err
		}
		return blockkit.NewOverflow(el.ActionID, options, confirm)
	case "checkboxes":
		options, err := buildOptions(el.Options)
		if err != nil {
			return nil, err
		}
		initial, err := pick(options, el.InitialValues)
		if err != nil {
			return nil, err
		}
		return blockkit.NewCheckboxes(blockkit.CheckboxesConfig{
			ActionID:       el.ActionID,
			Options:        options,
			InitialOptions: initial,
			Confirm:        confirm,
			FocusOnLoad:    el.FocusOnLoad,
		})
	case "radio_buttons":
		options, err := buildOptions(el.Options)
		if err != nil {
			return nil, err
		}
		var initial *blockkit.Option
		if el.Initial != "" {
			picked, err := pick(options, []string{el.Initial})
			if err != nil {
				return nil, err
			}
			initial = picked[0]
		}
		return blockkit.NewRadioButtons(blockkit.RadioButtonsConfig{
			ActionID:      el.ActionID,
			Options:       options,
			InitialOption: initial,
			Confirm:       confirm,
			FocusOnLoad:   el.FocusOnLoad,
		})
	case "datepicker":
		return blockkit.NewDatePicker(blockkit.DatePickerConfig{
			ActionID:    el.ActionID,
			Placeholder: placeholder,
			InitialDate: el.Initial,
			Confirm:     confirm,
			FocusOnLoad: el.FocusOnLoad,
		})
	case "timepicker":
		return blockkit.NewTimePicker(blockkit.TimePickerConfig{
			ActionID:    el.ActionID,
			InitialTime: el.Initial,
			Confirm:     confirm,
			Placeholder: placeholder,
			Timezone:    el.Timezone,
			FocusOnLoad: el.FocusOnLoad,
		})
	case "datetimepicker":
		var initial time.Time
		if el.InitialDateTime != "" {
			initial, err = time.Parse(time.RFC3339, el.InitialDateTime)
			if err != nil {
				return nil, fmt.Errorf("initial_date_time: %w", err)
			}
		}
		return blockkit.NewDateTimePicker(blockkit.DateTimePickerConfig{
			ActionID:        el.ActionID,
			InitialDateTime: initial,
			Confirm:         confirm,
			FocusOnLoad:     el.FocusOnLoad,
		})
	case "plain_text_input":
		return blockkit.NewPlainTextInput(blockkit.PlainTextInputConfig{
			ActionID:     el.ActionID,
			Placeholder:  placeholder,
			InitialValue: el.Initial,
			Multiline:    el.Multiline,
			MinLength:    el.MinLength,
			MaxLength:    el.MaxLength,
			FocusOnLoad:  el.FocusOnLoad,

			DispatchActionConfig: dispatch,
		})
	case "email_text_input":
		return blockkit.NewEmailInput(textInput(el, placeholder, dispatch))
	case "url_text_input":
		return blockkit.NewURLInput(textInput(el, placeholder, dispatch))
	case "number_input":
		return blockkit.NewNumberInput(blockkit.NumberInputConfig{
			IsDecimalAllowed:     el.DecimalAllowed,
			ActionID:             el.ActionID,
			InitialValue:         el.Initial,
			MinValue:             el.MinValue,
			MaxValue:             el.MaxValue,
			FocusOnLoad:          el.FocusOnLoad,
			Placeholder:          placeholder,
			DispatchActionConfig: dispatch,
		})
	case blockkit.StaticSelect, blockkit.MultiStaticSelect:
		options, err := buildOptions(el.Options)
		if err != nil {
			return nil, err
		}
		groups, err := buildOptionGroups(el.OptionGroups)
		if err != nil {
			return nil, err
		}
		candidates := options
		for _, g := range groups {
			candidates = append(candidates, g.Options()...)
		}
		initial, err := pick(candidates, initialValues(el))
		if err != nil {
			return nil, err
		}
		return blockkit.NewStaticSelect(blockkit.StaticSelectConfig{
			Type:             el.Type,
			ActionID:         el.ActionID,
			Placeholder:      placeholder,
			Options:          options,
			OptionGroups:     groups,
			InitialOptions:   initial,
			Confirm:          confirm,
			MaxSelectedItems: el.MaxSelectedItems,
			FocusOnLoad:      el.FocusOnLoad,
		})
	case blockkit.ExternalSelect, blockkit.MultiExternalSelect:
		initial, err := buildOptions(el.Options)
		if err != nil {
			return nil, err
		}
		return blockkit.NewExternalSelect(blockkit.ExternalSelectConfig{
			Type:             el.Type,
			ActionID:         el.ActionID,
			Placeholder:      placeholder,
			InitialOptions:   initial,
			MinQueryLength:   el.MinQueryLength,
			Confirm:          confirm,
			MaxSelectedItems: el.MaxSelectedItems,
			FocusOnLoad:      el.FocusOnLoad,
		})
	case blockkit.UsersSelect, blockkit.MultiUsersSelect:
		return blockkit.NewUsersSelect(blockkit.UsersSelectConfig{
			Type:             el.Type,
			ActionID:         el.ActionID,
			Placeholder:      placeholder,
			InitialUsers:     initialValues(el),
			Confirm:          confirm,
			MaxSelectedItems: el.MaxSelectedItems,
			FocusOnLoad:      el.FocusOnLoad,
		})
	case blockkit.ConversationsSelect, blockkit.MultiConversationsSelect:
		filter, err := buildFilter(el.Filter)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		return blockkit.NewConversationsSelect(blockkit.ConversationsSelectConfig{
			Type:                         el.Type,
			ActionID:                     el.ActionID,
			Placeholder:                  placeholder,
			InitialConversations:         initialValues(el),
			DefaultToCurrentConversation: el.DefaultToCurrent,
			Confirm:                      confirm,
			MaxSelectedItems:             el.MaxSelectedItems,
			ResponseURLEnabled:           el.ResponseURLEnabled,
			Filter:                       filter,
			FocusOnLoad:                  el.FocusOnLoad,
		})
	case blockkit.ChannelsSelect, blockkit.MultiChannelsSelect:
		return blockkit.NewChannelsSelect(blockkit.ChannelsSelectConfig{
			Type:               el.Type,
			ActionID:           el.ActionID,
			Placeholder:        placeholder,
			InitialChannels:    initialValues(el),
			Confirm:            confirm,
			MaxSelectedItems:   el.MaxSelectedItems,
			ResponseURLEnabled: el.ResponseURLEnabled,
			FocusOnLoad:        el.FocusOnLoad,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownElement, el.Type)
}

func textInput(el Element, placeholder *blockkit.Text, dispatch *blockkit.DispatchActionConfig) blockkit.TextInputConfig {
	return blockkit.TextInputConfig{
		ActionID:             el.ActionID,
		InitialValue:         el.Initial,
		FocusOnLoad:          el.FocusOnLoad,
		Placeholder:          placeholder,
		DispatchActionConfig: dispatch,
	}
}

func buildDispatch(triggers []string) (*blockkit.DispatchActionConfig, error) {
	if len(triggers) == 0 {
		return nil, nil
	}
	return blockkit.NewDispatchActionConfig(triggers...)
}

func buildFilter(src *Filter) (*blockkit.ConversationFilter, error) {
	if src == nil {
		return nil, nil
	}
	return blockkit.NewConversationFilter(blockkit.ConversationFilterConfig{
		Include:                       src.Include,
		ExcludeExternalSharedChannels: src.ExcludeExternalSharedChannels,
		ExcludeBotUsers:               src.ExcludeBotUsers,
	})
}

func buildOptionGroups(defs []OptionGroup) ([]*blockkit.OptionGroup, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	out := make([]*blockkit.OptionGroup, 0, len(defs))
	for i, src := range defs {
		label, err := plain(src.Label)
		if err != nil {
			return nil, fmt.Errorf("option_groups[%d]: %w", i, err)
		}
		options, err := buildOptions(src.Options)
		if err != nil {
			return nil, fmt.Errorf("option_groups[%d]: %w", i, err)
		}
		group, err := blockkit.NewOptionGroup(label, options)
		if err != nil {
			return nil, fmt.Errorf("option_groups[%d]: %w", i, err)
		}
		out = append(out, group)
	}
	return out, nil
}

func initialValues(el Element) []string {
	if len(el.InitialValues) > 0 {
		return el.InitialValues
	}
	if el.Initial != "" {
		return []string{el.Initial}
	}
	return nil
}

func buildOptions(defs []Option) ([]*blockkit.Option, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	out := make([]*blockkit.Option, 0, len(defs))
	for i, src := range defs {
		text, err := plain(src.Text)
		if err != nil {
			return nil, fmt.Errorf("options[%d]: %w", i, err)
		}
		description, err := optionalPlain(src.Description)
		if err != nil {
			return nil, fmt.Errorf("options[%d]: %w", i, err)
		}
		opt, err := blockkit.NewOption(blockkit.OptionConfig{
			Text:        text,
			Value:       src.Value,
			Description: description,
			URL:         src.URL,
		})
		if err != nil {
			return nil, fmt.Errorf("options[%d]: %w", i, err)
		}
		out = append(out, opt)
	}
	return out, nil
}

// pick returns the options whose values are listed, in list order.
func pick(options []*blockkit.Option, values []string) ([]*blockkit.Option, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]*blockkit.Option, 0, len(values))
	for _, v := range values {
		found := false
		for _, opt := range options {
			if opt.Value() == v {
				out = append(out, opt)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("recipe: initial value %q matches no option", v)
		}
	}
	return out, nil
}

func buildConfirm(src *Confirm) (*blockkit.ConfirmationDialog, error) {
	if src == nil {
		return nil, nil
	}
	title, err := plain(src.Title)
	if err != nil {
		return nil, err
	}
	text, err := blockkit.NewMrkdwn(src.Text)
	if err != nil {
		return nil, err
	}
	confirm, err := plain(src.Confirm)
	if err != nil {
		return nil, err
	}
	deny, err := plain(src.Deny)
	if err != nil {
		return nil, err
	}
	return blockkit.NewConfirmationDialog(blockkit.ConfirmationDialogConfig{
		Title:   title,
		Text:    text,
		Confirm: confirm,
		Deny:    deny,
		Style:   src.Style,
	})
}

func plain(text string) (*blockkit.Text, error) {
	return blockkit.NewPlainText(text)
}

func optionalPlain(text string) (*blockkit.Text, error) {
	if text == "" {
		return nil, nil
	}
	return blockkit.NewPlainText(text)
}
