// Package rules implements the matching-rule editing feature: the form
// state used to create and edit rules (including their not-yet-persisted
// draft options), the list controller that owns the loading/ready/error
// lifecycle of the rule list, and the exclusive row-actions menu.
package rules

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/searchcasa/scadmin/pkg/api"
)

// DefaultOptionLanguage is the language assigned to a freshly added draft
// option, regardless of the language filter the parent rule was fetched
// with.
const DefaultOptionLanguage = "en"

// Service is the slice of the admin API the editor needs.
type Service interface {
	GetRule(ctx context.Context, id, language string) (api.MatchingRule, error)
	CreateRule(ctx context.Context, payload any) (api.MatchingRule, error)
	UpdateRule(ctx context.Context, id string, payload any) (api.MatchingRule, error)
}

// Field names an editable attribute of a draft option.
type Field string

const (
	FieldLabel      Field = "label"
	FieldValue      Field = "value"
	FieldComparator Field = "comparator_type"
	FieldLanguage   Field = "language"
)

// DraftOption is one option in the editor's form state. Handle is a
// client-generated identifier assigned when the option is added; it stays
// stable across edits and reorders, unlike an array index. PersistedID is
// empty for options the server has never seen.
type DraftOption struct {
	Handle      string
	PersistedID string
	Label       string
	Value       string
	Comparator  api.Comparator
	Language    string
}

// Editor is the form state for creating or editing one matching rule. The
// whole form, draft options included, is submitted as a single payload; the
// server sees nothing until Submit. On a failed submit the form is left
// intact for retry.
//
// The editor is not safe for concurrent use; it models a single form.
type Editor struct {
	svc      Service
	language string

	ruleID      string // empty means create mode
	Name        string
	Description string
	options     []DraftOption

	reload func(context.Context) error
}

// EditorOption customizes an Editor at construction time.
type EditorOption func(*Editor)

// WithReload registers a hook invoked after every successful submit. The
// rule list registers its own full reload here so mutations are never
// patched locally.
func WithReload(fn func(context.Context) error) EditorOption {
	return func(e *Editor) {
		e.reload = fn
	}
}

// NewEditor creates an empty form in create mode, scoped to one language.
func NewEditor(svc Service, language string, opts ...EditorOption) *Editor {
	e := &Editor{svc: svc, language: language}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadRule switches the editor to edit mode, seeding the form from the rule
// fetched under the editor's language scope. Persisted options receive fresh
// handles.
func (e *Editor) LoadRule(ctx context.Context, id string) error {
	rule, err := e.svc.GetRule(ctx, id, e.language)
	if err != nil {
		return err
	}

	e.ruleID = rule.ID
	e.Name = rule.Name
	e.Description = rule.Description
	e.options = make([]DraftOption, len(rule.Options))
	for i, opt := range rule.Options {
		e.options[i] = DraftOption{
			Handle:      uuid.New().String(),
			PersistedID: opt.ID,
			Label:       opt.Label,
			Value:       opt.Value,
			Comparator:  opt.ComparatorType,
			Language:    opt.Language,
		}
	}
	return nil
}

// RuleID returns the id of the rule being edited, or "" in create mode.
func (e *Editor) RuleID() string {
	return e.ruleID
}

// AddOption appends a draft option with the default comparator and language
// and returns its handle.
func (e *Editor) AddOption() string {
	opt := DraftOption{
		Handle:     uuid.New().String(),
		Comparator: api.ComparatorEqual,
		Language:   DefaultOptionLanguage,
	}
	e.options = append(e.options, opt)
	return opt.Handle
}

func (e *Editor) find(handle string) (int, error) {
	for i := range e.options {
		if e.options[i].Handle == handle {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no option with handle %q", handle)
}

// UpdateOption sets one field on one option, leaving every other option
// untouched.
func (e *Editor) UpdateOption(handle string, field Field, value string) error {
	i, err := e.find(handle)
	if err != nil {
		return err
	}

	switch field {
	case FieldLabel:
		e.options[i].Label = value
	case FieldValue:
		e.options[i].Value = value
	case FieldComparator:
		c := api.Comparator(value)
		if !c.Valid() {
			return fmt.Errorf("invalid comparator type %q", value)
		}
		e.options[i].Comparator = c
	case FieldLanguage:
		e.options[i].Language = value
	default:
		return fmt.Errorf("unknown option field %q", field)
	}
	return nil
}

// RemoveOption deletes an option from the form. No server call is made; an
// option only disappears server-side when the rule is next submitted.
func (e *Editor) RemoveOption(handle string) error {
	i, err := e.find(handle)
	if err != nil {
		return err
	}
	e.options = append(e.options[:i], e.options[i+1:]...)
	return nil
}

// Len returns the number of options on the form.
func (e *Editor) Len() int {
	return len(e.options)
}

// OptionAt returns the option at a display position.
func (e *Editor) OptionAt(i int) (DraftOption, bool) {
	if i < 0 || i >= len(e.options) {
		return DraftOption{}, false
	}
	return e.options[i], true
}

// Options returns a copy of the ordered option list.
func (e *Editor) Options() []DraftOption {
	out := make([]DraftOption, len(e.options))
	copy(out, e.options)
	return out
}

// Validate applies the form's input constraints: name 1-100 characters,
// description 1-500, every option with a label and a value. The server
// remains the final authority; this only catches what the form itself can
// see.
func (e *Editor) Validate() error {
	if n := len(e.Name); n == 0 || n > 100 {
		return fmt.Errorf("name must be 1-100 characters")
	}
	if n := len(e.Description); n == 0 || n > 500 {
		return fmt.Errorf("description must be 1-500 characters")
	}
	for i, opt := range e.options {
		if opt.Label == "" {
			return fmt.Errorf("option %d: label is required", i+1)
		}
		if opt.Value == "" {
			return fmt.Errorf("option %d: value is required", i+1)
		}
	}
	return nil
}

// rulePayload is the submitted form. Option order is serialized as an
// explicit position so the server does not depend on array order.
type rulePayload struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Options     []api.MatchingRuleOption `json:"options"`
}

func (e *Editor) payload() rulePayload {
	opts := make([]api.MatchingRuleOption, len(e.options))
	for i, o := range e.options {
		opts[i] = api.MatchingRuleOption{
			ID:             o.PersistedID,
			Label:          o.Label,
			Value:          o.Value,
			ComparatorType: o.Comparator,
			Language:       o.Language,
			Position:       i,
		}
	}
	return rulePayload{Name: e.Name, Description: e.Description, Options: opts}
}

// Submit sends the entire form as one payload: POST in create mode, PUT
// full-replace in edit mode. On success the reload hook runs and the
// submitted rule is returned; on failure the form is untouched and the
// normalized error is returned for retry.
func (e *Editor) Submit(ctx context.Context) (api.MatchingRule, error) {
	var (
		rule api.MatchingRule
		err  error
	)
	if e.ruleID == "" {
		rule, err = e.svc.CreateRule(ctx, e.payload())
	} else {
		rule, err = e.svc.UpdateRule(ctx, e.ruleID, e.payload())
	}
	if err != nil {
		return api.MatchingRule{}, err
	}

	if e.reload != nil {
		if err := e.reload(ctx); err != nil {
			return rule, fmt.Errorf("rule saved but list reload failed: %w", err)
		}
	}
	return rule, nil
}
