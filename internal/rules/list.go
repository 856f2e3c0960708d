package rules

import (
	"context"
	"sync"

	"github.com/searchcasa/scadmin/pkg/api"
)

// State is the rule-list screen state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Lister is the slice of the admin API the list controller needs.
type Lister interface {
	ListRules(ctx context.Context, language string) ([]api.MatchingRule, error)
	DeleteRule(ctx context.Context, id string) error
}

// ListController owns the rule-list lifecycle: loading -> {ready, error},
// with a full-replace reload on every load and on every language change.
// A closed controller discards the result of any fetch still in flight so a
// torn-down view is never written to.
type ListController struct {
	svc Lister

	mu       sync.Mutex
	alive    bool
	state    State
	language string
	rules    []api.MatchingRule
	errMsg   string
	menu     *Menu
}

// NewListController creates a controller scoped to one language. The caller
// runs the first Load; until then the state is loading.
func NewListController(svc Lister, language string, menu *Menu) *ListController {
	return &ListController{
		svc:      svc,
		alive:    true,
		state:    StateLoading,
		language: language,
		menu:     menu,
	}
}

// Load fetches the full rule list for the current language and replaces the
// held list wholesale. Results arriving after Close are discarded.
func (c *ListController) Load(ctx context.Context) {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return
	}
	c.state = StateLoading
	language := c.language
	c.mu.Unlock()

	rules, err := c.svc.ListRules(ctx, language)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	if err != nil {
		c.state = StateError
		c.errMsg = err.Error()
		return
	}
	c.state = StateReady
	c.rules = rules
	c.errMsg = ""
}

// SetLanguage switches the language scope and reloads the list.
func (c *ListController) SetLanguage(ctx context.Context, language string) {
	c.mu.Lock()
	if language == c.language {
		c.mu.Unlock()
		return
	}
	c.language = language
	c.mu.Unlock()

	c.Load(ctx)
}

// Language returns the current language scope.
func (c *ListController) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Delete removes one rule after the caller has confirmed the action, then
// reloads the list. Without confirmation nothing is called.
func (c *ListController) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := c.svc.DeleteRule(ctx, id); err != nil {
		return err
	}
	c.Load(ctx)
	return nil
}

// State returns the current screen state, the held rules, and the error
// message when in the error state. The returned slice is shared; callers
// treat it as a snapshot.
func (c *ListController) State() (State, []api.MatchingRule, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.rules, c.errMsg
}

// Close tears the controller down: in-flight fetch results are discarded
// from here on and any open row menu is dismissed so its subscription is
// released.
func (c *ListController) Close() {
	c.mu.Lock()
	c.alive = false
	c.mu.Unlock()

	if c.menu != nil {
		c.menu.Dismiss()
	}
}
