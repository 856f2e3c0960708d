package rules

import "sync"

// Subscription is the outside-dismiss hook held while a row menu is open.
// It is acquired when the menu opens and must be released exactly once,
// when the menu closes or its owner is torn down.
type Subscription interface {
	Release()
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

// Release implements Subscription.
func (f SubscriptionFunc) Release() { f() }

// Menu is the per-row actions menu state: closed, or open for exactly one
// rule. Opening a row implicitly closes any other row's menu first, so at
// most one dismiss subscription is live at any time.
type Menu struct {
	mu      sync.Mutex
	openFor string
	sub     Subscription
	acquire func(ruleID string) Subscription
}

// NewMenu creates a closed menu. acquire is called each time a row opens and
// returns the dismiss subscription for that row; it may be nil when no
// dismiss hook is needed.
func NewMenu(acquire func(ruleID string) Subscription) *Menu {
	return &Menu{acquire: acquire}
}

// Open opens the menu for one rule, closing any other row's menu first.
// Opening the already-open row is a no-op.
func (m *Menu) Open(ruleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.openFor == ruleID {
		return
	}
	m.releaseLocked()
	m.openFor = ruleID
	if m.acquire != nil {
		m.sub = m.acquire(ruleID)
	}
}

// Dismiss closes the menu, releasing the subscription. Dismissing a closed
// menu is a no-op.
func (m *Menu) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
	m.openFor = ""
}

func (m *Menu) releaseLocked() {
	if m.sub != nil {
		m.sub.Release()
		m.sub = nil
	}
}

// OpenFor returns the rule whose menu is open, if any.
func (m *Menu) OpenFor() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openFor, m.openFor != ""
}
