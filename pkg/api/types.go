package api

import "time"

// Comparator is the operator applied when a matching-rule option's value is
// evaluated against a subject field.
type Comparator string

const (
	ComparatorEqual        Comparator = "equal"
	ComparatorGreater      Comparator = "greater"
	ComparatorLess         Comparator = "less"
	ComparatorGreaterEqual Comparator = "greater-equal"
	ComparatorLessEqual    Comparator = "less-equal"
	ComparatorNone         Comparator = "none"
)

// Valid reports whether c is one of the known comparator types.
func (c Comparator) Valid() bool {
	switch c {
	case ComparatorEqual, ComparatorGreater, ComparatorLess,
		ComparatorGreaterEqual, ComparatorLessEqual, ComparatorNone:
		return true
	}
	return false
}

// MatchingRuleOption is one comparator option inside a matching rule. ID is
// empty for options that have not been persisted yet. Position records the
// option's place in the rule's display/edit order and is serialized on save.
type MatchingRuleOption struct {
	ID             string     `json:"id,omitempty"`
	Label          string     `json:"label"`
	Value          string     `json:"value"`
	ComparatorType Comparator `json:"comparator_type"`
	Language       string     `json:"language"`
	Position       int        `json:"position"`
}

// MatchingRule is a named, described container of ordered comparator
// options. A rule is always fetched and edited in the context of exactly one
// language; the same rule id can carry different option sets per language.
type MatchingRule struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Options     []MatchingRuleOption `json:"options"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// User is a platform account managed through the admin API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  string    `json:"userType"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanProvider is a payment provider attached to a subscription plan.
type PlanProvider struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PlanCode string `json:"planCode"`
}

// Plan is a subscription plan.
type Plan struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Price     float64        `json:"price"`
	Currency  string         `json:"currency"`
	Interval  string         `json:"interval"`
	Active    bool           `json:"active"`
	Providers []PlanProvider `json:"providers"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Activity is one recent-activity feed entry on the dashboard.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlatformRevenue is the revenue contribution of one payment platform.
type PlatformRevenue struct {
	Platform     string  `json:"platform"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// RevenueStats is the dashboard revenue breakdown as returned by the server.
type RevenueStats struct {
	Total     float64           `json:"total"`
	Platforms []PlatformRevenue `json:"platforms"`
}

// DashboardStats is the overview/activity stats response.
type DashboardStats struct {
	TotalUsers      int          `json:"totalUsers"`
	ActiveUsers     int          `json:"activeUsers"`
	TotalProperties int          `json:"totalProperties"`
	TotalMatches    int          `json:"totalMatches"`
	RecentActivity  []Activity   `json:"recentActivity"`
	Revenue         RevenueStats `json:"revenue"`
}

// GrowthMetric holds a current/previous pair for one category. The growth
// percentage is derived client-side.
type GrowthMetric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// GrowthStats is the growth-comparison stats response.
type GrowthStats struct {
	Users      GrowthMetric `json:"users"`
	Properties GrowthMetric `json:"properties"`
	Matches    GrowthMetric `json:"matches"`
	Revenue    GrowthMetric `json:"revenue"`
}

// Credentials are the login inputs for both admin and staff flows.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the response of a successful login. The session token is
// returned to the caller; the client never persists it itself.
type LoginResult struct {
	Token       string   `json:"token"`
	UserType    string   `json:"userType"`
	Permissions []string `json:"permissions"`
}
