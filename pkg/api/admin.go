package api

import (
	"context"
	"net/http"
	"net/url"
)

// Admin API paths.
const (
	pathDashboardStats = "/api/admin/dashboard/stats"
	pathGrowthStats    = "/api/admin/dashboard/growth-stats"
	pathMatchingRules  = "/api/admin/matching-rules"
	pathUsers          = "/api/admin/users"
	pathSubscriptions  = "/api/admin/subscriptions"
)

// AdminService is the curated set of admin operations. Each method is a thin
// verb/path mapping with the client core's unwrap convention; there is no
// business logic here. Matching-rule reads additionally thread a language
// query parameter, which scopes the option set returned for a rule.
type AdminService struct {
	c     *Client
	rules *Resource[MatchingRule]
	users *Resource[User]
	plans *Resource[Plan]
}

// NewAdminService creates an admin service on top of the given client.
func NewAdminService(c *Client) *AdminService {
	return &AdminService{
		c:     c,
		rules: NewResource[MatchingRule](c, pathMatchingRules),
		users: NewResource[User](c, pathUsers),
		plans: NewResource[Plan](c, pathSubscriptions),
	}
}

// DashboardStats fetches the overview/activity stats.
func (s *AdminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.c.Do(ctx, http.MethodGet, pathDashboardStats, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GrowthStats fetches the growth-comparison stats.
func (s *AdminService) GrowthStats(ctx context.Context) (*GrowthStats, error) {
	var stats GrowthStats
	if err := s.c.Do(ctx, http.MethodGet, pathGrowthStats, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func languageQuery(language string) url.Values {
	if language == "" {
		return nil
	}
	return url.Values{"language": []string{language}}
}

// ListRules fetches all matching rules scoped to one language.
func (s *AdminService) ListRules(ctx context.Context, language string) ([]MatchingRule, error) {
	return s.rules.List(ctx, languageQuery(language))
}

// GetRule fetches one matching rule scoped to one language.
func (s *AdminService) GetRule(ctx context.Context, id, language string) (MatchingRule, error) {
	return s.rules.get(ctx, id, languageQuery(language))
}

// CreateRule creates a matching rule from the full form payload, including
// any not-yet-persisted options.
func (s *AdminService) CreateRule(ctx context.Context, payload any) (MatchingRule, error) {
	return s.rules.Create(ctx, payload)
}

// UpdateRule replaces a matching rule. Full-replace semantics: the server
// takes the submitted option set as the rule's new option set.
func (s *AdminService) UpdateRule(ctx context.Context, id string, payload any) (MatchingRule, error) {
	return s.rules.Update(ctx, id, payload)
}

// DeleteRule deletes a matching rule.
func (s *AdminService) DeleteRule(ctx context.Context, id string) error {
	return s.rules.Remove(ctx, id)
}

// ListUsers fetches all users.
func (s *AdminService) ListUsers(ctx context.Context, query url.Values) ([]User, error) {
	return s.users.List(ctx, query)
}

// GetUser fetches one user by id.
func (s *AdminService) GetUser(ctx context.Context, id string) (User, error) {
	return s.users.Get(ctx, id)
}

// CreateUser creates a user.
func (s *AdminService) CreateUser(ctx context.Context, payload any) (User, error) {
	return s.users.Create(ctx, payload)
}

// UpdateUser replaces a user.
func (s *AdminService) UpdateUser(ctx context.Context, id string, payload any) (User, error) {
	return s.users.Update(ctx, id, payload)
}

// DeleteUser deletes a user.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Remove(ctx, id)
}

// UpdateUserPassword sets a new password for a user.
func (s *AdminService) UpdateUserPassword(ctx context.Context, id, password string) error {
	payload := map[string]string{"password": password}
	return s.c.Do(ctx, http.MethodPatch, pathUsers+"/"+id+"/password", payload, nil, nil)
}

// ToggleUserStatus flips a user between active and inactive.
func (s *AdminService) ToggleUserStatus(ctx context.Context, id string) (User, error) {
	var user User
	if err := s.c.Do(ctx, http.MethodPatch, pathUsers+"/"+id+"/toggle-status", nil, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ListPlans fetches all subscription plans.
func (s *AdminService) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.plans.List(ctx, nil)
}

// GetPlan fetches one plan by id.
func (s *AdminService) GetPlan(ctx context.Context, id string) (Plan, error) {
	return s.plans.Get(ctx, id)
}

// CreatePlan creates a subscription plan.
func (s *AdminService) CreatePlan(ctx context.Context, payload any) (Plan, error) {
	return s.plans.Create(ctx, payload)
}

// UpdatePlan replaces a subscription plan.
func (s *AdminService) UpdatePlan(ctx context.Context, id string, payload any) (Plan, error) {
	return s.plans.Update(ctx, id, payload)
}

// DeletePlan deletes a subscription plan.
func (s *AdminService) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Remove(ctx, id)
}

// TogglePlan flips a plan between active and inactive.
func (s *AdminService) TogglePlan(ctx context.Context, id string) (Plan, error) {
	var plan Plan
	if err := s.c.Do(ctx, http.MethodPatch, pathSubscriptions+"/"+id+"/toggle", nil, nil, &plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// ListProviders fetches the payment providers nested under one plan.
func (s *AdminService) ListProviders(ctx context.Context, planID string) ([]PlanProvider, error) {
	var providers []PlanProvider
	path := pathSubscriptions + "/" + planID + "/providers"
	if err := s.c.Do(ctx, http.MethodGet, path, nil, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// CreateProvider attaches a payment provider to a plan.
func (s *AdminService) CreateProvider(ctx context.Context, planID string, payload any) (PlanProvider, error) {
	var provider PlanProvider
	path := pathSubscriptions + "/" + planID + "/providers"
	if err := s.c.Do(ctx, http.MethodPost, path, payload, nil, &provider); err != nil {
		return PlanProvider{}, err
	}
	return provider, nil
}

// UpdateProvider replaces a payment provider on a plan.
func (s *AdminService) UpdateProvider(ctx context.Context, planID, providerID string, payload any) (PlanProvider, error) {
	var provider PlanProvider
	path := pathSubscriptions + "/" + planID + "/providers/" + providerID
	if err := s.c.Do(ctx, http.MethodPut, path, payload, nil, &provider); err != nil {
		return PlanProvider{}, err
	}
	return provider, nil
}

// DeleteProvider detaches a payment provider from a plan.
func (s *AdminService) DeleteProvider(ctx context.Context, planID, providerID string) error {
	path := pathSubscriptions + "/" + planID + "/providers/" + providerID
	return s.c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}
