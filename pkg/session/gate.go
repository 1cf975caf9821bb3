package session

import "github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"

// RouteState is where the router must land for a given auth/billing
// situation.
type RouteState string

const (
	RouteLogin         RouteState = "login"
	RoutePlanSelection RouteState = "plan_selection"
	RouteOnboarding    RouteState = "onboarding"
	RouteApp           RouteState = "app"
)

// RouteFor applies the gating rule:
// no identity → login; no client or no active subscription → plan
// selection; subscription active but onboarding incomplete →
// onboarding; else the main app.
func RouteFor(identity *Identity, client *models.Client, sub *models.Subscription) RouteState {
	if identity == nil {
		return RouteLogin
	}
	if client == nil || sub == nil || !sub.IsActive() {
		return RoutePlanSelection
	}
	if !client.OnboardingCompleted {
		return RouteOnboarding
	}
	return RouteApp
}
