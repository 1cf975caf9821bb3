package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/chat"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
)

func TestToggleSidebar_ThreeStateCycle(t *testing.T) {
	s := NewState(nil)

	want := []string{models.SidebarExpanded, models.SidebarHidden, models.SidebarNormal, models.SidebarExpanded}
	for i, mode := range want {
		if got := s.ToggleSidebar(); got != mode {
			t.Fatalf("toggle %d = %q, want %q", i, got, mode)
		}
	}
}

func TestSignOut_ClearsClientIdentityAndChatHistory(t *testing.T) {
	store := chat.NewStore()
	s := NewState(store)

	identity := Identity{UserID: uuid.New(), SessionToken: "sess-1"}
	client := &models.Client{ID: uuid.New(), Name: "Maya"}
	s.SignIn(identity, client)

	store.Append("sess-1", chat.Entry{Sender: models.SenderUser, Text: "hello"})
	if len(store.History("sess-1")) != 1 {
		t.Fatal("expected one chat entry before sign-out")
	}

	feedCancelled := false
	s.AttachFeed(func() { feedCancelled = true })

	s.SignOut()

	if s.Identity() != nil {
		t.Fatal("identity not cleared on sign-out")
	}
	if s.Client() != nil {
		t.Fatal("client not cleared on sign-out")
	}
	if !feedCancelled {
		t.Fatal("notification feed not torn down on sign-out")
	}
	if len(store.History("sess-1")) != 0 {
		t.Fatal("chat history not cleared on sign-out")
	}
}

func TestSetClient_UnsubscribesPreviousFeed(t *testing.T) {
	s := NewState(nil)

	cancelled := false
	s.AttachFeed(func() { cancelled = true })

	s.SetClient(&models.Client{ID: uuid.New()})
	if !cancelled {
		t.Fatal("previous feed subscription survived client change")
	}
}

func TestSubscribe_NotifiesOnChange(t *testing.T) {
	s := NewState(nil)

	var got []Snapshot
	cancel := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})
	defer cancel()

	s.SetTheme(models.ThemeDark)
	if len(got) != 1 || got[0].Theme != models.ThemeDark {
		t.Fatalf("snapshots = %+v, want one dark-theme snapshot", got)
	}

	cancel()
	s.SetTheme(models.ThemeLight)
	if len(got) != 1 {
		t.Fatal("listener notified after cancel")
	}
}

func TestRouteFor_GatingRule(t *testing.T) {
	identity := &Identity{UserID: uuid.New()}
	onboarded := &models.Client{OnboardingCompleted: true}
	fresh := &models.Client{}
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	active := &models.Subscription{Status: models.SubscriptionActive, CurrentPeriodEnd: &future}
	expired := &models.Subscription{Status: models.SubscriptionActive, CurrentPeriodEnd: &past}
	inactive := &models.Subscription{Status: models.SubscriptionInactive}

	tests := []struct {
		name     string
		identity *Identity
		client   *models.Client
		sub      *models.Subscription
		want     RouteState
	}{
		{"no session", nil, nil, nil, RouteLogin},
		{"no client yet", identity, nil, nil, RoutePlanSelection},
		{"no subscription", identity, fresh, nil, RoutePlanSelection},
		{"inactive subscription", identity, fresh, inactive, RoutePlanSelection},
		{"expired subscription", identity, onboarded, expired, RoutePlanSelection},
		{"active but onboarding incomplete", identity, fresh, active, RouteOnboarding},
		{"fully set up", identity, onboarded, active, RouteApp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteFor(tt.identity, tt.client, tt.sub); got != tt.want {
				t.Fatalf("RouteFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
