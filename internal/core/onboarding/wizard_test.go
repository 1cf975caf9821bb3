package onboarding

import "testing"

func TestWizard_NextPrevStayInBounds(t *testing.T) {
	w := NewWizard(DefaultSteps)

	// Prev at the first step is disabled.
	w.Prev()
	if w.Index() != 0 {
		t.Fatalf("index = %d after Prev at first step, want 0", w.Index())
	}
	if !w.AtFirst() {
		t.Fatal("expected AtFirst at index 0")
	}

	// Walk past the end; index must clamp at the last step.
	for i := 0; i < len(DefaultSteps)+3; i++ {
		w.Next()
	}
	if w.Index() != len(DefaultSteps)-1 {
		t.Fatalf("index = %d after overshooting Next, want %d", w.Index(), len(DefaultSteps)-1)
	}
	if !w.AtLast() {
		t.Fatal("expected AtLast at final index")
	}

	// And back below zero.
	for i := 0; i < len(DefaultSteps)+3; i++ {
		w.Prev()
	}
	if w.Index() != 0 {
		t.Fatalf("index = %d after overshooting Prev, want 0", w.Index())
	}
}

func TestWizard_MissingFieldsDoesNotBlockNavigation(t *testing.T) {
	w := NewWizard([]Step{
		{Name: "profile", RequiredFields: []string{"name", "business_name"}},
		{Name: "review"},
	})

	missing := w.MissingFields(map[string]string{"name": "Maya"})
	if len(missing) != 1 || missing[0] != "business_name" {
		t.Fatalf("missing = %v, want [business_name]", missing)
	}

	// Navigation proceeds regardless of missing fields.
	w.Next()
	if w.Current().Name != "review" {
		t.Fatalf("current = %q, want review", w.Current().Name)
	}
}
