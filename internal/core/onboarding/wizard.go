// Package onboarding implements the multi-step onboarding wizard and
// the finalize saga that fans out writes to the client's initial
// resources.
package onboarding

// Step is one named wizard step and the field keys it asks for.
// Required fields are surfaced for display; they never block
// navigation.
type Step struct {
	Name           string   `json:"name"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

// DefaultSteps is the onboarding flow's step order
var DefaultSteps = []Step{
	{Name: "welcome"},
	{Name: "profile", RequiredFields: []string{"name", "business_name"}},
	{Name: "business", RequiredFields: []string{"description"}},
	{Name: "assistant"},
	{Name: "widget", RequiredFields: []string{"welcome_message"}},
	{Name: "availability"},
	{Name: "review"},
}

// Wizard walks an ordered sequence of steps. Next and Prev are pure
// clamped index moves: the index never leaves [0, len(steps)-1].
type Wizard struct {
	steps []Step
	index int
}

// NewWizard creates a wizard positioned at the first step
func NewWizard(steps []Step) *Wizard {
	return &Wizard{steps: steps}
}

// Steps returns the step sequence
func (w *Wizard) Steps() []Step {
	return w.steps
}

// Index returns the current step index
func (w *Wizard) Index() int {
	return w.index
}

// Current returns the current step
func (w *Wizard) Current() Step {
	return w.steps[w.index]
}

// Next advances one step; disabled beyond the last step
func (w *Wizard) Next() {
	if w.index < len(w.steps)-1 {
		w.index++
	}
}

// Prev goes back one step; disabled before the first step
func (w *Wizard) Prev() {
	if w.index > 0 {
		w.index--
	}
}

// AtFirst reports whether Prev is disabled
func (w *Wizard) AtFirst() bool {
	return w.index == 0
}

// AtLast reports whether Next is disabled
func (w *Wizard) AtLast() bool {
	return w.index == len(w.steps)-1
}

// MissingFields returns the current step's required field keys that
// are absent or empty in the draft. Informational only.
func (w *Wizard) MissingFields(draft map[string]string) []string {
	var missing []string
	for _, key := range w.Current().RequiredFields {
		if draft[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
