package chat

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestBeginSend_RejectsSecondSendWhileInFlight(t *testing.T) {
	s := NewStore()

	if err := s.BeginSend("sess"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := s.BeginSend("sess"); !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}

	// Other sessions are unaffected.
	if err := s.BeginSend("other"); err != nil {
		t.Fatalf("other session send: %v", err)
	}

	s.EndSend("sess")
	if err := s.BeginSend("sess"); err != nil {
		t.Fatalf("send after EndSend: %v", err)
	}
}

func TestLastGenerated_ClearedAfterSave(t *testing.T) {
	s := NewStore()

	if _, ok := s.LastGenerated("sess"); ok {
		t.Fatal("expected no pending content in a fresh session")
	}

	s.SetLastGenerated("sess", "generated copy")
	content, ok := s.LastGenerated("sess")
	if !ok || content != "generated copy" {
		t.Fatalf("pending content = %q ok=%v", content, ok)
	}

	s.ClearLastGenerated("sess")
	if _, ok := s.LastGenerated("sess"); ok {
		t.Fatal("pending content survived clear")
	}
}

func TestThreadID_ReplacedByBackendThread(t *testing.T) {
	s := NewStore()

	if s.ThreadID("sess") != nil {
		t.Fatal("expected no thread in a fresh session")
	}

	first := uuid.New()
	s.SetThreadID("sess", first)
	second := uuid.New()
	s.SetThreadID("sess", second)

	got := s.ThreadID("sess")
	if got == nil || *got != second {
		t.Fatalf("thread = %v, want %s", got, second)
	}
}

func TestClear_DropsAllSessionState(t *testing.T) {
	s := NewStore()
	s.Append("sess", Entry{Sender: "user", Text: "hi"})
	s.SetLastGenerated("sess", "content")
	s.SetThreadID("sess", uuid.New())

	s.Clear("sess")

	if len(s.History("sess")) != 0 {
		t.Fatal("history survived clear")
	}
	if _, ok := s.LastGenerated("sess"); ok {
		t.Fatal("pending content survived clear")
	}
	if s.ThreadID("sess") != nil {
		t.Fatal("thread survived clear")
	}
}
