package board

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type testCard struct {
	ID     uuid.UUID
	Status string
}

func (c testCard) GetID() uuid.UUID  { return c.ID }
func (c testCard) GetStatus() string { return c.Status }

var testStatuses = []string{"pending", "in_progress", "completed"}

func TestGroupByStatus_PartitionsEveryCardExactlyOnce(t *testing.T) {
	cards := []testCard{
		{ID: uuid.New(), Status: "pending"},
		{ID: uuid.New(), Status: "completed"},
		{ID: uuid.New(), Status: "in_progress"},
		{ID: uuid.New(), Status: "pending"},
		{ID: uuid.New(), Status: ""},          // defaults to first column
		{ID: uuid.New(), Status: "abandoned"}, // unknown defaults too
	}

	columns := GroupByStatus(cards, testStatuses)

	if len(columns) != len(testStatuses) {
		t.Fatalf("expected %d columns, got %d", len(testStatuses), len(columns))
	}

	seen := make(map[uuid.UUID]int)
	total := 0
	for _, col := range columns {
		for _, card := range col.Cards {
			seen[card.ID]++
			total++
		}
	}

	if total != len(cards) {
		t.Fatalf("expected %d cards across columns, got %d", len(cards), total)
	}
	for _, card := range cards {
		if seen[card.ID] != 1 {
			t.Fatalf("card %s appears %d times, want exactly 1", card.ID, seen[card.ID])
		}
	}

	if len(columns[0].Cards) != 4 {
		t.Fatalf("expected 4 cards in the pending column, got %d", len(columns[0].Cards))
	}
}

func TestCompleteDrag_SameColumnIsNoOp(t *testing.T) {
	card := testCard{ID: uuid.New(), Status: "pending"}
	b := New([]testCard{card}, testStatuses)

	if err := b.BeginDrag(card.ID); err != nil {
		t.Fatalf("begin drag: %v", err)
	}

	calls := 0
	moved, err := b.CompleteDrag("pending", func(id uuid.UUID, target string) (testCard, error) {
		calls++
		return testCard{}, nil
	})
	if err != nil {
		t.Fatalf("complete drag: %v", err)
	}
	if moved {
		t.Fatal("expected no move for same-column drop")
	}
	if calls != 0 {
		t.Fatalf("expected zero mutation calls, got %d", calls)
	}
}

func TestCompleteDrag_DifferentColumnIssuesOneMutation(t *testing.T) {
	id := uuid.New()
	other := testCard{ID: uuid.New(), Status: "completed"}
	b := New([]testCard{{ID: id, Status: "pending"}, other}, testStatuses)

	if err := b.BeginDrag(id); err != nil {
		t.Fatalf("begin drag: %v", err)
	}

	calls := 0
	moved, err := b.CompleteDrag("in_progress", func(gotID uuid.UUID, target string) (testCard, error) {
		calls++
		if gotID != id {
			t.Fatalf("mover called with id %s, want %s", gotID, id)
		}
		if target != "in_progress" {
			t.Fatalf("mover called with target %q, want in_progress", target)
		}
		return testCard{ID: gotID, Status: target}, nil
	})
	if err != nil {
		t.Fatalf("complete drag: %v", err)
	}
	if !moved {
		t.Fatal("expected a move")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one mutation call, got %d", calls)
	}

	cards := b.Cards()
	if cards[0].Status != "in_progress" {
		t.Fatalf("local status = %q, want in_progress", cards[0].Status)
	}
	if cards[1] != other {
		t.Fatalf("unrelated card changed: %+v", cards[1])
	}
}

func TestCompleteDrag_FailureLeavesLocalStateUnchanged(t *testing.T) {
	id := uuid.New()
	b := New([]testCard{{ID: id, Status: "pending"}}, testStatuses)

	if err := b.BeginDrag(id); err != nil {
		t.Fatalf("begin drag: %v", err)
	}

	wantErr := errors.New("backend down")
	moved, err := b.CompleteDrag("completed", func(uuid.UUID, string) (testCard, error) {
		return testCard{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if moved {
		t.Fatal("expected no move on failure")
	}
	if got := b.Cards()[0].Status; got != "pending" {
		t.Fatalf("local status mutated on failure: %q", got)
	}
}

func TestBeginDrag_NewDragDiscardsUnfinishedOne(t *testing.T) {
	first := testCard{ID: uuid.New(), Status: "pending"}
	second := testCard{ID: uuid.New(), Status: "pending"}
	b := New([]testCard{first, second}, testStatuses)

	if err := b.BeginDrag(first.ID); err != nil {
		t.Fatalf("begin first drag: %v", err)
	}
	if err := b.BeginDrag(second.ID); err != nil {
		t.Fatalf("begin second drag: %v", err)
	}

	dragged, ok := b.Dragging()
	if !ok || dragged != second.ID {
		t.Fatalf("expected second card tracked as in-flight drag, got %v ok=%v", dragged, ok)
	}

	// The discarded drag must not resurface.
	moved, err := b.CompleteDrag("completed", func(id uuid.UUID, target string) (testCard, error) {
		if id != second.ID {
			t.Fatalf("mover called with discarded drag id %s", id)
		}
		return testCard{ID: id, Status: target}, nil
	})
	if err != nil || !moved {
		t.Fatalf("complete drag: moved=%v err=%v", moved, err)
	}
}

func TestCompleteDrag_WithoutBeginFails(t *testing.T) {
	b := New([]testCard{}, testStatuses)

	_, err := b.CompleteDrag("completed", func(uuid.UUID, string) (testCard, error) {
		t.Fatal("mover must not be called")
		return testCard{}, nil
	})
	if !errors.Is(err, ErrNoDragInFlight) {
		t.Fatalf("expected ErrNoDragInFlight, got %v", err)
	}
}

func TestScenario_DragTaskOntoInProgress(t *testing.T) {
	// Given tasks [{1, pending}, {2, completed}], dragging 1 onto
	// in_progress yields [{1, in_progress}, {2, completed}].
	id1, id2 := uuid.New(), uuid.New()
	b := New([]testCard{{ID: id1, Status: "pending"}, {ID: id2, Status: "completed"}}, testStatuses)

	if err := b.BeginDrag(id1); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	moved, err := b.CompleteDrag("in_progress", func(id uuid.UUID, target string) (testCard, error) {
		return testCard{ID: id, Status: target}, nil
	})
	if err != nil || !moved {
		t.Fatalf("complete drag: moved=%v err=%v", moved, err)
	}

	cards := b.Cards()
	if cards[0].ID != id1 || cards[0].Status != "in_progress" {
		t.Fatalf("card 1 = %+v, want in_progress", cards[0])
	}
	if cards[1].ID != id2 || cards[1].Status != "completed" {
		t.Fatalf("card 2 = %+v, want completed untouched", cards[1])
	}
}
