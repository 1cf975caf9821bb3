// Package board implements the status-board model shared by the
// tasks, appointments and reservations screens: grouping status-tagged
// records into columns and moving a record between columns via
// drag-and-drop.
package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Card is any record that can sit on a status board
type Card interface {
	GetID() uuid.UUID
	GetStatus() string
}

// Column is one status column with its cards in input order
type Column[T Card] struct {
	Status string `json:"status"`
	Cards  []T    `json:"cards"`
}

// Mover performs the remote status mutation for a drag and returns the
// server-echoed canonical copy of the record.
type Mover[T Card] func(id uuid.UUID, targetStatus string) (T, error)

var (
	ErrNoDragInFlight = errors.New("no drag in flight")
	ErrUnknownCard    = errors.New("card not found on board")
)

// GroupByStatus partitions cards into one column per status, in the
// given status order. Cards whose status is empty or not in the list
// fall into the first column. Every card lands in exactly one column.
func GroupByStatus[T Card](cards []T, statuses []string) []Column[T] {
	columns := make([]Column[T], len(statuses))
	index := make(map[string]int, len(statuses))
	for i, s := range statuses {
		columns[i] = Column[T]{Status: s, Cards: []T{}}
		index[s] = i
	}

	for _, card := range cards {
		i, ok := index[card.GetStatus()]
		if !ok {
			i = 0
		}
		columns[i].Cards = append(columns[i].Cards, card)
	}

	return columns
}

// Board holds a screen's local card list plus the transient drag
// state. At most one record is tracked as the in-flight drag; starting
// a new drag silently discards an unfinished one.
type Board[T Card] struct {
	statuses []string
	cards    []T
	dragged  *uuid.UUID
}

// New creates a board over the given cards and status column order
func New[T Card](cards []T, statuses []string) *Board[T] {
	local := make([]T, len(cards))
	copy(local, cards)
	return &Board[T]{statuses: statuses, cards: local}
}

// Cards returns the current local card list
func (b *Board[T]) Cards() []T {
	out := make([]T, len(b.cards))
	copy(out, b.cards)
	return out
}

// Columns returns the current board grouped into columns
func (b *Board[T]) Columns() []Column[T] {
	return GroupByStatus(b.cards, b.statuses)
}

// BeginDrag captures the dragged record id. No remote call happens
// until the drop completes.
func (b *Board[T]) BeginDrag(id uuid.UUID) error {
	if _, ok := b.find(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	b.dragged = &id
	return nil
}

// Dragging reports the in-flight dragged record id, if any
func (b *Board[T]) Dragging() (uuid.UUID, bool) {
	if b.dragged == nil {
		return uuid.Nil, false
	}
	return *b.dragged, true
}

// CompleteDrag finishes the in-flight drag onto targetStatus.
//
// Dropping onto the column the record already occupies is a no-op: the
// mover is never called. Otherwise exactly one mover call is issued
// and on success the local record is replaced with the server-echoed
// copy. On failure local state is left unchanged and the error is
// returned. The drag is cleared in every case.
func (b *Board[T]) CompleteDrag(targetStatus string, move Mover[T]) (moved bool, err error) {
	if b.dragged == nil {
		return false, ErrNoDragInFlight
	}
	id := *b.dragged
	b.dragged = nil

	pos, ok := b.find(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}

	if b.cards[pos].GetStatus() == targetStatus {
		return false, nil
	}

	updated, err := move(id, targetStatus)
	if err != nil {
		return false, err
	}

	b.cards[pos] = updated
	return true, nil
}

func (b *Board[T]) find(id uuid.UUID) (int, bool) {
	for i, card := range b.cards {
		if card.GetID() == id {
			return i, true
		}
	}
	return 0, false
}
