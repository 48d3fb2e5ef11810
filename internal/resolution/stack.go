package resolution

import (
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// DefaultMaxDepth bounds reaction chains. The action root occupies depth 1,
// so the ceiling admits maxDepth-1 nested reaction levels beneath it. A
// reaction that would push past the ceiling is aborted by itself; the rest
// of the resolution proceeds.
const DefaultMaxDepth = 5

// Item is one pending resolution on the stack: an action root or an effect
// about to apply. Reactions attach to the item carrying their trigger event;
// cancelling the item skips its application without unwinding anything
// already resolved beneath it.
type Item struct {
	ID    string
	Depth int
	Event *events.RuleEvent

	cancelled bool
}

// Cancel marks the item so its application is skipped at pop. Only
// cancellable events can be cancelled.
func (i *Item) Cancel() error {
	if !i.Event.Cancellable {
		return engerr.InvalidArgumentf("event %s is not cancellable", i.Event.Type)
	}
	i.cancelled = true
	return nil
}

// Cancelled reports whether the item was cancelled
func (i *Item) Cancelled() bool {
	return i.cancelled
}

// Stack is the LIFO of pending resolutions. Items resolve strictly in
// reverse push order, and depth is bounded by a ceiling fixed at creation.
type Stack struct {
	items    []*Item
	maxDepth int
	uuidGen  uuid.Generator
}

// NewStack creates an empty stack. A non-positive maxDepth selects
// DefaultMaxDepth.
func NewStack(maxDepth int, uuidGen uuid.Generator) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Stack{
		maxDepth: maxDepth,
		uuidGen:  uuidGen,
	}
}

// Push adds a pending resolution beneath the given parent. A nil parent
// starts a new root chain at depth 1. Pushing past the depth ceiling fails
// with a depth exceeded error and leaves the stack untouched.
func (s *Stack) Push(parent *Item, event *events.RuleEvent) (*Item, error) {
	depth := 1
	if parent != nil {
		depth = parent.Depth + 1
	}
	if depth > s.maxDepth {
		log.Printf("[STACK] depth ceiling %d hit by %s", s.maxDepth, event.Type)
		return nil, engerr.DepthExceededf("resolution depth %d exceeds ceiling %d", depth, s.maxDepth)
	}

	item := &Item{
		ID:    s.uuidGen.New(),
		Depth: depth,
		Event: event,
	}
	s.items = append(s.items, item)
	return item, nil
}

// Pop removes and returns the top item. Resolution order is strictly LIFO;
// popping an empty stack is an engine invariant violation.
func (s *Stack) Pop() (*Item, error) {
	if len(s.items) == 0 {
		return nil, engerr.Internal("pop on empty resolution stack")
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, nil
}

// Peek returns the top item without removing it, or nil when empty
func (s *Stack) Peek() *Item {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Size returns the number of pending items
func (s *Stack) Size() int {
	return len(s.items)
}

// MaxDepth returns the configured depth ceiling
func (s *Stack) MaxDepth() int {
	return s.maxDepth
}
