package stack

import (
	"errors"
	"fmt"

	"github.com/hardenlabs/bulwark/pkg/check"
)

// Stack operation errors.
var (
	ErrStackEmpty = errors.New("stack is empty")
	ErrStackFull  = errors.New("stack is full")
)

// Stack is a last-in-first-out sequence of integers. A capacity of 0 means
// unbounded; a positive capacity makes Push return ErrStackFull at the limit.
// Stack is not safe for concurrent use; callers synchronize.
type Stack struct {
	values   []int
	capacity int
	alloc    Allocator
}

// New creates an empty stack. A capacity of 0 (or any non-positive value)
// means unbounded.
func New(capacity int) *Stack {
	return NewWithAllocator(capacity, heapAllocator{})
}

// NewWithAllocator creates an empty stack that grows its backing storage
// through alloc. A nil alloc falls back to the default heap allocator.
func NewWithAllocator(capacity int, alloc Allocator) *Stack {
	if capacity < 0 {
		capacity = 0
	}
	if alloc == nil {
		alloc = heapAllocator{}
	}
	return &Stack{capacity: capacity, alloc: alloc}
}

// Push inserts v as the new top element.
// Returns ErrStackFull when a bounded stack is at capacity, or a wrapped
// ErrAllocFailed when the allocator refuses to grow the backing storage.
// The stack is unchanged on any error.
func (s *Stack) Push(v int) error {
	if err := check.Invariant(s.depthOK(), "depth %d outside [0, %d]", len(s.values), s.capacity); err != nil {
		return err
	}
	if s.capacity > 0 && len(s.values) >= s.capacity {
		return ErrStackFull
	}
	if len(s.values) == cap(s.values) {
		buf, err := s.alloc.Grow(s.values, len(s.values)+1)
		if err != nil {
			return fmt.Errorf("grow stack: %w", err)
		}
		s.values = buf
	}
	s.values = append(s.values, v)
	return check.Ensure(s.depthOK(), "depth %d outside [0, %d] after push", len(s.values), s.capacity)
}

// Pop removes and returns the top element.
// Returns ErrStackEmpty (and a zero value) when the stack has no elements;
// it never panics and never returns stale storage contents.
func (s *Stack) Pop() (int, error) {
	if err := check.Invariant(s.depthOK(), "depth %d outside [0, %d]", len(s.values), s.capacity); err != nil {
		return 0, err
	}
	if len(s.values) == 0 {
		return 0, ErrStackEmpty
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Peek returns the top element without removing it.
// Returns ErrStackEmpty when the stack has no elements.
func (s *Stack) Peek() (int, error) {
	if len(s.values) == 0 {
		return 0, ErrStackEmpty
	}
	return s.values[len(s.values)-1], nil
}

// Len returns the number of elements currently on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Cap returns the configured capacity limit; 0 means unbounded.
func (s *Stack) Cap() int {
	return s.capacity
}

// Reset empties the stack. The backing storage is released so a later Push
// goes through the allocator again.
func (s *Stack) Reset() {
	s.values = nil
}

// depthOK reports whether the current depth respects the capacity bound.
func (s *Stack) depthOK() bool {
	return len(s.values) >= 0 && (s.capacity == 0 || len(s.values) <= s.capacity)
}
