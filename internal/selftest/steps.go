package selftest

import (
	"errors"
	"fmt"

	"github.com/hardenlabs/bulwark/pkg/check"
	"github.com/hardenlabs/bulwark/pkg/stack"
)

// Config tunes the default regression steps.
type Config struct {
	// Capacity is the bound used by the overflow step. Non-positive values
	// fall back to DefaultCapacity.
	Capacity int

	// FailAfter is the allocation budget handed to the fault-injection step.
	// Non-negative; zero makes the very first grow fail.
	FailAfter int
}

// DefaultCapacity is the bounded-stack capacity used when Config.Capacity
// is not set.
const DefaultCapacity = 1024

func (c Config) capacity() int {
	if c.Capacity <= 0 {
		return DefaultCapacity
	}
	return c.Capacity
}

// DefaultSuite builds the standard regression suite for the stack. Steps run
// in order from the cheapest smoke test to the fault-injection case; each
// step works on its own freshly created stack.
func DefaultSuite(cfg Config) *Suite {
	s := New()
	s.Add(Step{Name: "empty-pop", Run: stepEmptyPop})
	s.Add(Step{Name: "push-pop-roundtrip", Run: stepPushPopRoundtrip})
	s.Add(Step{Name: "lifo-order", Run: stepLIFOOrder})
	s.Add(Step{Name: "bounded-overflow", Run: func() error { return stepBoundedOverflow(cfg.capacity()) }})
	s.Add(Step{Name: "alloc-fault", Run: func() error { return stepAllocFault(cfg.FailAfter) }})
	s.Add(Step{Name: "contract-checks", Run: stepContractChecks})
	return s
}

// stepEmptyPop verifies that popping an empty stack reports ErrStackEmpty
// instead of crashing or returning stale data.
func stepEmptyPop() error {
	s := stack.New(0)
	v, err := s.Pop()
	if !errors.Is(err, stack.ErrStackEmpty) {
		return fmt.Errorf("pop on empty stack: want ErrStackEmpty, got value %d, err %v", v, err)
	}
	return nil
}

// stepPushPopRoundtrip verifies that a pushed value comes back unchanged.
func stepPushPopRoundtrip() error {
	s := stack.New(0)
	if err := s.Push(7); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	v, err := s.Pop()
	if err != nil {
		return fmt.Errorf("pop after push: %w", err)
	}
	if v != 7 {
		return fmt.Errorf("pop after push: want 7, got %d", v)
	}
	return nil
}

// stepLIFOOrder verifies reverse-insertion ordering over several values.
func stepLIFOOrder() error {
	values := []int{3, 1, 4, 1, 5, 9, 2, 6}

	s := stack.New(0)
	for _, v := range values {
		if err := s.Push(v); err != nil {
			return fmt.Errorf("push %d: %w", v, err)
		}
	}
	for i := len(values) - 1; i >= 0; i-- {
		v, err := s.Pop()
		if err != nil {
			return fmt.Errorf("pop %d: %w", i, err)
		}
		if v != values[i] {
			return fmt.Errorf("pop %d: want %d, got %d", i, values[i], v)
		}
	}
	if _, err := s.Pop(); !errors.Is(err, stack.ErrStackEmpty) {
		return fmt.Errorf("stack not empty after draining: %v", err)
	}
	return nil
}

// stepBoundedOverflow verifies that a bounded stack rejects pushes at
// capacity and stays intact.
func stepBoundedOverflow(capacity int) error {
	s := stack.New(capacity)
	for i := 0; i < capacity; i++ {
		if err := s.Push(i); err != nil {
			return fmt.Errorf("push %d of %d: %w", i, capacity, err)
		}
	}
	if err := s.Push(capacity); !errors.Is(err, stack.ErrStackFull) {
		return fmt.Errorf("push past capacity %d: want ErrStackFull, got %v", capacity, err)
	}
	if s.Len() != capacity {
		return fmt.Errorf("rejected push changed depth: want %d, got %d", capacity, s.Len())
	}
	return nil
}

// stepAllocFault verifies that an injected allocation failure surfaces from
// Push and leaves previously pushed values readable in order.
func stepAllocFault(failAfter int) error {
	s := stack.NewWithAllocator(0, &stack.FaultAllocator{FailAfter: failAfter})

	pushed := 0
	for i := 0; i < 1<<20; i++ {
		err := s.Push(i)
		if err == nil {
			pushed++
			continue
		}
		if !errors.Is(err, stack.ErrAllocFailed) {
			return fmt.Errorf("push under fault: want ErrAllocFailed, got %v", err)
		}
		break
	}
	if s.Len() != pushed {
		return fmt.Errorf("failed push changed depth: want %d, got %d", pushed, s.Len())
	}
	for i := pushed - 1; i >= 0; i-- {
		v, err := s.Pop()
		if err != nil {
			return fmt.Errorf("pop %d after fault: %w", i, err)
		}
		if v != i {
			return fmt.Errorf("pop %d after fault: want %d, got %d", i, i, v)
		}
	}
	return nil
}

// stepContractChecks verifies that contract checking is live: a failed
// precondition must produce a Violation matching check.ErrViolation.
func stepContractChecks() error {
	if !check.Enabled() {
		return errors.New("contract checks are disabled")
	}
	err := check.Require(false, "probe")
	if !errors.Is(err, check.ErrViolation) {
		return fmt.Errorf("failed precondition: want ErrViolation, got %v", err)
	}
	if err := check.Ensure(true, "probe"); err != nil {
		return fmt.Errorf("passing postcondition returned %v", err)
	}
	return nil
}
