package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(bool, string, ...any) error
		wantKind Kind
	}{
		{name: "require reports precondition", fn: Require, wantKind: KindPrecondition},
		{name: "ensure reports postcondition", fn: Ensure, wantKind: KindPostcondition},
		{name: "invariant reports invariant", fn: Invariant, wantKind: KindInvariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.fn(true, "never formatted"))

			err := tt.fn(false, "value %d out of range", 42)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrViolation)

			var v *Violation
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.wantKind, v.Kind)
			assert.Equal(t, "value 42 out of range", v.Message)
		})
	}
}

func TestViolationError(t *testing.T) {
	v := &Violation{Kind: KindPrecondition, Message: "index must be non-negative"}
	assert.Equal(t, "precondition violated: index must be non-negative", v.Error())
}

func TestViolationIsDoesNotMatchOtherErrors(t *testing.T) {
	err := Require(false, "boom")
	assert.False(t, errors.Is(err, errors.New("boom")))
}

func TestSetEnabled(t *testing.T) {
	t.Cleanup(func() { SetEnabled(true) })

	assert.True(t, Enabled(), "checks start enabled")

	SetEnabled(false)
	assert.False(t, Enabled())
	assert.NoError(t, Require(false, "ignored while disabled"))
	assert.NoError(t, Ensure(false, "ignored while disabled"))
	assert.NoError(t, Invariant(false, "ignored while disabled"))

	SetEnabled(true)
	assert.True(t, Enabled())
	assert.Error(t, Require(false, "active again"))
}
