package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracer(t *testing.T) {
	tracer := NewTracer("something failed")

	assert.Equal(t, "something failed", tracer.Error())
	assert.Nil(t, tracer.Unwrap())
	assert.Nil(t, tracer.StackTrace())
}

func TestTracerFromError(t *testing.T) {
	t.Run("plain error gains a stack", func(t *testing.T) {
		sentinel := stderrors.New("invalid argument")
		wrapped := fmt.Errorf("%w: price must be positive", sentinel)

		tracer := TracerFromError(wrapped)

		assert.Equal(t, wrapped.Error(), tracer.Error())
		assert.NotEmpty(t, tracer.StackTrace())
		// sentinel matching survives the wrap
		assert.ErrorIs(t, tracer, sentinel)
	})

	t.Run("existing stack is preserved", func(t *testing.T) {
		source := pkgerrors.New("boom")

		tracer := TracerFromError(source)

		require.NotNil(t, tracer.Unwrap())
		assert.Equal(t, source.(StackTracer).StackTrace(), tracer.StackTrace())
	})
}

func TestErrorTracer_Wrap(t *testing.T) {
	cause := stderrors.New("cause")
	tracer := NewTracer("operation failed").Wrap(cause)

	assert.Equal(t, "operation failed", tracer.Error())
	assert.ErrorIs(t, tracer, cause)
	assert.NotEmpty(t, tracer.StackTrace())
}
