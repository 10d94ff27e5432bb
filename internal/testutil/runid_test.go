package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/axis/internal/program"
)

var _ program.RunIDGenerator = (*FixedRunIDGenerator)(nil)

func TestFixedRunIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedRunIDGenerator("test-run-123")

	// Multiple calls return same ID
	assert.Equal(t, "test-run-123", gen.Generate())
	assert.Equal(t, "test-run-123", gen.Generate())
	assert.Equal(t, "test-run-123", gen.Generate())
}

func TestFixedRunIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedRunIDGenerator("")

	// Empty ID uses default
	assert.Equal(t, DefaultRunID, gen.Generate())
}

func TestFixedRunIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewFixedRunIDGenerator("thread-safe-id")

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				assert.Equal(t, "thread-safe-id", gen.Generate())
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestDiscardLogger(t *testing.T) {
	l := DiscardLogger()
	l.Info("dropped", "key", "value")
	assert.NotNil(t, l)
}
