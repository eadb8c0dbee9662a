package pidperf

import (
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug", func(t *testing.T) {
		log := NewLogger("debug", "test-debug")
		assert.True(t, log.IsEnabledFor(logging.DEBUG))
	})

	t.Run("invalid level", func(t *testing.T) {
		log := NewLogger("chatty", "test-invalid")
		assert.True(t, log.IsEnabledFor(logging.INFO))
		assert.False(t, log.IsEnabledFor(logging.DEBUG))
	})
}
