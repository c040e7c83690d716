package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	t.Run("json_handler", func(t *testing.T) {
		InitLogger("info", "json")
		assert.NotNil(t, logger)
	})

	t.Run("text_handler", func(t *testing.T) {
		InitLogger("debug", "text")
		assert.NotNil(t, logger)
	})
}

func TestFromContext_AttachesScopedAttrs(t *testing.T) {
	InitLogger("info", "json")

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithCartID(ctx, "cart-456")
	ctx = WithAdminEmail(ctx, "admin@terrano-express.com")

	l := FromContext(ctx)
	assert.NotNil(t, l)

	// A bare context falls back to the base logger.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"info", "INFO"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in).String(), "level %q", tt.in)
	}
}
