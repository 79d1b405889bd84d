package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"bureporting/src/core/ports/mocks"
)

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()
	stats := func() any { return map[string]int{"idle": 5} }

	t.Run("healthy", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("Health", ctx).Return(nil).Once()

		status := NewHealthService(discardLogger(), repo, stats).Check(ctx)

		assert.Equal(t, "ok", status.Status)
		assert.Equal(t, "healthy", status.Components["database"].Status)
		assert.Equal(t, map[string]int{"idle": 5}, status.Components["database"].Details)
	})

	t.Run("degraded", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("Health", ctx).Return(errors.New("connection pool exhausted")).Once()

		status := NewHealthService(discardLogger(), repo, nil).Check(ctx)

		assert.Equal(t, "degraded", status.Status)
		assert.Equal(t, "unhealthy", status.Components["database"].Status)
		assert.Equal(t, "connection pool exhausted", status.Components["database"].Message)
	})

	t.Run("no_dependencies", func(t *testing.T) {
		status := NewHealthService(discardLogger(), nil, nil).Check(ctx)
		assert.Equal(t, "ok", status.Status)
		assert.Empty(t, status.Components)
	})
}
