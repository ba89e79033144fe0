package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(ctx context.Context) error {
	return s.err
}

// blockingChecker waits for its context to end.
type blockingChecker struct {
	name string
}

func (b *blockingChecker) Name() string {
	return b.name
}

func (b *blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.Empty(t, registry.checkers)
	assert.Equal(t, DefaultCheckTimeout, registry.timeout)
}

func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "postgres"}))

	err := registry.RegisterOptional(&stubChecker{name: "postgres"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "postgres")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name           string
		critical       []HealthChecker
		optional       []HealthChecker
		expectedStatus HealthStatus
	}{
		{
			name:           "no checkers is healthy",
			expectedStatus: HealthStatusHealthy,
		},
		{
			name:           "all checks pass",
			critical:       []HealthChecker{&stubChecker{name: "store"}},
			optional:       []HealthChecker{&stubChecker{name: "cache"}},
			expectedStatus: HealthStatusHealthy,
		},
		{
			name:           "optional failure degrades",
			critical:       []HealthChecker{&stubChecker{name: "store"}},
			optional:       []HealthChecker{&stubChecker{name: "cache", err: errors.New("dial tcp: refused")}},
			expectedStatus: HealthStatusDegraded,
		},
		{
			name:           "critical failure is unhealthy",
			critical:       []HealthChecker{&stubChecker{name: "store", err: errors.New("connection reset")}},
			optional:       []HealthChecker{&stubChecker{name: "cache", err: errors.New("dial tcp: refused")}},
			expectedStatus: HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.critical {
				require.NoError(t, registry.Register(c))
			}
			for _, c := range tt.optional {
				require.NoError(t, registry.RegisterOptional(c))
			}

			result := registry.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.critical)+len(tt.optional))
			assert.False(t, result.Timestamp.IsZero())
		})
	}
}

func TestCheckAll_RecordsMessages(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&stubChecker{name: "store"}))
	require.NoError(t, registry.RegisterOptional(&stubChecker{name: "cache", err: errors.New("timeout")}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Checks["store"].Status)
	assert.Empty(t, result.Checks["store"].Message)
	assert.False(t, result.Checks["store"].Optional)

	assert.Equal(t, HealthStatusUnhealthy, result.Checks["cache"].Status)
	assert.Equal(t, "timeout", result.Checks["cache"].Message)
	assert.True(t, result.Checks["cache"].Optional)
}

func TestCheckAll_AppliesDefaultTimeout(t *testing.T) {
	registry := NewHealthRegistry()
	registry.timeout = 20 * time.Millisecond
	require.NoError(t, registry.Register(&blockingChecker{name: "slow-store"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow-store"].Message, "deadline exceeded")
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&blockingChecker{name: "slow-store"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow-store"].Message, "context canceled")
}
