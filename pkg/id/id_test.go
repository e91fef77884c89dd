package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorIsMonotonic(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	prev := g.New()
	for i := 0; i < 1000; i++ {
		next := g.New()
		assert.Len(t, next, 26)
		require.Less(t, prev, next)
		prev = next
	}
}

func TestPrefixed(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	got := g.Prefixed("RUN")
	assert.True(t, strings.HasPrefix(got, "run_"), got)

	ts, err := Time(got)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(ts), ts)

	_, err = Time("run_not-a-ulid")
	assert.Error(t, err)
}

func TestPackageLevelNew(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(Prefixed("trade"), "trade_"))
}
