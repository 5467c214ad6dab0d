package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "smc:slots:ver:2030-05-06", versionKey(date))
	assert.Equal(t, "smc:slots:gen", generationKey())
	assert.Equal(t, "smc:slots:2030-05-06:g0:v3:s1:b0", dataKey(date, Version{Date: 3}, 1, 0))
	assert.NotEqual(t, dataKey(date, Version{Date: 3}, 1, 0), dataKey(date, Version{Date: 4}, 1, 0))
	assert.NotEqual(t, dataKey(date, Version{Date: 3}, 1, 0), dataKey(date, Version{Generation: 1, Date: 3}, 1, 0))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

	var c Noop
	require.NoError(t, c.Set(ctx, date, 1, 0, Version{}, []string{"09:00"}))

	slots, version, ok, err := c.Get(ctx, date, 1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Version{}, version)
	assert.Nil(t, slots)
	assert.NoError(t, c.Invalidate(ctx, date))
	assert.NoError(t, c.InvalidateAll(ctx))
}
