package database

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	times []time.Time
}

func (c *fakeClock) now() time.Time {
	t := c.times[0]
	c.times = c.times[1:]
	return t
}

func traceOnce(tracer *slowQueryTracer, sql string) {
	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 3")})
}

func TestSlowQueryTracer(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var out bytes.Buffer
	tracer := newSlowQueryTracer(zerolog.New(&out), 100*time.Millisecond)

	clock := &fakeClock{times: []time.Time{base, base.Add(20 * time.Millisecond)}}
	tracer.now = clock.now
	traceOnce(tracer, "SELECT 1")
	assert.Empty(t, out.String())

	clock = &fakeClock{times: []time.Time{base, base.Add(250 * time.Millisecond)}}
	tracer.now = clock.now
	traceOnce(tracer, "SELECT source_slug FROM revenue_streams")

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "slow query", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "SELECT source_slug FROM revenue_streams", line["sql"])
	assert.EqualValues(t, 3, line["rows_affected"])
}

func TestSlowQueryTracer_EndWithoutStart(t *testing.T) {
	var out bytes.Buffer
	tracer := newSlowQueryTracer(zerolog.New(&out), time.Nanosecond)
	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, out.String())
}

func TestCombineTracers(t *testing.T) {
	assert.Nil(t, combineTracers(nil))

	one := newSlowQueryTracer(zerolog.Nop(), time.Second)
	assert.Same(t, one, combineTracers([]pgx.QueryTracer{one}))

	multi, ok := combineTracers([]pgx.QueryTracer{one, one}).(*multiTracer)
	require.True(t, ok)
	assert.Len(t, multi.tracers, 2)
}
