package trace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"libdb-finder/trace"
)

func TestStepSequence(t *testing.T) {
	ctx := trace.WithRun(context.Background(), "run-1")

	assert.Equal(t, "run-1", trace.RunID(ctx))
	assert.Equal(t, "0", trace.CurrentStep(ctx))

	id, step := trace.NextStep(ctx)
	assert.Equal(t, "run-1", id)
	assert.Equal(t, "1", step)

	_, step = trace.NextStep(ctx)
	assert.Equal(t, "2", step)
	assert.Equal(t, "2", trace.CurrentStep(ctx))
}

func TestWithoutRun(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, trace.RunID(ctx))
	assert.Equal(t, "0", trace.CurrentStep(ctx))

	id, step := trace.NextStep(ctx)
	assert.Empty(t, id)
	assert.Empty(t, step)
}

func TestEnsureKeepsExistingRun(t *testing.T) {
	ctx := trace.WithRun(context.Background(), "run-7")

	got, id := trace.Ensure(ctx)
	assert.Equal(t, "run-7", id)
	assert.Equal(t, ctx, got)
}

func TestEnsureStartsRun(t *testing.T) {
	ctx, id := trace.Ensure(context.Background())

	assert.Len(t, id, 36)
	assert.Equal(t, id, trace.RunID(ctx))
}

func TestWithRunGeneratesID(t *testing.T) {
	a := trace.RunID(trace.WithRun(context.Background(), ""))
	b := trace.RunID(trace.WithRun(context.Background(), ""))

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
