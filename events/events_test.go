package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/events"
)

func TestAnalysisCompletedEventRoundTrip(t *testing.T) {
	evt := events.NewAnalysisCompletedEvent("run-1")
	evt.Organization = "清华大学"
	evt.Outcome = "ok"
	evt.ChineseCount = 3

	data, typ, err := events.SerializeEvent(evt)
	require.NoError(t, err)
	assert.Equal(t, events.AnalysisCompleted, typ)

	decoded, err := events.DeserializeEvent(typ, data)
	require.NoError(t, err)
	got, ok := decoded.(*events.AnalysisCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "清华大学", got.Organization)
	assert.Equal(t, 3, got.ChineseCount)
	assert.Equal(t, "libdb-finder", got.Source)
}

func TestUnknownEventType(t *testing.T) {
	_, _, err := events.SerializeEvent(struct{}{})
	assert.Error(t, err)

	_, err = events.DeserializeEvent("post.created", []byte(`{}`))
	assert.Error(t, err)
}
