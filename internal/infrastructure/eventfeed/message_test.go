package eventfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFeedEvent_ShouldSetTopicAndType_AndTimestampItNow(t *testing.T) {
	event := NewFeedEvent(TopicStreaming, EventCellLoaded)

	assert.Equal(t, TopicStreaming, event.Topic)
	assert.Equal(t, EventCellLoaded, event.Type)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewSuccessResponse_ShouldSetSuccessTrue(t *testing.T) {
	resp := NewSuccessResponse(CmdSubscribe, "subscribed to streaming")

	assert.True(t, resp.Success)
	assert.Equal(t, "subscribed to streaming", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestNewErrorResponse_ShouldSetSuccessFalse(t *testing.T) {
	resp := NewErrorResponse(CmdSubscribe, "topic required")

	assert.False(t, resp.Success)
	assert.Equal(t, "topic required", resp.Error)
	assert.Empty(t, resp.Message)
}
