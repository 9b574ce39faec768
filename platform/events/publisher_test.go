package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher_WhenCreated_ThenReturnsPublisherWithWriter(t *testing.T) {
	// Arrange
	brokers := []string{"localhost:9092"}
	topic := "synclog.prune"

	// Act
	publisher := NewPublisher(brokers, topic, zap.NewNop())

	// Assert
	require.NotNil(t, publisher)
	require.NotNil(t, publisher.writer)
	assert.NotNil(t, publisher.logger)
	assert.Equal(t, topic, publisher.writer.Topic)
}

func TestNewPublisher_WhenCreatedWithMultipleBrokers_ThenConfiguresCorrectly(t *testing.T) {
	// Arrange
	brokers := []string{"broker1:9092", "broker2:9092", "broker3:9092"}

	// Act
	publisher := NewPublisher(brokers, "synclog.prune", zap.NewNop())

	// Assert
	assert.Equal(t, "broker1:9092,broker2:9092,broker3:9092", publisher.writer.Addr.String())
}

func TestNewPublisher_WhenCreated_ThenHasProductionSettings(t *testing.T) {
	// Act
	publisher := NewPublisher([]string{"localhost:9092"}, "synclog.prune", zap.NewNop())

	// Assert
	assert.Equal(t, kafka.RequireAll, publisher.writer.RequiredAcks)
	assert.Equal(t, 3, publisher.writer.MaxAttempts)
	assert.Equal(t, 10*time.Second, publisher.writer.WriteTimeout)
}

func TestEncode_WhenEventGiven_ThenKeysByCategoryAndCarriesHeaders(t *testing.T) {
	// Arrange
	prunedAt := time.Date(2025, 11, 6, 10, 30, 0, 0, time.UTC)
	event := PruneEvent{
		EventID:  "evt-123",
		Category: "salesforce",
		Cutoff:   prunedAt.AddDate(0, 0, -14),
		Deleted:  42,
		PrunedAt: prunedAt,
	}

	// Act
	msg, err := encode(event)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("salesforce"), msg.Key)
	assert.Equal(t, prunedAt, msg.Time)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("evt-123"), msg.Headers[0].Value)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "evt-123", decoded["event_id"])
	assert.Equal(t, "salesforce", decoded["category"])
	assert.EqualValues(t, 42, decoded["deleted"])
	assert.Equal(t, "2025-10-23T10:30:00Z", decoded["cutoff"])
}

func TestEncode_WhenCategoryEmpty_ThenOmitsCategoryField(t *testing.T) {
	// Act
	msg, err := encode(PruneEvent{EventID: "evt-1", Deleted: 1})

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "category")
	assert.Empty(t, msg.Key)
}

func TestClose_WhenCalledMultipleTimes_ThenDoesNotPanic(t *testing.T) {
	// Arrange
	publisher := NewPublisher([]string{"localhost:9092"}, "synclog.prune", zap.NewNop())

	// Act & Assert
	assert.NotPanics(t, func() {
		_ = publisher.Close()
		_ = publisher.Close()
	})
}
