package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	AnalysisCompleted EventType = "analysis.completed"
)

const (
	sourceName   = "libdb-finder"
	eventVersion = "1.0"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// AnalysisCompletedEvent 분석 한 건이 끝났음을 알린다. 실패한 분석도 발행된다.
type AnalysisCompletedEvent struct {
	BaseEvent
	RunID        string `json:"run_id"`
	Organization string `json:"organization"`
	SourceURL    string `json:"source_url"`
	FinalURL     string `json:"final_url"`
	Mode         string `json:"mode"`
	Probed       bool   `json:"probed"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason,omitempty"`
	ChineseCount int    `json:"chinese_count"`
	OtherCount   int    `json:"other_count"`
	DurationMs   int64  `json:"duration_ms"`
}

// NewAnalysisCompletedEvent fills the BaseEvent; the event id is the run id.
func NewAnalysisCompletedEvent(runID string) AnalysisCompletedEvent {
	return AnalysisCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        runID,
			Type:      AnalysisCompleted,
			Timestamp: time.Now().UTC(),
			Source:    sourceName,
			Version:   eventVersion,
		},
		RunID: runID,
	}
}

// SerializeEvent 이벤트를 JSON으로 직렬화
func SerializeEvent(event any) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case AnalysisCompletedEvent:
		eventType = e.Type
	case *AnalysisCompletedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (any, error) {
	var event any

	switch eventType {
	case AnalysisCompleted:
		event = &AnalysisCompletedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return event, nil
}
