package realtime

import (
	"github.com/google/uuid"
)

type SSEEvent string

const (
	SSEEventCompletionUpdated   SSEEvent = "completion_updated"
	SSEEventNotificationCreated SSEEvent = "notification_created"
	SSEEventSectionSaved        SSEEvent = "section_saved"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

func ProjectChannel(projectID uuid.UUID) string { return "project:" + projectID.String() }

func UserChannel(userID uuid.UUID) string { return "user:" + userID.String() }
