package events

import (
	"time"
)

// Live chat event types carried over the notification fabric. Subscribers key
// their routing off these plus the department / session_id payload fields.
const (
	TypeSessionCreated = "livechat.session_created"
	TypeSessionUpdated = "livechat.session_updated"
	TypeMessageCreated = "livechat.message_created"
)

func NewSessionCreated(sessionID, studentID, department, topic string, createdAt time.Time) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"student_id": studentID,
			"department": department,
			"topic":      topic,
			"status":     "pending",
			"created_at": createdAt.Format(time.RFC3339Nano),
		},
		OccurredAt: createdAt,
	}
}

func NewSessionUpdated(sessionID, department, status string, facultyID string) Event {
	data := map[string]interface{}{
		"session_id": sessionID,
		"department": department,
		"status":     status,
	}
	if facultyID != "" {
		data["faculty_id"] = facultyID
	}
	return BaseEvent{
		Type:       TypeSessionUpdated,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func NewMessageCreated(messageID, sessionID, senderID, senderRole, body string, createdAt time.Time) Event {
	return BaseEvent{
		Type: TypeMessageCreated,
		Data: map[string]interface{}{
			"message_id":  messageID,
			"session_id":  sessionID,
			"sender_id":   senderID,
			"sender_role": senderRole,
			"message":     body,
			"created_at":  createdAt.Format(time.RFC3339Nano),
		},
		OccurredAt: createdAt,
	}
}
