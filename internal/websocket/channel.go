package websocket

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ChannelKind string

const (
	// KindDepartment fans out to the faculty pool of one department.
	KindDepartment ChannelKind = "department"
	// KindSession fans out to the participants of one chat session.
	KindSession ChannelKind = "session"
)

// Channel identifies one fanout scope. The wire form is "department:CSE" or
// "session:<uuid>".
type Channel struct {
	Kind       ChannelKind
	Department string
	SessionId  uuid.UUID
}

func DepartmentChannel(code string) Channel {
	return Channel{Kind: KindDepartment, Department: code}
}

func SessionChannel(id uuid.UUID) Channel {
	return Channel{Kind: KindSession, SessionId: id}
}

func (c Channel) String() string {
	if c.Kind == KindDepartment {
		return fmt.Sprintf("department:%s", c.Department)
	}
	return fmt.Sprintf("session:%s", c.SessionId)
}

// ParseChannel parses the wire form back into a typed Channel.
func ParseChannel(raw string) (Channel, error) {
	kind, rest, found := strings.Cut(raw, ":")
	if !found || rest == "" {
		return Channel{}, fmt.Errorf("malformed channel: %q", raw)
	}

	switch ChannelKind(kind) {
	case KindDepartment:
		return Channel{Kind: KindDepartment, Department: rest}, nil
	case KindSession:
		id, err := uuid.Parse(rest)
		if err != nil {
			return Channel{}, fmt.Errorf("malformed session channel %q: %w", raw, err)
		}
		return Channel{Kind: KindSession, SessionId: id}, nil
	default:
		return Channel{}, fmt.Errorf("unknown channel kind: %q", kind)
	}
}
