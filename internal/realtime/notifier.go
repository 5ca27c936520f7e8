package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NoticeChannel is the redis channel carrying the notices of one user.
func NoticeChannel(userID uuid.UUID) string {
	return "notices:" + userID.String()
}

// Notice is a transient message shown once by the client.
type Notice struct {
	Type      string    `json:"type"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier pushes notices to the local sockets of a user and publishes them on
// redis for other instances. RDB may be nil.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, kind, message string) {
	notice := Notice{
		Type:      "notice",
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		log.Printf("[Notifier] marshal: %v", err)
		return
	}

	if n.Hub != nil {
		n.Hub.sendRaw(userID, payload)
	}
	if n.RDB != nil {
		if err := n.RDB.Publish(ctx, NoticeChannel(userID), payload).Err(); err != nil {
			log.Printf("[Notifier] publish to %s: %v", NoticeChannel(userID), err)
		}
	}
}
