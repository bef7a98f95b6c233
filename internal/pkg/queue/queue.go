package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrEmpty is returned by Pop when the wait times out with no message.
var ErrEmpty = errors.New("queue: no message available")

// NotificationMessage is a push job waiting for delivery.
type NotificationMessage struct {
	UserID int64    `json:"user_id"`
	Tokens []string `json:"tokens"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
}

// Queue is a redis-list backed FIFO. Producers LPUSH, consumers BRPOP,
// so messages come out in the order they went in.
type Queue struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Queue {
	return &Queue{client: client, key: key}
}

func (q *Queue) Push(ctx context.Context, msg *NotificationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

// Pop blocks up to timeout waiting for the next message. A zero timeout
// blocks until a message arrives or ctx is cancelled.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*NotificationMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEmpty
		}
		return nil, err
	}
	// BRPOP returns [key, value].
	if len(result) != 2 {
		return nil, ErrEmpty
	}

	var msg NotificationMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
