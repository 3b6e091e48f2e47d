package notify

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/usecase"
)

const publishTimeout = 2 * time.Second

// Event names match what dashboard clients subscribe to.
const (
	EventTaskUpdated = "task-updated"
	EventTaskDeleted = "task-deleted"
)

type envelope struct {
	Event  string       `json:"event"`
	Task   *domain.Task `json:"task,omitempty"`
	TaskID int64        `json:"task_id,omitempty"`
}

// Publisher broadcasts task mutations over a Redis Pub/Sub channel.
// Publishing happens off the request goroutine and every failure is
// swallowed after logging: a dead channel must never fail a mutation.
type Publisher struct {
	client  *redislib.Client
	channel string
	logger  *zap.Logger
}

func NewPublisher(client *redislib.Client, channel string, logger *zap.Logger) *Publisher {
	if channel == "" {
		channel = "taskflow.tasks"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (p *Publisher) TaskChanged(task *domain.Task) {
	if task == nil {
		return
	}
	p.publish(envelope{Event: EventTaskUpdated, Task: task})
}

func (p *Publisher) TaskDeleted(id int64) {
	p.publish(envelope{Event: EventTaskDeleted, TaskID: id})
}

func (p *Publisher) publish(msg envelope) {
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Warn("notify payload marshal failed", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.logger.Warn("task notification dropped",
				zap.String("event", msg.Event),
				zap.Error(err),
			)
		}
	}()
}

var _ usecase.ChangeNotifier = (*Publisher)(nil)
