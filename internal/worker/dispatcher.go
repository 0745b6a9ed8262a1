package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// QueueNotificaciones holds pending order lifecycle notifications.
const QueueNotificaciones = "jobs:notificaciones"

// NotificacionJob is the payload pushed onto the notification queue when an
// order transitions to a state that must be announced.
type NotificacionJob struct {
	Tipo     string      `json:"tipo"`
	PedidoID string      `json:"pedido_id"`
	Data     interface{} `json:"data"`
}

// Dispatcher enqueues background jobs onto Redis lists.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueNotificacion pushes a notification job. The push is best-effort from
// the caller's point of view: a failed enqueue is an error the caller logs,
// never one that rolls back the order update.
func (d *Dispatcher) EnqueueNotificacion(ctx context.Context, job NotificacionJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("dispatcher: marshal job: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueNotificaciones, payload).Err(); err != nil {
		return fmt.Errorf("dispatcher: lpush %s: %w", QueueNotificaciones, err)
	}
	return nil
}
