package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Pool consumes the notification queue with a fixed number of goroutines.
// Each worker BRPOPs jobs and forwards them to the n8n webhook; a failed
// delivery goes to the DLQ and is never retried.
type Pool struct {
	rdb  *redis.Client
	n8n  *infra.N8NClient
	size int
}

func NewPool(rdb *redis.Client, n8n *infra.N8NClient, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{rdb: rdb, n8n: n8n, size: size}
}

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	log.Info().Int("workers", p.size).Msg("worker: iniciando pool de notificaciones")
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("worker: detenido")
			return
		default:
		}

		// Short timeout so workers notice ctx cancellation promptly.
		res, err := p.rdb.BRPop(ctx, 2*time.Second, QueueNotificaciones).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Int("worker", id).Msg("worker: error leyendo la cola")
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}
		p.process(ctx, id, res[1])
	}
}

func (p *Pool) process(ctx context.Context, id int, payload string) {
	var job NotificacionJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Error().Err(err).Int("worker", id).Msg("worker: payload invalido")
		sendToDLQ(ctx, p.rdb, QueueNotificaciones, payload, err)
		return
	}

	if err := p.n8n.Send(ctx, job.Tipo, job.Data); err != nil {
		log.Warn().Err(err).
			Int("worker", id).
			Str("tipo", job.Tipo).
			Str("pedido_id", job.PedidoID).
			Msg("worker: notificacion fallida")
		sendToDLQ(ctx, p.rdb, QueueNotificaciones, payload, err)
		return
	}

	log.Info().
		Int("worker", id).
		Str("tipo", job.Tipo).
		Str("pedido_id", job.PedidoID).
		Msg("worker: notificacion enviada")
}
