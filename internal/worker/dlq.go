package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// dlqEntry wraps a failed job with the failure reason and timestamp before it
// lands on the dead letter queue.
type dlqEntry struct {
	Queue    string    `json:"queue"`
	Payload  string    `json:"payload"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// sendToDLQ parks a job that could not be processed. Jobs are never retried
// automatically; the DLQ exists for inspection and manual replay.
func sendToDLQ(ctx context.Context, rdb *redis.Client, queue, payload string, jobErr error) {
	entry := dlqEntry{
		Queue:    queue,
		Payload:  payload,
		Error:    jobErr.Error(),
		FailedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar la entrada")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, raw).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo encolar la entrada")
	}
}
