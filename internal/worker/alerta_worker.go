package worker

// Delivers operator alerts (inventory shortfalls detected at processing time)
// through SMTP. The mailer sits behind a circuit breaker: when the relay is
// down jobs fast-fail, get retried with backoff, and land in the DLQ if the
// outage outlasts the retry budget.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertaJobPayload is the job envelope sent to QueueAlertas.
type AlertaJobPayload struct {
	Asunto string `json:"asunto"`
	Cuerpo string `json:"cuerpo"`
}

// AlertaWorker processes operator alert jobs from QueueAlertas.
type AlertaWorker struct {
	mailer  *infra.Mailer
	cb      *infra.CircuitBreaker
	rdb     *redis.Client
	toEmail string
}

func NewAlertaWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, toEmail string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, cb: cb, rdb: rdb, toEmail: toEmail}
}

// Process sends one alert email, retrying with exponential backoff before
// giving up to the DLQ.
func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.toEmail == "" {
		log.Warn().Msg("alerta_worker: no operator email configured, dropping alert")
		return
	}

	const maxAttempts = 3
	err := withRetry(ctx, maxAttempts, func(attempt int) error {
		sendErr := w.cb.Execute(func() error {
			return w.mailer.SendAlerta(w.toEmail, payload.Asunto, payload.Cuerpo)
		})
		if sendErr != nil {
			log.Warn().
				Err(sendErr).
				Int("attempt", attempt+1).
				Msg("alerta_worker: send attempt failed")
		}
		return sendErr
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueAlertas, "alerta", raw, err.Error(), maxAttempts)
		return
	}
	log.Info().Str("to", w.toEmail).Str("asunto", payload.Asunto).Msg("alerta_worker: alert delivered")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
