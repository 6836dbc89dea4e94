package llm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerSettings configura el circuit breaker alrededor del proveedor.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32        // requests permitidos en half-open
	Interval    time.Duration // ventana de conteo en closed
	Timeout     time.Duration // espera antes de pasar de open a half-open
	MinRequests uint32
	FailureRate float64
}

// DefaultBreakerSettings abre el circuito con 60% de fallos sobre al menos 5 requests.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:        "llm-provider",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		MinRequests: 5,
		FailureRate: 0.6,
	}
}

// BreakerClient envuelve un LLMClient para cortar rapido cuando el proveedor falla seguido.
type BreakerClient struct {
	next LLMClient
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerClient(next LLMClient, settings BreakerSettings, logger *zap.Logger) *BreakerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// La cancelacion del llamador no cuenta como fallo del proveedor.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerClient{next: next, cb: cb}
}

func (b *BreakerClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Generate(ctx, system, prompt)
	})
}

// State expone el estado actual del circuito.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
