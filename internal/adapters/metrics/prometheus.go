package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// CommandUnknown is the command label for anything that is not a registered command, keeping the
// label set bounded.
const CommandUnknown = "unknown"

// CommandButton is the command label for inline button taps.
const CommandButton = "button"

const (
	OutcomeHandled      = "handled"
	OutcomeFailed       = "failed"
	OutcomeUnknown      = "unknown"
	OutcomeUnauthorized = "unauthorized"
)

type Prometheus struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
}

// NewPrometheus registers the bot's collectors on a dedicated registry. chats reports the number of
// chats with order state.
func NewPrometheus(chats func() int) *Prometheus {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodbot",
		Name:      "commands_total",
		Help:      "Chat commands received, by command and outcome.",
	}, []string{"command", "outcome"})

	tracked := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "foodbot",
		Name:      "chats",
		Help:      "Chats with order state held in memory.",
	}, func() float64 {
		return float64(chats())
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(commands, tracked)

	return &Prometheus{registry: registry, commands: commands}
}

func (p *Prometheus) CommandHandled(command, outcome string) {
	p.commands.WithLabelValues(command, outcome).Inc()
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

const shutdownTimeout = 5 * time.Second

// Serve exposes /metrics on addr until ctx is done.
func (p *Prometheus) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("failed to shut down metrics server")
		}
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
