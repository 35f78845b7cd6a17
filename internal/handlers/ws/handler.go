package ws

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/voting"
	"github.com/KirkDiggler/grubvote/internal/telemetry"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBufferSize = 64
	requestTimeout = 45 * time.Second
)

// Subscriber is the part of the broadcast hub the transport needs
type Subscriber interface {
	Subscribe(input *broadcast.SubscribeInput) *broadcast.Subscription
	Unsubscribe(sub *broadcast.Subscription)
}

// Config holds the configuration for the websocket handler
type Config struct {
	Service voting.Service
	Hub     Subscriber

	// AllowedOrigins limits browser origins. Empty or "*" allows any.
	AllowedOrigins []string

	Logger zerolog.Logger
}

// Handler upgrades HTTP requests to websocket connections and serves the
// request/ack protocol on them
type Handler struct {
	service  voting.Service
	hub      Subscriber
	upgrader websocket.Upgrader
	metrics  *telemetry.Metrics
	logger   zerolog.Logger
}

// New creates a websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Service == nil {
		return nil, errors.New("voting service cannot be nil")
	}

	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}

	h := &Handler{
		service: cfg.Service,
		hub:     cfg.Hub,
		metrics: telemetry.GetMetrics(),
		logger:  cfg.Logger.With().Str("component", "ws").Logger(),
	}

	origins := cfg.AllowedOrigins
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(origins, r.Header.Get("Origin"))
		},
	}

	return h, nil
}

// ServeHTTP upgrades the request and blocks until the connection closes
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error
		h.logger.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	c := newConn(h, ws, r.RemoteAddr)

	ctx := r.Context()
	h.metrics.ActiveConnections.Add(ctx, 1)
	defer h.metrics.ActiveConnections.Add(ctx, -1)

	c.logger.Debug().Msg("connection opened")
	c.serve(ctx)
	c.logger.Debug().Msg("connection closed")
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 || origin == "" {
		return true
	}
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}
