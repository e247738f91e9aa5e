package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
)

const (
	defaultStreamRetry     = 5 * time.Second
	defaultStreamHeartbeat = 15 * time.Second
	wsWriteWait            = 10 * time.Second
)

// StreamHandler pushes live order updates over SSE and WebSocket.
type StreamHandler struct {
	facade    StreamFacade
	retry     time.Duration
	heartbeat time.Duration
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

// NewStreamHandler constructs StreamHandler. Non-positive durations fall back
// to a 5s client retry and a 15s heartbeat. WebSocket upgrades are accepted
// from the service's own origin plus the listed origins.
func NewStreamHandler(facade StreamFacade, retry, heartbeat time.Duration, origins []string, logger *slog.Logger) *StreamHandler {
	if retry <= 0 {
		retry = defaultStreamRetry
	}
	if heartbeat <= 0 {
		heartbeat = defaultStreamHeartbeat
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamHandler{
		facade:    facade,
		retry:     retry,
		heartbeat: heartbeat,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
	}
}

// SSE handles GET /orders/:id/stream.
func (h *StreamHandler) SSE(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	ctx := c.Request.Context()
	sub, err := h.facade.Subscribe(ctx, CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error opening stream")
		return
	}
	defer h.facade.Unsubscribe(sub)

	w := c.Writer
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, "retry: %d\n\n", h.retry.Milliseconds()); err != nil {
		return
	}
	w.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			w.Flush()
		case event, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := encodeEvent(event)
			if err != nil {
				h.logger.Error("encode stream event", slog.Int64("order_id", id), slog.Any("error", err))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			w.Flush()
		}
	}
}

// WebSocket handles GET /orders/:id/ws. Each event is sent as one JSON text
// frame; inbound frames are read only to notice the peer going away.
func (h *StreamHandler) WebSocket(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	ctx := c.Request.Context()
	sub, err := h.facade.Subscribe(ctx, CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error opening stream")
		return
	}
	defer h.facade.Unsubscribe(sub)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Int64("order_id", id), slog.Any("error", err))
		return
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.heartbeat)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-gone:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case event, open := <-sub.Events():
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(wsWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(toEventResponse(event)); err != nil {
				return
			}
		}
	}
}

// originChecker allows browsers from the listed origins ("*" allows any) in
// addition to same-origin requests. Clients that send no Origin header are
// not browsers and are let through; the bearer token still applies.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[strings.ToLower(strings.TrimRight(origin, "/"))] = struct{}{}
	}
	_, anyOrigin := set["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || anyOrigin {
			return true
		}
		if _, ok := set[strings.ToLower(strings.TrimRight(origin, "/"))]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

func encodeEvent(event model.Event) ([]byte, error) {
	return json.Marshal(toEventResponse(event))
}
