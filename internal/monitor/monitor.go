// Package monitor streams agent tick events to websocket clients.
package monitor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/behavior/internal/core/agent"
	"github.com/zeusync/behavior/internal/core/events/bus"
	"github.com/zeusync/behavior/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const writeTimeout = 2 * time.Second

// Message is the JSON frame sent to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans bus events out to every connected websocket client. A client
// that fails a write is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
	logger  log.Log
}

func NewHub(logger log.Log) *Hub {
	if logger == nil {
		logger = log.Nop()
	}
	return &Hub{clients: make(map[*websocket.Conn]*sync.Mutex), logger: logger}
}

// Attach subscribes the hub to tick and reset events on eb.
func (h *Hub) Attach(eb bus.EventBus) ([]bus.Subscription, error) {
	var subs []bus.Subscription
	for _, typ := range []string{agent.EventTick, agent.EventReset} {
		sub, err := eb.Subscribe(typ, func(e bus.Event) error {
			h.Broadcast(Message{Type: e.Type(), Data: e.Data()})
			return nil
		})
		if err != nil {
			for _, s := range subs {
				_ = s.Cancel()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes msg to every client.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, wmu := range h.clients {
		targets[c] = wmu
	}
	h.mu.Unlock()

	for c, wmu := range targets {
		wmu.Lock()
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := c.WriteJSON(msg)
		wmu.Unlock()
		if err != nil {
			h.logger.Debug("dropping monitor client", log.String("remote", c.RemoteAddr().String()), log.Error(err))
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.Close()
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Incoming frames are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
	h.logger.Info("monitor client connected", log.String("remote", conn.RemoteAddr().String()))

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.clients = make(map[*websocket.Conn]*sync.Mutex)
	h.mu.Unlock()
	for _, c := range conns {
		_ = c.Close()
	}
}

// Serve exposes the hub on addr at /ws until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("monitor listening", log.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
