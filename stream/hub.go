// Package stream broadcasts rendered frames to websocket clients.
//
// Every frame is encoded once as PNG and sent to each connected client as a
// binary message. A client that joins mid-animation first receives the most
// recent frame. Slow clients miss frames rather than stall the animation.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/gogpu/julia"
)

// ErrClosed is returned by WriteFrame after Close.
var ErrClosed = errors.New("stream: hub closed")

// Defaults for Options.
const (
	DefaultBuffer       = 4
	DefaultWriteTimeout = 5 * time.Second
)

// Options configures a Hub.
type Options struct {
	// Buffer is the number of frames queued per client before frames are
	// dropped for it. Zero means DefaultBuffer.
	Buffer int

	// WriteTimeout bounds a single websocket write. Zero means
	// DefaultWriteTimeout.
	WriteTimeout time.Duration

	// OriginPatterns lists the allowed cross-origin hosts, as in
	// websocket.AcceptOptions.
	OriginPatterns []string
}

type client struct {
	send chan []byte
}

// Hub fans frames out to websocket clients. It implements julia.FrameSink
// and http.Handler.
type Hub struct {
	opts Options

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
	done    chan struct{}
}

// NewHub creates an empty hub.
func NewHub(opts Options) *Hub {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	return &Hub{
		opts:    opts,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WriteFrame implements julia.FrameSink. It never blocks on clients.
func (h *Hub) WriteFrame(_ context.Context, f julia.Frame, r *julia.Raster) error {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return fmt.Errorf("stream: encode frame %d: %w", f.Index, err)
	}
	return h.broadcast(f.Index, buf.Bytes())
}

func (h *Hub) broadcast(index int, msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.last = msg
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			dropped++
		}
	}

	julia.Logger().Debug("stream: frame broadcast",
		slog.Int("index", index),
		slog.Int("bytes", len(msg)),
		slog.Int("clients", len(h.clients)),
		slog.Int("dropped", dropped))
	return nil
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// the client disconnects or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		julia.Logger().Warn("stream: accept", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	c := &client{send: make(chan []byte, h.opts.Buffer)}
	if !h.add(c) {
		_ = conn.Close(websocket.StatusGoingAway, "hub closed")
		return
	}
	defer h.remove(c)

	// Clients only receive; CloseRead handles control frames and reports
	// the disconnect through ctx.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case msg := <-c.send:
			if err := h.write(ctx, conn, msg); err != nil {
				julia.Logger().Debug("stream: client write", slog.String("error", err.Error()))
				return
			}
		case <-ctx.Done():
			return
		case <-h.done:
			_ = conn.Close(websocket.StatusGoingAway, "hub closed")
			return
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.opts.WriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, msg)
}

// add registers c and queues the latest frame for it.
func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	julia.Logger().Debug("stream: client connected", slog.Int("clients", len(h.clients)))
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	julia.Logger().Debug("stream: client disconnected", slog.Int("clients", len(h.clients)))
}

// Close disconnects every client. Further frames fail with ErrClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
}
