// Package embedded hosts the backend's rich remote surface inside the
// terminal. The backend streams display frames over a websocket and the
// client forwards key input back; when the stream cannot be established or
// dies unexpectedly, the mode selector downgrades to the native browser.
package embedded

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// uiStreamPath is the backend endpoint serving the embedded UI stream.
	uiStreamPath = "/ws/ui"

	handshakeTimeout = 10 * time.Second

	frameBuffer = 100
	sendBuffer  = 10
)

// Frame is one display payload pushed by the backend.
type Frame struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// inputEvent is one key press forwarded to the backend.
type inputEvent struct {
	Key string `json:"key"`
}

// DeriveStreamURL maps the backend's HTTP base URL to its UI stream URL.
func DeriveStreamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server URL scheme %q", u.Scheme)
	}
	u.Path = uiStreamPath
	u.RawQuery = ""
	return u.String(), nil
}

// Runtime owns the websocket connection and its read/write pumps.
type Runtime struct {
	conn   *websocket.Conn
	frames chan Frame
	errs   chan error
	send   chan inputEvent

	group  *errgroup.Group
	cancel context.CancelFunc
}

// Dial connects to the backend's UI stream and starts the pumps. A failed
// handshake is returned to the caller; it is the embed-failure signal.
func Dial(ctx context.Context, baseURL string) (*Runtime, error) {
	streamURL, err := DeriveStreamURL(baseURL)
	if err != nil {
		return nil, err
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, streamURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	pumpCtx, cancel := context.WithCancel(ctx)
	group, pumpCtx := errgroup.WithContext(pumpCtx)

	r := &Runtime{
		conn:   conn,
		frames: make(chan Frame, frameBuffer),
		errs:   make(chan error, 1),
		send:   make(chan inputEvent, sendBuffer),
		group:  group,
		cancel: cancel,
	}

	group.Go(func() error { return r.readPump() })
	group.Go(func() error { return r.writePump(pumpCtx) })

	go func() {
		if err := group.Wait(); err != nil {
			select {
			case r.errs <- err:
			default:
			}
		}
	}()

	return r, nil
}

// Frames yields display frames as the backend pushes them.
func (r *Runtime) Frames() <-chan Frame {
	return r.frames
}

// Errors yields at most one fatal stream error.
func (r *Runtime) Errors() <-chan error {
	return r.errs
}

// SendKey forwards a key press to the backend. Presses beyond the send
// buffer are dropped rather than blocking the UI loop.
func (r *Runtime) SendKey(key string) {
	select {
	case r.send <- inputEvent{Key: key}:
	default:
	}
}

func (r *Runtime) readPump() error {
	defer close(r.frames)
	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("stream closed unexpectedly: %w", err)
			}
			return nil
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			// Plain text frames are allowed; wrap them.
			frame = Frame{Kind: "frame", Body: string(data)}
		}

		select {
		case r.frames <- frame:
		default:
			// Display is behind; dropping old frames is preferable to
			// stalling the connection.
		}
	}
}

func (r *Runtime) writePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-r.send:
			data, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("failed to encode input event: %w", err)
			}
			if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("failed to send input event: %w", err)
			}
		}
	}
}

// Close shuts the stream down gracefully and waits for the pumps.
func (r *Runtime) Close() error {
	_ = r.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	r.cancel()
	err := r.conn.Close()
	_ = r.group.Wait()
	return err
}
