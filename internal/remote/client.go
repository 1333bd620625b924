package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/version"
)

// Client is a remote-control connection to a notebook server.
type Client struct {
	ws     *websocket.Conn
	events chan Message
	done   chan struct{}

	writeMu sync.Mutex

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Dial connects to a server URL such as "ws://studio.local:8765/ws".
func Dial(ctx context.Context, url string) (*Client, error) {
	header := http.Header{"User-Agent": []string{version.UserAgent()}}
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	logging.LogConnection(url, "dialed")

	c := &Client{
		ws:     ws,
		events: make(chan Message, sendBuffer),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var m Message
		if err := c.ws.ReadJSON(&m); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				select {
				case <-c.done:
				default:
					c.setErr(err)
				}
			}
			return
		}
		select {
		case c.events <- m:
		case <-c.done:
			return
		}
	}
}

func (c *Client) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// Err returns the error that ended the event stream, if any.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Events returns the server frames in arrival order. The channel is closed
// when the connection ends.
func (c *Client) Events() <-chan Message {
	return c.events
}

// Send writes one command.
func (c *Client) Send(cmd Command) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(cmd); err != nil {
		return fmt.Errorf("failed to send %s command: %w", cmd.Type, err)
	}
	return nil
}

// Next waits for the next frame of the given type, skipping others.
func (c *Client) Next(ctx context.Context, msgType string) (Message, error) {
	for {
		select {
		case m, ok := <-c.events:
			if !ok {
				if err := c.Err(); err != nil {
					return Message{}, err
				}
				return Message{}, errors.New("connection closed")
			}
			if m.Type == msgType {
				return m, nil
			}
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}

// Close sends a close frame and shuts the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.writeMu.Unlock()
		err = c.ws.Close()
		logging.Debug("Client closed", zap.String("remote_addr", c.ws.RemoteAddr().String()))
	})
	return err
}
