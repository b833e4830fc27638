package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go_camera/camera"
)

type Client struct {
	conn *websocket.Conn
	id   int

	lock   sync.Mutex // serializes writes
	closed bool
}

// Dial connects to a pose server, e.g. "ws://localhost:8080/ws", and waits
// for the id it assigns.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	var hello Hello
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read hello: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	return &Client{conn: conn, id: hello.ID}, nil
}

func (c *Client) ID() int {
	return c.id
}

func (c *Client) Publish(pose camera.Pose) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(pose); err != nil {
		return fmt.Errorf("publish pose: %w", err)
	}
	return nil
}

// Next blocks until the server broadcasts the next snapshot.
func (c *Client) Next() (Snapshot, error) {
	var snap Snapshot
	if err := c.conn.ReadJSON(&snap); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return Snapshot{}, ErrClosed
		}
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return snap, nil
}

// Recv passes snapshots to f until the connection ends. A clean close from
// either side returns nil.
func (c *Client) Recv(f func(Snapshot)) error {
	for {
		snap, err := c.Next()
		if err != nil {
			if errors.Is(err, ErrClosed) || c.isClosed() {
				return nil
			}
			return err
		}
		f(snap)
	}
}

func (c *Client) isClosed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.closed
}

func (c *Client) Close() error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return nil
	}
	c.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.lock.Unlock()
	return c.conn.Close()
}
