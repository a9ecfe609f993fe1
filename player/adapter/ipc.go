package adapter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

var errIPCClosed = errors.New("ipc connection closed")

const ipcRequestTimeout = 2 * time.Second

// ipcMessage is the union of everything mpv writes on the IPC socket:
// command responses (request_id set) and asynchronous events.
type ipcMessage struct {
	Event     string          `json:"event,omitempty"`
	Name      string          `json:"name,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	FileError string          `json:"file_error,omitempty"`
	Error     string          `json:"error,omitempty"`
	RequestID int64           `json:"request_id,omitempty"`
}

// ipcConn is a minimal client for mpv's line-delimited JSON IPC protocol.
// One goroutine reads the socket and routes command responses to their
// waiting callers; events go to the onEvent callback.
type ipcConn struct {
	conn    net.Conn
	onEvent func(ipcMessage)

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan ipcMessage
	closed  bool
}

func newIPCConn(conn net.Conn, onEvent func(ipcMessage)) *ipcConn {
	c := &ipcConn{
		conn:    conn,
		onEvent: onEvent,
		pending: map[int64]chan ipcMessage{},
	}
	go c.readLoop()
	return c
}

func (c *ipcConn) readLoop() {
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		if msg.RequestID != 0 {
			c.mu.Lock()
			ch, ok := c.pending[msg.RequestID]
			if ok {
				delete(c.pending, msg.RequestID)
			}
			c.mu.Unlock()
			if ok {
				ch <- msg
			}
			continue
		}

		if msg.Event != "" && c.onEvent != nil {
			c.onEvent(msg)
		}
	}

	c.close()
}

// command sends one mpv command and waits for its response.
func (c *ipcConn) command(args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errIPCClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan ipcMessage, 1)
	c.pending[id] = ch

	payload, err := json.Marshal(map[string]any{
		"command":    args,
		"request_id": id,
	})
	if err == nil {
		_, err = c.conn.Write(append(payload, '\n'))
	}
	if err != nil {
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("sending player command: %w", err)
	}
	c.mu.Unlock()

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, errIPCClosed
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("player command failed: %s", resp.Error)
		}
		return resp.Data, nil
	case <-time.After(ipcRequestTimeout):
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("player command timed out")
	}
}

func (c *ipcConn) setProperty(name string, value any) error {
	_, err := c.command("set_property", name, value)
	return err
}

func (c *ipcConn) getFloat(name string) (float64, error) {
	data, err := c.command("get_property", name)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("decoding property %s: %w", name, err)
	}
	return v, nil
}

func (c *ipcConn) getBool(name string) (bool, error) {
	data, err := c.command("get_property", name)
	if err != nil {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, fmt.Errorf("decoding property %s: %w", name, err)
	}
	return v, nil
}

func (c *ipcConn) observe(name string) error {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.mu.Unlock()
	_, err := c.command("observe_property", id, name)
	return err
}

// close tears down the connection and fails all pending requests. Safe to
// call multiple times.
func (c *ipcConn) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	_ = c.conn.Close()
}
