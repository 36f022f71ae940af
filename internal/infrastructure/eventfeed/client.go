package eventfeed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// subscriptions tracks which topics a client currently receives.
type subscriptions struct {
	topics map[Topic]bool
	mu     sync.RWMutex
}

func newSubscriptions() *subscriptions {
	return &subscriptions{topics: make(map[Topic]bool)}
}

// Client is one connected debug-feed subscriber, adapted from the
// teacher's websocket.Client with workflow/execution subscriptions
// replaced by topic subscriptions.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan *FeedEvent

	id   string
	subs *subscriptions
}

// NewClient creates a Client bound to hub and conn.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *FeedEvent, sendBufferSize),
		id:   id,
		subs: newSubscriptions(),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.sendResponse(NewErrorResponse("error", "invalid command format"))
			continue
		}
		c.handleCommand(&cmd)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleCommand(cmd *Command) {
	switch cmd.Action {
	case CmdSubscribe:
		if cmd.Topic == "" {
			c.sendResponse(NewErrorResponse(CmdSubscribe, "topic required"))
			return
		}
		c.hub.Subscribe(c, cmd.Topic)
		c.sendResponse(NewSuccessResponse(CmdSubscribe, "subscribed to "+string(cmd.Topic)))
	case CmdUnsubscribe:
		if cmd.Topic == "" {
			c.sendResponse(NewErrorResponse(CmdUnsubscribe, "topic required"))
			return
		}
		c.hub.Unsubscribe(c, cmd.Topic)
		c.sendResponse(NewSuccessResponse(CmdUnsubscribe, "unsubscribed from "+string(cmd.Topic)))
	default:
		c.sendResponse(NewErrorResponse("error", "unknown command: "+cmd.Action))
	}
}

func (c *Client) sendResponse(resp *Response) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteJSON(resp)
}
