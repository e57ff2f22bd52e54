package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/transformlab/internal/lab"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 64
)

// Client is one live lab page. It holds no state between requests beyond
// its identity; every request is transformed from scratch.
type Client struct {
	service   *lab.Service
	conn      *websocket.Conn
	send      chan []byte
	SessionID string
	Label     string
}

func NewClient(service *lab.Service, conn *websocket.Conn, sessionID, label string) *Client {
	return &Client{
		service:   service,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		SessionID: sessionID,
		Label:     label,
	}
}

// ReadPump handles incoming frames until the connection closes. It owns the
// send channel and closes it on exit, which stops WritePump.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", c.SessionID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", c.SessionID)
			c.sendError(0, "invalid message")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", c.SessionID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case TypeTransformRequest:
		c.handleTransform(msg)
	case TypeSceneRequest:
		c.handleScene(msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "session", c.SessionID)
		c.sendError(msg.Seq, "unknown message type: "+msg.Type)
	}
}

func (c *Client) handleTransform(msg *Message) {
	var req TransformRequestPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.Seq, "invalid transform payload")
		return
	}

	res, err := c.service.TransformLenient(req)
	if err != nil {
		c.sendError(msg.Seq, err.Error())
		return
	}

	c.sendPayload(TypeTransformResult, msg.Seq, res)
}

func (c *Client) handleScene(msg *Message) {
	var req SceneRequestPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.Seq, "invalid scene payload")
		return
	}

	res, cmds, err := c.service.Scene(req.TransformRequest, req.Size)
	if err != nil {
		c.sendError(msg.Seq, err.Error())
		return
	}

	c.sendPayload(TypeSceneResult, msg.Seq, SceneResultPayload{Result: res, Commands: cmds})
}

func (c *Client) sendError(seq int64, message string) {
	c.sendPayload(TypeError, seq, ErrorPayload{Message: message})
}

func (c *Client) sendPayload(typ string, seq int64, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", typ)
		if typ == TypeError {
			return
		}
		c.sendError(seq, "could not encode "+typ)
		return
	}
	c.Send(&Message{Type: typ, SessionID: c.SessionID, Seq: seq, Payload: data})
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "session", c.SessionID)
	}
}
