package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// conn is one client connection. The write pump is the only writer on ws.
// done closes when the read loop ends, writerDone when the write pump does.
type conn struct {
	h          *Handler
	ws         *websocket.Conn
	send       chan []byte
	done       chan struct{}
	writerDone chan struct{}
	logger     zerolog.Logger

	mu   sync.Mutex
	subs map[string]*broadcast.Subscription
	wg   sync.WaitGroup
}

func newConn(h *Handler, ws *websocket.Conn, remote string) *conn {
	return &conn{
		h:          h,
		ws:         ws,
		send:       make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
		logger:     h.logger.With().Str("remote", remote).Logger(),
		subs:       make(map[string]*broadcast.Subscription),
	}
}

// serve runs the read loop on the calling goroutine
func (c *conn) serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	// The pump closes ws on exit, which also ends the read loop
	go func() {
		defer close(c.writerDone)
		c.writePump()
	}()

	c.readPump(ctx)

	cancel()
	close(c.done)
	c.unsubscribeAll()
	c.wg.Wait()
	<-c.writerDone
}

func (c *conn) readPump(ctx context.Context) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("connection dropped")
			}
			return
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			c.reply(&Ack{Type: TypeAck, Error: string(ErrBadRequest)})
			continue
		}

		c.reply(c.handle(ctx, &req))
	}
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				c.logger.Debug().Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues an ack. Acks wait for room in the queue so a request is
// never left unanswered while the connection is alive. Once the write pump
// has stopped nothing drains the queue, so the ack is dropped.
func (c *conn) reply(ack *Ack) {
	b, err := json.Marshal(ack)
	if err != nil {
		c.logger.Error().Err(err).Str("type", ack.Type).Msg("failed to encode ack")
		return
	}

	select {
	case c.send <- b:
	case <-c.done:
	case <-c.writerDone:
	}
}

// push queues a broadcast message, dropping it when the client is too slow
func (c *conn) push(msg *broadcast.Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error().Err(err).Str("event", string(msg.Event)).Msg("failed to encode push")
		return
	}

	select {
	case c.send <- b:
	case <-c.done:
	case <-c.writerDone:
	default:
		c.logger.Warn().Str("code", msg.Code).Str("event", string(msg.Event)).Msg("send queue full, dropping push")
	}
}

// subscribe attaches the connection to a session as viewer. A connection
// has at most one subscription per code; a new viewer replaces the old one.
func (c *conn) subscribe(code, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
	}

	if old, ok := c.subs[code]; ok {
		c.h.hub.Unsubscribe(old)
	}

	sub := c.h.hub.Subscribe(&broadcast.SubscribeInput{Code: code, ViewerToken: token})
	c.subs[code] = sub

	c.wg.Add(1)
	go c.forward(sub)
}

func (c *conn) forward(sub *broadcast.Subscription) {
	defer c.wg.Done()

	for msg := range sub.C {
		c.push(msg)

		if msg.Event == broadcast.EventExpired {
			c.unsubscribe(sub)
		}
	}
}

func (c *conn) unsubscribe(sub *broadcast.Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs[sub.Code()] == sub {
		delete(c.subs, sub.Code())
	}
	c.h.hub.Unsubscribe(sub)
}

func (c *conn) unsubscribeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, sub := range c.subs {
		c.h.hub.Unsubscribe(sub)
		delete(c.subs, code)
	}
}
