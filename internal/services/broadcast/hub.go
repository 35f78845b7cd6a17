package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

const defaultBufferSize = 16

// Config holds configuration for the hub
type Config struct {
	// BufferSize is the per-subscriber queue length
	BufferSize int

	// Logger receives delivery warnings
	Logger zerolog.Logger
}

// Subscription is a subscriber's handle on the hub
type Subscription struct {
	// C receives messages until the subscription is cancelled
	C <-chan *Message

	code   string
	viewer string
	ch     chan *Message
}

// Code returns the subscribed session code, empty for firehose subscribers
func (s *Subscription) Code() string {
	return s.code
}

// Hub is an in-process topic based publisher keyed by session code
type Hub struct {
	mu         sync.RWMutex
	topics     map[string]map[*Subscription]struct{}
	firehose   map[*Subscription]struct{}
	bufferSize int
	logger     zerolog.Logger
}

var _ Publisher = (*Hub)(nil)

// NewHub creates a hub
func NewHub(cfg *Config) *Hub {
	h := &Hub{
		topics:     make(map[string]map[*Subscription]struct{}),
		firehose:   make(map[*Subscription]struct{}),
		bufferSize: defaultBufferSize,
		logger:     zerolog.Nop(),
	}
	if cfg != nil {
		if cfg.BufferSize > 0 {
			h.bufferSize = cfg.BufferSize
		}
		h.logger = cfg.Logger
	}
	return h
}

// Subscribe registers a subscriber for one session code, or for every
// session when the code is empty
func (h *Hub) Subscribe(input *SubscribeInput) *Subscription {
	ch := make(chan *Message, h.bufferSize)
	sub := &Subscription{
		C:      ch,
		code:   input.Code,
		viewer: input.ViewerToken,
		ch:     ch,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if input.Code == "" {
		h.firehose[sub] = struct{}{}
		return sub
	}

	topic, ok := h.topics[input.Code]
	if !ok {
		topic = make(map[*Subscription]struct{})
		h.topics[input.Code] = topic
	}
	topic[sub] = struct{}{}

	return sub
}

// Unsubscribe removes a subscriber and closes its channel. It is safe to
// call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.code == "" {
		if _, ok := h.firehose[sub]; ok {
			delete(h.firehose, sub)
			close(sub.ch)
		}
		return
	}

	topic, ok := h.topics[sub.code]
	if !ok {
		return
	}
	if _, ok := topic[sub]; !ok {
		return
	}
	delete(topic, sub)
	close(sub.ch)
	if len(topic) == 0 {
		delete(h.topics, sub.code)
	}
}

// Subscribers returns the number of subscribers of a session code
func (h *Hub) Subscribers(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[code])
}

// Publish projects the session for each subscriber and queues it without
// blocking. A full queue drops the message.
func (h *Hub) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[input.Session.Code] {
		h.deliver(sub, input)
	}
	for sub := range h.firehose {
		h.deliver(sub, input)
	}

	return nil
}

// deliver must be called with h.mu held
func (h *Hub) deliver(sub *Subscription, input *PublishInput) {
	msg := &Message{
		Event: input.Event,
		Code:  input.Session.Code,
	}

	switch input.Event {
	case EventExpired:
		// Nothing left to show
	case EventResults:
		msg.State = Project(input.Session, sub.viewer)
		msg.Results = input.Session.Results
	default:
		msg.State = Project(input.Session, sub.viewer)
	}

	select {
	case sub.ch <- msg:
	default:
		h.logger.Warn().
			Str("code", input.Session.Code).
			Str("event", string(input.Event)).
			Msg("subscriber queue full, dropping message")
	}
}
