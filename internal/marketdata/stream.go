package marketdata

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Stream subscribes to the provider's quote WebSocket and keeps the cache
// current. Reconnects with a flat backoff until the context is cancelled.
type Stream struct {
	url     string
	token   string
	symbols []string
	cache   *Cache
}

func NewStream(url, token string, symbols []string, cache *Cache) *Stream {
	return &Stream{url: url, token: token, symbols: symbols, cache: cache}
}

type subscribeMessage struct {
	Op      string   `json:"op"`
	Channel string   `json:"channel"`
	Symbols []string `json:"symbols"`
}

type streamMessage struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
	Bid    string `json:"bid"`
	Ask    string `json:"ask"`
	Price  string `json:"price"`
}

func (s *Stream) Run(ctx context.Context) error {
	if s.url == "" || len(s.symbols) == 0 {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runConnection(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[quotes] stream disconnected: %v, reconnecting", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (s *Stream) runConnection(ctx context.Context) error {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	sub := subscribeMessage{Op: "subscribe", Channel: "quotes", Symbols: s.symbols}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}
	log.Printf("[quotes] stream subscribed to %d symbols", len(s.symbols))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[quotes] bad stream message: %v", err)
			continue
		}
		if msg.Type != "quote" || msg.Symbol == "" {
			continue
		}
		qr := quoteResponse{Symbol: msg.Symbol, Bid: msg.Bid, Ask: msg.Ask, Price: msg.Price}
		q, err := qr.toQuote(msg.Symbol)
		if err != nil {
			log.Printf("[quotes] bad quote for %s: %v", msg.Symbol, err)
			continue
		}
		s.cache.Set(q)
	}
}
