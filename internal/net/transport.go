package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"SpiderWeb/internal/web"

	"fyne.io/fyne/v2"
	"github.com/gorilla/websocket"
)

// TouchPath is where touchpads connect.
const TouchPath = "/touch"

// Message types accepted from a touchpad.
const (
	MsgBegin  = "begin"
	MsgMove   = "move"
	MsgEnd    = "end"
	MsgCancel = "cancel"
)

const maxMessageSize = 4096

// TouchMessage is one frame sent by a remote touchpad. ID is the finger id
// on the sending device and only needs to be unique per connection.
type TouchMessage struct {
	Type string  `json:"type"`
	ID   int64   `json:"id"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
}

// peer is a connected touchpad. touches is owned by the peer's read loop.
type peer struct {
	conn    *websocket.Conn
	touches map[int64]web.TouchID
}

// Bridge feeds touch gestures from remote touchpads into a TouchHandler.
//
// Every handler call goes through dispatch, which must run it on the
// goroutine that owns the handler.
type Bridge struct {
	handler  web.TouchHandler
	dispatch func(func())
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[string]*peer
}

// NewBridge creates a bridge. A nil dispatch calls the handler directly.
func NewBridge(h web.TouchHandler, dispatch func(func())) *Bridge {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Bridge{
		handler:  h,
		dispatch: dispatch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Touchpads on the LAN connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*peer),
	}
}

// Peers returns the number of connected touchpads.
func (b *Bridge) Peers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.peers)
}

func (b *Bridge) add(p *peer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := p.conn.RemoteAddr().String()
	b.peers[addr] = p
	log.Printf("[BRIDGE] touchpad connected from %s", addr)
}

func (b *Bridge) remove(p *peer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := p.conn.RemoteAddr().String()
	delete(b.peers, addr)
	log.Printf("[BRIDGE] touchpad %s disconnected", addr)
}

func (b *Bridge) closeAll() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.peers {
		p.conn.Close()
	}
}

// ServeHTTP upgrades the request and reads touch frames until the peer leaves.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[BRIDGE] upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	p := &peer{conn: conn, touches: make(map[int64]web.TouchID)}
	b.add(p)
	defer func() {
		b.cancelAll(p)
		b.remove(p)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[BRIDGE] read from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		var msg TouchMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[BRIDGE] dropping malformed frame from %s: %v", conn.RemoteAddr(), err)
			continue
		}
		if err := b.handle(p, msg); err != nil {
			log.Printf("[BRIDGE] %s: %v", conn.RemoteAddr(), err)
		}
	}
}

func (b *Bridge) handle(p *peer, msg TouchMessage) error {
	loc := fyne.NewPos(msg.X, msg.Y)
	switch msg.Type {
	case MsgBegin:
		if old, ok := p.touches[msg.ID]; ok {
			b.dispatch(func() { b.handler.TouchCancel(old) })
		}
		id := web.NextTouchID()
		p.touches[msg.ID] = id
		b.dispatch(func() { b.handler.TouchBegin(id, loc) })
	case MsgMove:
		if id, ok := p.touches[msg.ID]; ok {
			b.dispatch(func() { b.handler.TouchMove(id, loc) })
		}
	case MsgEnd:
		if id, ok := p.touches[msg.ID]; ok {
			delete(p.touches, msg.ID)
			b.dispatch(func() { b.handler.TouchEnd(id, loc) })
		}
	case MsgCancel:
		if id, ok := p.touches[msg.ID]; ok {
			delete(p.touches, msg.ID)
			b.dispatch(func() { b.handler.TouchCancel(id) })
		}
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// cancelAll drops gestures left open by a peer that went away.
func (b *Bridge) cancelAll(p *peer) {
	for finger, id := range p.touches {
		delete(p.touches, finger)
		b.dispatch(func() { b.handler.TouchCancel(id) })
	}
}

// ListenAndServe serves touchpads on addr until ctx is cancelled.
func (b *Bridge) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(TouchPath, b)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		b.closeAll()
	}()

	log.Printf("[BRIDGE] listening on %s%s", addr, TouchPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("touch bridge on %s: %w", addr, err)
	}
	return nil
}
