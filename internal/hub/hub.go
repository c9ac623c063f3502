package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/DoyleJ11/rolly-polly/internal/dice"
	"github.com/DoyleJ11/rolly-polly/internal/ids"
	"github.com/DoyleJ11/rolly-polly/internal/room"
	"github.com/DoyleJ11/rolly-polly/internal/session"
	"github.com/DoyleJ11/rolly-polly/internal/types"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

// Connect registers a new transport connection in the Unbound state. Every
// message for the connection, acks included, is delivered on Outbox in order.
type Connect struct {
	ConnID string
	Outbox chan types.ServerMessage
}

type CreateRoom struct {
	ConnID     string
	Ref        int64
	PlayerName string
}

type JoinRoom struct {
	ConnID     string
	Ref        int64
	Code       string
	PlayerName string
}

// Roll carries a reported roll. It has no ack; invalid senders are ignored.
type Roll struct {
	ConnID  string
	NumDice int
	Results []int
}

type Disconnect struct {
	ConnID string
}

// ClientError reports a frame the transport could not understand. The error
// is queued behind anything already on the connection's outbox.
type ClientError struct {
	ConnID string
	Reason string
}

type GetState struct {
	Reply chan View
}

type ShutdownHub struct{}

func (Connect) isHubMsg()     {}
func (CreateRoom) isHubMsg()  {}
func (JoinRoom) isHubMsg()    {}
func (Roll) isHubMsg()        {}
func (Disconnect) isHubMsg()  {}
func (ClientError) isHubMsg() {}
func (GetState) isHubMsg()    {}
func (ShutdownHub) isHubMsg() {}

// View is a point-in-time summary of the hub.
type View struct {
	Rooms       int
	Connections int
	Codes       []string
}

// Hub serializes every room event on one goroutine. Handlers never block, so
// registry state is only touched from loop.
type Hub struct {
	inbox    chan HubMsg
	rooms    *room.Registry
	sessions map[string]*session.Session
	out      *broadcaster
	ids      ids.Generator
	accept   dice.Acceptor
	now      func() time.Time
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

type Option func(*Hub)

func WithRegistry(r *room.Registry) Option { return func(h *Hub) { h.rooms = r } }
func WithIDs(g ids.Generator) Option { return func(h *Hub) { h.ids = g } }
func WithAcceptor(a dice.Acceptor) Option { return func(h *Hub) { h.accept = a } }
func WithClock(now func() time.Time) Option { return func(h *Hub) { h.now = now } }

func NewHub(parent context.Context, log *zap.Logger, opts ...Option) *Hub {
	ctx, cancel := context.WithCancel(parent)
	log = log.With(zap.String("component", "hub"))
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		rooms:    room.NewRegistry(),
		sessions: make(map[string]*session.Session),
		out:      newBroadcaster(log),
		ids:      ids.NanoID{},
		accept:   dice.Trusting{},
		now:      time.Now,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Send queues msg for the hub. It returns false if the hub has stopped.
func (h *Hub) Send(msg HubMsg) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.inbox <- msg:
		return true
	case <-h.done:
		return false
	}
}

// State asks the hub for a View.
func (h *Hub) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if !h.Send(GetState{Reply: reply}) {
		return View{}, ErrStopped
	}
	select {
	case v := <-reply:
		return v, nil
	case <-h.done:
		return View{}, ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Shutdown stops the hub and closes every outbox.
func (h *Hub) Shutdown(ctx context.Context) error {
	if !h.Send(ShutdownHub{}) {
		return nil
	}
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("hub shutdown: %w", ctx.Err())
	}
}

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Connect:
				h.connect(msg)

			case CreateRoom:
				h.createRoom(msg)

			case JoinRoom:
				h.joinRoom(msg)

			case Roll:
				h.roll(msg)

			case Disconnect:
				h.disconnect(msg)

			case ClientError:
				h.out.toCaller(msg.ConnID, types.ServerMessage{Type: types.TypeError, Error: msg.Reason})

			case GetState:
				msg.Reply <- h.view()

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	h.log.Info("hub shutting down",
		zap.Int("rooms", h.rooms.Len()),
		zap.Int("connections", len(h.sessions)),
	)
	h.out.closeAll()
	for id, s := range h.sessions {
		s.Terminate()
		delete(h.sessions, id)
	}
	h.rooms.Clear()
	h.drain()
	h.cancel()
}

// drain discards whatever is still queued. Connections that were accepted but
// never registered get their outbox closed so their writers exit.
func (h *Hub) drain() {
	for {
		select {
		case m := <-h.inbox:
			if c, ok := m.(Connect); ok {
				close(c.Outbox)
			}
		default:
			return
		}
	}
}

func (h *Hub) view() View {
	return View{
		Rooms:       h.rooms.Len(),
		Connections: len(h.sessions),
		Codes:       h.rooms.Codes(),
	}
}
