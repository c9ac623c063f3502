package hub

import (
	"github.com/DoyleJ11/rolly-polly/internal/room"
	"github.com/DoyleJ11/rolly-polly/internal/types"
	"go.uber.org/zap"
)

// broadcaster owns the per-connection outboxes. Delivery is fire-and-forget:
// a connection whose outbox is full is dropped and its outbox closed, which
// makes the transport hang up and report a Disconnect.
type broadcaster struct {
	outboxes map[string]chan types.ServerMessage
	log      *zap.Logger
}

func newBroadcaster(log *zap.Logger) *broadcaster {
	return &broadcaster{
		outboxes: make(map[string]chan types.ServerMessage),
		log:      log,
	}
}

func (b *broadcaster) register(connID string, ch chan types.ServerMessage) {
	b.outboxes[connID] = ch
}

func (b *broadcaster) unregister(connID string) {
	if ch, ok := b.outboxes[connID]; ok {
		close(ch)
		delete(b.outboxes, connID)
	}
}

func (b *broadcaster) closeAll() {
	for id, ch := range b.outboxes {
		close(ch)
		delete(b.outboxes, id)
	}
}

func (b *broadcaster) send(connID string, msg types.ServerMessage) {
	ch, ok := b.outboxes[connID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
		// ok
	default:
		b.log.Warn("outbox full, dropping connection",
			zap.String("conn", connID),
			zap.String("type", msg.Type),
		)
		close(ch)
		delete(b.outboxes, connID)
	}
}

// toCaller delivers to a single connection.
func (b *broadcaster) toCaller(connID string, msg types.ServerMessage) {
	b.send(connID, msg)
}

// toRoomExcept delivers to every member of rm other than except.
func (b *broadcaster) toRoomExcept(rm *room.Room, except string, msg types.ServerMessage) {
	for _, key := range rm.Keys() {
		if key != except {
			b.send(key, msg)
		}
	}
}

// toRoom delivers to every member of rm, sender included.
func (b *broadcaster) toRoom(rm *room.Room, msg types.ServerMessage) {
	b.toRoomExcept(rm, "", msg)
}
