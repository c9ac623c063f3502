package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DoyleJ11/rolly-polly/internal/hub"
	"github.com/DoyleJ11/rolly-polly/internal/ids"
	"github.com/DoyleJ11/rolly-polly/internal/types"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

type Options struct {
	// OriginPatterns are host patterns allowed to open a socket from a
	// browser, e.g. "localhost:3000".
	OriginPatterns []string
	OutboxSize     int
	WriteTimeout   time.Duration
	// PingInterval of zero disables keepalive pings.
	PingInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.OutboxSize <= 0 {
		o.OutboxSize = 32
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	return o
}

func Handler(h *hub.Hub, opts Options, log *zap.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	log = log.With(zap.String("component", "ws"))

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := ids.ConnID()
		log := log.With(zap.String("conn", connID))
		out := make(chan types.ServerMessage, opts.OutboxSize)
		if !h.Send(hub.Connect{ConnID: connID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
		defer h.Send(hub.Disconnect{ConnID: connID})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine
		go writeLoop(ctx, conn, out, opts.WriteTimeout, log)
		if opts.PingInterval > 0 {
			go keepalive(ctx, conn, opts.PingInterval, log)
		}

		// Reader loop
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					if !errors.Is(err, context.Canceled) {
						log.Debug("read failed", zap.Error(err))
					}
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				if !h.Send(hub.ClientError{ConnID: connID, Reason: "bad json"}) {
					return
				}
				continue
			}

			msg, ok := toHubMsg(connID, cm)
			if !ok {
				if !h.Send(hub.ClientError{ConnID: connID, Reason: "unknown type"}) {
					return
				}
				continue
			}
			if !h.Send(msg) {
				return
			}
		}
	}
}

// writeLoop drains the outbox until the hub closes it or the connection's
// context ends. A closed outbox means the connection was disconnected or
// dropped for falling behind.
func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan types.ServerMessage, timeout time.Duration, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-out:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "outbox closed")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, timeout)
			err := wsjson.Write(wctx, conn, msg)
			cancel()
			if err != nil {
				log.Debug("write failed", zap.String("type", msg.Type), zap.Error(err))
				conn.CloseNow()
				return
			}
		}
	}
}

func keepalive(ctx context.Context, conn *websocket.Conn, every time.Duration, log *zap.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, every)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					log.Debug("ping failed", zap.Error(err))
					conn.CloseNow()
				}
				return
			}
		}
	}
}

// toHubMsg maps a client envelope onto a hub message. Payloads that fail to
// decode fall back to zero values; the hub applies defaults.
func toHubMsg(connID string, m types.ClientMessage) (hub.HubMsg, bool) {
	switch m.Type {
	case types.TypeCreateRoom:
		var req types.CreateRoomRequest
		decode(m.Data, &req)
		return hub.CreateRoom{ConnID: connID, Ref: m.Ref, PlayerName: req.PlayerName}, true
	case types.TypeJoinRoom:
		var req types.JoinRoomRequest
		decode(m.Data, &req)
		return hub.JoinRoom{ConnID: connID, Ref: m.Ref, Code: req.Code, PlayerName: req.PlayerName}, true
	case types.TypeRoll:
		var req types.RollRequest
		decode(m.Data, &req)
		return hub.Roll{ConnID: connID, NumDice: req.NumDice, Results: req.Results}, true
	default:
		return nil, false
	}
}

func decode(data json.RawMessage, v any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}
