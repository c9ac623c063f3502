package hub

import (
	"strings"

	"github.com/DoyleJ11/rolly-polly/internal/room"
	"github.com/DoyleJ11/rolly-polly/internal/session"
	"github.com/DoyleJ11/rolly-polly/internal/types"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const DefaultPlayerName = "Player"

func (h *Hub) connect(msg Connect) {
	if _, ok := h.sessions[msg.ConnID]; ok {
		h.log.Warn("duplicate connect", zap.String("conn", msg.ConnID))
		return
	}
	h.sessions[msg.ConnID] = session.New(msg.ConnID)
	h.out.register(msg.ConnID, msg.Outbox)
}

func (h *Hub) createRoom(msg CreateRoom) {
	s, ok := h.unbound(msg.ConnID, msg.Ref)
	if !ok {
		return
	}
	code := h.newRoomCode()
	h.admit(s, h.rooms.Ensure(code), msg.Ref, msg.PlayerName)
	h.log.Info("room created", zap.String("room", code))
}

func (h *Hub) joinRoom(msg JoinRoom) {
	s, ok := h.unbound(msg.ConnID, msg.Ref)
	if !ok {
		return
	}
	rm, ok := h.rooms.Get(msg.Code)
	if !ok {
		h.out.toCaller(msg.ConnID, ack(msg.Ref, types.Ack{Error: msgRoomNotFound}))
		return
	}
	h.admit(s, rm, msg.Ref, msg.PlayerName)
}

// unbound returns the connection's session if it may still join a room. A
// bound connection is told so; an unknown connection is ignored.
func (h *Hub) unbound(connID string, ref int64) (*session.Session, bool) {
	s := h.sessions[connID]
	if s == nil {
		h.log.Warn("event from unknown connection", zap.String("conn", connID))
		return nil, false
	}
	if s.State() != session.Unbound {
		h.out.toCaller(connID, ack(ref, types.Ack{Error: msgAlreadyInRoom}))
		return nil, false
	}
	return s, true
}

func (h *Hub) newRoomCode() string {
	for {
		code := h.ids.RoomCode()
		if !h.rooms.Has(code) {
			return code
		}
		h.log.Debug("collision on room code, regenerating", zap.String("room", code))
	}
}

// admit adds a fresh player for s to rm and notifies the caller and the rest
// of the room.
func (h *Hub) admit(s *session.Session, rm *room.Room, ref int64, rawName string) {
	p := room.Player{ID: h.ids.PlayerID(), Name: displayName(rawName)}
	if err := s.Bind(session.Binding{RoomCode: rm.Code, PlayerID: p.ID, PlayerName: p.Name}); err != nil {
		h.log.Error("bind session", zap.String("conn", s.ConnID), zap.Error(err))
		return
	}
	rm.Add(s.ConnID, p)

	h.out.toCaller(s.ConnID, ack(ref, types.Ack{Code: rm.Code, ID: p.ID, PlayerName: p.Name}))
	h.out.toRoomExcept(rm, s.ConnID, types.ServerMessage{
		Type: types.TypePlayerJoined,
		Data: membership(rm, p),
	})
	h.out.toCaller(s.ConnID, types.ServerMessage{
		Type: types.TypeRoomJoined,
		Data: types.RoomJoined{Code: rm.Code, ID: p.ID, Name: p.Name, Players: roster(rm, p.ID)},
	})

	h.log.Info("player joined",
		zap.String("room", rm.Code),
		zap.String("player", p.ID),
		zap.Int("total", rm.Size()),
	)
}

func (h *Hub) roll(msg Roll) {
	s := h.sessions[msg.ConnID]
	if s == nil {
		return
	}
	b, ok := s.Binding()
	if !ok {
		return
	}
	rm, ok := h.rooms.Get(b.RoomCode)
	if !ok {
		return
	}
	p, ok := rm.Player(msg.ConnID)
	if !ok || p.ID != b.PlayerID {
		return
	}

	outcome := h.accept.Accept(msg.NumDice, msg.Results)
	ev := types.Roll{
		ID:         h.ids.EventID(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		NumDice:    outcome.NumDice,
		Results:    outcome.Results,
		At:         h.now().UnixMilli(),
	}
	h.out.toRoom(rm, types.ServerMessage{Type: types.TypeRoll, Data: ev})

	h.log.Debug("roll",
		zap.String("room", rm.Code),
		zap.String("player", p.ID),
		zap.Int("num_dice", ev.NumDice),
		zap.Ints("results", ev.Results),
	)
}

func (h *Hub) disconnect(msg Disconnect) {
	s := h.sessions[msg.ConnID]
	if s == nil {
		return
	}
	delete(h.sessions, msg.ConnID)
	h.out.unregister(msg.ConnID)

	b, ok := s.Terminate()
	if !ok {
		return
	}
	d, ok := h.rooms.Leave(b.RoomCode, msg.ConnID)
	if !ok {
		return
	}
	if d.Room == nil {
		h.log.Info("room closed", zap.String("room", b.RoomCode))
		return
	}
	h.out.toRoomExcept(d.Room, msg.ConnID, types.ServerMessage{
		Type: types.TypePlayerLeft,
		Data: membership(d.Room, d.Player),
	})
	h.log.Info("player left",
		zap.String("room", d.Room.Code),
		zap.String("player", d.Player.ID),
		zap.Int("total", d.Room.Size()),
	)
}

func displayName(raw string) string {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

func ack(ref int64, a types.Ack) types.ServerMessage {
	return types.ServerMessage{Type: types.TypeAck, Ref: ref, Data: a}
}

func membership(rm *room.Room, p room.Player) types.Membership {
	members := rm.Roster("")
	players := make([]types.Member, 0, len(members))
	for _, m := range members {
		players = append(players, types.Member{ID: m.ID, Name: m.Name})
	}
	return types.Membership{ID: p.ID, Name: p.Name, Total: rm.Size(), Players: players}
}

func roster(rm *room.Room, you string) []types.RosterEntry {
	members := rm.Roster(you)
	out := make([]types.RosterEntry, 0, len(members))
	for _, m := range members {
		out = append(out, types.RosterEntry{ID: m.ID, Name: m.Name, You: m.You})
	}
	return out
}
