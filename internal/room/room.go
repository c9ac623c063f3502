package room

import "strings"

// Player is one participant in a room.
type Player struct {
	ID   string
	Name string
}

// Member is a roster entry. You is only set on rosters built for a specific
// recipient.
type Member struct {
	ID   string
	Name string
	You  bool
}

// Room holds the players keyed by session key, in join order.
type Room struct {
	Code    string
	players map[string]Player
	order   []string
}

func newRoom(code string) *Room {
	return &Room{
		Code:    code,
		players: make(map[string]Player),
	}
}

// Add registers p under key. Re-adding an existing key replaces the player
// but keeps its roster position.
func (r *Room) Add(key string, p Player) {
	if _, ok := r.players[key]; !ok {
		r.order = append(r.order, key)
	}
	r.players[key] = p
}

func (r *Room) Player(key string) (Player, bool) {
	p, ok := r.players[key]
	return p, ok
}

func (r *Room) Size() int { return len(r.players) }

// Keys returns the session keys of every player, in join order.
func (r *Room) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Roster lists the players in join order. The entry whose player id equals
// you is flagged; pass "" for an untagged roster.
func (r *Room) Roster(you string) []Member {
	out := make([]Member, 0, len(r.order))
	for _, key := range r.order {
		p := r.players[key]
		out = append(out, Member{ID: p.ID, Name: p.Name, You: you != "" && p.ID == you})
	}
	return out
}

func (r *Room) remove(key string) (Player, bool) {
	p, ok := r.players[key]
	if !ok {
		return Player{}, false
	}
	delete(r.players, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, true
}

// NormalizeCode is the canonical storage form of a room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
