package room

import "slices"

// Registry maps room codes to live rooms. A room exists only while it has at
// least one player. Registry is not safe for concurrent use; the hub goroutine
// owns it.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Ensure returns the room for code, creating it if needed.
func (r *Registry) Ensure(code string) *Room {
	c := NormalizeCode(code)
	if rm := r.rooms[c]; rm != nil {
		return rm
	}
	rm := newRoom(c)
	r.rooms[c] = rm
	return rm
}

func (r *Registry) Get(code string) (*Room, bool) {
	rm, ok := r.rooms[NormalizeCode(code)]
	return rm, ok
}

func (r *Registry) Has(code string) bool {
	_, ok := r.rooms[NormalizeCode(code)]
	return ok
}

func (r *Registry) Len() int { return len(r.rooms) }

// Codes returns the live room codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.rooms))
	for c := range r.rooms {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Departure describes a player removed by Leave.
type Departure struct {
	Player Player
	// Room is nil when the departure emptied and deleted the room.
	Room *Room
}

// Leave removes the player stored under key from the room. The room is
// deleted as soon as it has no players left. ok is false if either the room
// or the player did not exist.
func (r *Registry) Leave(code, key string) (d Departure, ok bool) {
	c := NormalizeCode(code)
	rm := r.rooms[c]
	if rm == nil {
		return Departure{}, false
	}
	p, ok := rm.remove(key)
	if !ok {
		return Departure{}, false
	}
	if rm.Size() == 0 {
		delete(r.rooms, c)
		return Departure{Player: p}, true
	}
	return Departure{Player: p, Room: rm}, true
}

// Clear drops every room.
func (r *Registry) Clear() { clear(r.rooms) }
