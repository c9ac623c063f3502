package hub

import "errors"

var ErrStopped = errors.New("hub stopped")

// Ack error strings sent to clients.
const (
	msgRoomNotFound  = "Room not found"
	msgAlreadyInRoom = "Already in a room"
)
