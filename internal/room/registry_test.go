package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Ensure_Get_SamePointer(t *testing.T) {
	r := NewRegistry()

	rm1 := r.Ensure("k7x2qf")
	rm2, ok := r.Get("K7X2QF")

	require.True(t, ok)
	assert.Same(t, rm1, rm2)
	assert.Equal(t, "K7X2QF", rm1.Code)
	assert.Same(t, rm1, r.Ensure("K7x2Qf"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("NOPE22")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len(), "lookup must not create rooms")
}

func TestRegistry_LeaveDeletesEmptyRoom(t *testing.T) {
	r := NewRegistry()
	rm := r.Ensure("ABCDEF")
	rm.Add("c1", Player{ID: "P1", Name: "Nyx"})
	rm.Add("c2", Player{ID: "P2", Name: "Rook"})

	d, ok := r.Leave("abcdef", "c1")
	require.True(t, ok)
	assert.Equal(t, "P1", d.Player.ID)
	require.NotNil(t, d.Room)
	assert.Equal(t, 1, d.Room.Size())
	assert.True(t, r.Has("ABCDEF"))

	d, ok = r.Leave("ABCDEF", "c2")
	require.True(t, ok)
	assert.Nil(t, d.Room)
	assert.False(t, r.Has("ABCDEF"))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_LeaveUnknown(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Leave("ABCDEF", "c1")
	assert.False(t, ok)

	r.Ensure("ABCDEF").Add("c1", Player{ID: "P1"})
	_, ok = r.Leave("ABCDEF", "c9")
	assert.False(t, ok)
	assert.True(t, r.Has("ABCDEF"))
}

func TestRoom_RosterKeepsJoinOrder(t *testing.T) {
	rm := newRoom("ABCDEF")
	rm.Add("c1", Player{ID: "A", Name: "Nyx"})
	rm.Add("c2", Player{ID: "B", Name: "Rook"})
	rm.Add("c3", Player{ID: "C", Name: "Vex"})
	_, _ = rm.remove("c2")

	assert.Equal(t, []Member{
		{ID: "A", Name: "Nyx"},
		{ID: "C", Name: "Vex", You: true},
	}, rm.Roster("C"))
	assert.Equal(t, []Member{
		{ID: "A", Name: "Nyx"},
		{ID: "C", Name: "Vex"},
	}, rm.Roster(""))
	assert.Equal(t, []string{"c1", "c3"}, rm.Keys())
}

func TestRegistry_CodesSorted(t *testing.T) {
	r := NewRegistry()
	r.Ensure("zzzzzz")
	r.Ensure("AAAAAA")
	assert.Equal(t, []string{"AAAAAA", "ZZZZZZ"}, r.Codes())
}
