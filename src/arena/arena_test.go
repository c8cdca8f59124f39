package arena_test

import (
	"testing"

	"github.com/bradbev/tileworld/src/arena"

	"github.com/stretchr/testify/assert"
)

func TestInsertGetRemove(t *testing.T) {
	a := arena.New[string]()
	h := a.Insert("grass")
	assert.True(t, h.Valid())
	assert.Equal(t, 1, a.Len())

	v, ok := a.Get(h)
	assert.True(t, ok)
	assert.Equal(t, "grass", v)

	v, ok = a.Remove(h)
	assert.True(t, ok)
	assert.Equal(t, "grass", v)
	assert.Equal(t, 0, a.Len())

	_, ok = a.Remove(h)
	assert.False(t, ok, "removing twice must not succeed")
}

func TestStaleHandleDoesNotAlias(t *testing.T) {
	a := arena.New[int]()
	old := a.Insert(1)
	a.Remove(old)

	fresh := a.Insert(2)
	assert.Equal(t, old.Index, fresh.Index, "slot should be reused")
	assert.NotEqual(t, old.Gen, fresh.Gen)

	_, ok := a.Get(old)
	assert.False(t, ok, "stale handle resolved to a reused slot")
	v, ok := a.Get(fresh)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestZeroHandle(t *testing.T) {
	a := arena.New[int]()
	a.Insert(7)
	assert.False(t, arena.Handle{}.Valid())
	assert.False(t, a.Contains(arena.Handle{}))
	_, ok := a.Get(arena.Handle{Index: 42, Gen: 1})
	assert.False(t, ok)
}

func TestEach(t *testing.T) {
	a := arena.New[int]()
	h1 := a.Insert(10)
	h2 := a.Insert(20)
	h3 := a.Insert(30)
	a.Remove(h2)

	seen := map[arena.Handle]int{}
	a.Each(func(h arena.Handle, v int) {
		seen[h] = v
	})
	assert.Equal(t, map[arena.Handle]int{h1: 10, h3: 30}, seen)
}
