// arena is a generation-checked slot map.
//
// Handles are an index/generation pair.  When a value is removed the slot's
// generation moves on, so any Handle still held by a caller stops resolving
// instead of aliasing whatever is inserted into the slot next.

package arena

// Handle refers to a value stored in an Arena.  The zero Handle is never
// issued and is used as "no entity".
type Handle struct {
	Index uint32
	Gen   uint32
}

func (h Handle) Valid() bool {
	return h.Gen != 0
}

type slot[T any] struct {
	gen   uint32
	used  bool
	value T
}

type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns a Handle to it.  Freed slots are reused
// most-recently-freed first.
func (a *Arena[T]) Insert(v T) Handle {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		index = uint32(len(a.slots) - 1)
	}
	s := &a.slots[index]
	s.gen++
	if s.gen == 0 {
		// generation 0 is reserved for the invalid handle
		s.gen = 1
	}
	s.used = true
	s.value = v
	a.live++
	return Handle{Index: index, Gen: s.gen}
}

func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Index]
	if !s.used || s.gen != h.Gen {
		return nil
	}
	return s
}

func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

func (a *Arena[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Remove deletes the value behind h and returns it.  Removing a stale or
// unknown handle is a no-op that reports false.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	s := a.lookup(h)
	if s == nil {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.used = false
	a.free = append(a.free, h.Index)
	a.live--
	return v, true
}

func (a *Arena[T]) Len() int {
	return a.live
}

// Each visits live values in slot order.
func (a *Arena[T]) Each(fn func(h Handle, v T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.used {
			fn(Handle{Index: uint32(i), Gen: s.gen}, s.value)
		}
	}
}
