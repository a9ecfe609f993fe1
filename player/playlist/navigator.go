package playlist

// Navigator advances or retreats the host-owned selection index. It never
// mutates the playlist itself: all changes go through the host's callback.
//
// Next and Previous deliberately do not wrap around at the boundaries; at
// the edges they are no-ops and the callback never fires.
type Navigator struct {
	Length  int
	Current int

	// OnIndexChange is invoked with the requested new index. Required.
	OnIndexChange func(newIndex int)

	// OnShuffle reorders the playlist. Optional; shuffle is unavailable
	// when the host does not supply it.
	OnShuffle func()
}

// Next requests the next index. Returns false (and fires nothing) when
// already at the last track or the playlist is empty.
func (n Navigator) Next() bool {
	next := n.Current + 1
	if n.Current < 0 || next >= n.Length || n.OnIndexChange == nil {
		return false
	}
	n.OnIndexChange(next)
	return true
}

// Previous requests the previous index. Returns false (and fires nothing)
// when already at the first track or the playlist is empty.
func (n Navigator) Previous() bool {
	if n.Current <= 0 || n.Current >= n.Length || n.OnIndexChange == nil {
		return false
	}
	n.OnIndexChange(n.Current - 1)
	return true
}

// CanShuffle reports whether the host supplied a shuffle implementation.
func (n Navigator) CanShuffle() bool {
	return n.OnShuffle != nil
}

// Shuffle delegates to the host's shuffle implementation, if any. The
// engine has no opinion on the shuffle algorithm.
func (n Navigator) Shuffle() {
	if n.OnShuffle != nil {
		n.OnShuffle()
	}
}
