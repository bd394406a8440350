package history

// DefaultCapacity is the default number of snapshots retained.
const DefaultCapacity = 15

// Stack is a bounded LIFO of snapshots. When full, pushing evicts the
// oldest entry.
type Stack struct {
	entries  []Snapshot
	capacity int
	evicted  int
}

// NewStack creates a stack holding at most capacity snapshots.
// A non-positive capacity uses DefaultCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// Push adds a snapshot on top. It returns true if the oldest snapshot was
// evicted to make room.
func (s *Stack) Push(snap Snapshot) bool {
	s.entries = append(s.entries, snap)
	return s.trim()
}

// Pop removes and returns the top snapshot.
func (s *Stack) Pop() (Snapshot, bool) {
	if len(s.entries) == 0 {
		return Snapshot{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = Snapshot{}
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top snapshot without removing it.
func (s *Stack) Peek() (Snapshot, bool) {
	if len(s.entries) == 0 {
		return Snapshot{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of snapshots held.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Capacity returns the maximum number of snapshots held.
func (s *Stack) Capacity() int {
	return s.capacity
}

// SetCapacity changes the bound, evicting the oldest entries if needed.
// Non-positive values are ignored.
func (s *Stack) SetCapacity(capacity int) {
	if capacity <= 0 {
		return
	}
	s.capacity = capacity
	s.trim()
}

// Evicted returns how many snapshots have been dropped for capacity.
func (s *Stack) Evicted() int {
	return s.evicted
}

// Clear removes all snapshots.
func (s *Stack) Clear() {
	s.entries = nil
}

// Entries returns the snapshots from oldest to newest.
func (s *Stack) Entries() []Snapshot {
	return append([]Snapshot(nil), s.entries...)
}

func (s *Stack) trim() bool {
	if len(s.entries) <= s.capacity {
		return false
	}
	excess := len(s.entries) - s.capacity
	s.entries = append([]Snapshot(nil), s.entries[excess:]...)
	s.evicted += excess
	return true
}
