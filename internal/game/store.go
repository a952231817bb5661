package game

// Store owns the player and every live object of a session.
// It is not safe for concurrent use; the Sim is its only writer.
type Store struct {
	Player  PlayerState
	objects []GameObject
}

// NewStore creates a store around the initial player state.
func NewStore(p PlayerState) *Store {
	return &Store{
		Player:  p,
		objects: make([]GameObject, 0, 32),
	}
}

// Add inserts an object.
func (s *Store) Add(o GameObject) {
	s.objects = append(s.objects, o)
}

// Each calls fn for every object that is still alive, in spawn order.
// fn may mutate the object in place, including killing it.
func (s *Store) Each(fn func(o *GameObject)) {
	for i := range s.objects {
		if s.objects[i].Dead() {
			continue
		}
		fn(&s.objects[i])
	}
}

// Get returns the object with the given ID.
func (s *Store) Get(id string) (*GameObject, bool) {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return &s.objects[i], true
		}
	}
	return nil, false
}

// Len returns the number of stored objects, dead ones included.
func (s *Store) Len() int {
	return len(s.objects)
}

// Purge drops dead objects and returns how many were removed.
func (s *Store) Purge() int {
	active := s.objects[:0]
	for _, o := range s.objects {
		if !o.Dead() {
			active = append(active, o)
		}
	}
	removed := len(s.objects) - len(active)
	clear(s.objects[len(active):])
	s.objects = active
	return removed
}

// Objects returns a copy of the stored objects.
func (s *Store) Objects() []GameObject {
	out := make([]GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Reset drops every object and replaces the player.
func (s *Store) Reset(p PlayerState) {
	clear(s.objects)
	s.objects = s.objects[:0]
	s.Player = p
}
