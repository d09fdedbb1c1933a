package dedup

// State is the process-spanning dedup state: every fingerprint ever
// observed (append-only, never pruned) plus the idle-notified flag for the
// current dry spell.
type State struct {
	seen         map[string]struct{}
	IdleNotified bool
}

func NewState() *State {
	return &State{seen: make(map[string]struct{})}
}

// Restore rebuilds a State from a persisted fingerprint list.
func Restore(fingerprints []string, idleNotified bool) *State {
	s := NewState()
	s.IdleNotified = idleNotified
	for _, fp := range fingerprints {
		s.seen[fp] = struct{}{}
	}
	return s
}

func (s *State) Has(fingerprint string) bool {
	_, ok := s.seen[fingerprint]
	return ok
}

func (s *State) Add(fingerprint string) {
	s.seen[fingerprint] = struct{}{}
}

func (s *State) Len() int {
	return len(s.seen)
}

// Fingerprints returns the observed set as a slice, in no particular order.
func (s *State) Fingerprints() []string {
	out := make([]string, 0, len(s.seen))
	for fp := range s.seen {
		out = append(out, fp)
	}
	return out
}
