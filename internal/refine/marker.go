package refine

import "sync"

// MarkerStore remembers the "\ No newline at end of file" marker text as it
// actually appeared in the input. The wording varies with the diff producer's
// locale, so whenever riffle has to synthesize such a line it prefers the
// captured text over the built-in English default.
//
// One store is shared between the pipeline (which captures) and the refiner
// workers (which read), hence the lock.
type MarkerStore struct {
	mu   sync.Mutex
	text string
	ok   bool
}

// NewMarkerStore returns an empty store.
func NewMarkerStore() *MarkerStore {
	return &MarkerStore{}
}

// Capture records the marker line as seen in the input.
func (s *MarkerStore) Capture(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.ok = true
}

// Current returns the captured marker text, or false if none was captured
// yet.
func (s *MarkerStore) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.ok
}
