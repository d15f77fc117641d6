package usecase

import "sync"

// generationCounter hands out monotonically increasing sequence numbers per
// key. A fetch takes a number when it starts; only the response whose number
// is still the latest may be applied to shared state, so a slow in-flight
// response can never land after newer state.
type generationCounter struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newGenerationCounter() *generationCounter {
	return &generationCounter{latest: make(map[string]uint64)}
}

// Begin starts a new generation for the key and returns its number.
func (g *generationCounter) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return g.latest[key]
}

// Publish runs apply if gen is still the latest for the key, and reports
// whether it ran. The re-check and apply happen in one critical section, so
// a response that passes the check cannot be overtaken before it lands.
func (g *generationCounter) Publish(key string, gen uint64, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[key] != gen {
		return false
	}
	apply()
	return true
}
