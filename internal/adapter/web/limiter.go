package web

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiter caps chat submissions per session. A non-positive rate disables it.
type limiter struct {
	perMinute int

	mu       sync.Mutex
	sessions map[string]*rate.Limiter
}

func newLimiter(perMinute int) *limiter {
	return &limiter{
		perMinute: perMinute,
		sessions:  make(map[string]*rate.Limiter),
	}
}

func (l *limiter) Allow(sessionID string) bool {
	if l.perMinute <= 0 {
		return true
	}

	l.mu.Lock()
	lim, ok := l.sessions[sessionID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)
		l.sessions[sessionID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

// prune forgets sessions for which keep returns false.
func (l *limiter) prune(keep func(id string) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id := range l.sessions {
		if !keep(id) {
			delete(l.sessions, id)
		}
	}
}
