package domain

import "time"

type SessionStore interface {
	Create() *Session
	Get(id string) (*Session, bool)
	GetOrCreate(id string) *Session
	Delete(id string)
	Sweep(ttl time.Duration) int
}
