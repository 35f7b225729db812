package model

import "time"

// SlotLock is an advisory lock document keyed by the exact
// (date, start, end) triple of a candidate booking. The unique _id
// makes concurrent creates for the same slot collide at the storage
// layer; ExpiresAt lets a TTL index reap locks leaked by crashes.
type SlotLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}
