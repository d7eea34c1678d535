package types

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so stores are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts record id generation.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces UUID v7 ids, falling back to v4 if v7 generation
// fails.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
