package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TrackingNumberLength is the fixed length of generated tracking numbers.
const TrackingNumberLength = 8

// NewTrackingNumber derives a short tracking number from a random UUID:
// the first eight hex characters, uppercased. Collisions are possible;
// callers persist under a unique index and retry on conflict.
func NewTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:TrackingNumberLength])
}
