package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingID returns "<unix millis>-<8 random hex chars>".
// Unique enough for one store; not meant to be unguessable.
func GenerateBookingID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

// GenerateViewID identifies one view of the store in change events.
func GenerateViewID() string {
	return uuid.NewString()
}
