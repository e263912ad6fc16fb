package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateBookingRef creates a human-readable booking reference.
// Format: BK-YYYYMMDD-HHMMSS-XXXXXXXX. The suffix carries 32 bits of
// randomness; booking_ref is unique in the database, so the window for a
// collision is bookings created within the same second.
func GenerateBookingRef() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%08X", rand.Uint32())

	return fmt.Sprintf("BK-%s-%s-%s", datePart, timePart, randomPart)
}
