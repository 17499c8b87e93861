package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingRef produces a human-quotable booking reference like
// bk_1718450000_042137.
func GenerateBookingRef() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("bk_%d_%06d", timestamp, randomNum.Int64())
}

// GenerateVenueID produces a canonical 24-hex venue identifier.
func GenerateVenueID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:12])
}
