package helper

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber builds the human-readable pickup code shown to the
// customer and the kitchen: NYN-MMDD-XXXX. It is a display label only; the
// payment reference is the order's real key, so a rare suffix collision on
// the same day is harmless.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("NYN-%02d%02d-%04d", int(now.Month()), now.Day(), randomSuffix())
}

// GenerateConsultationRef builds the reference returned for catering requests.
func GenerateConsultationRef(now time.Time) string {
	return fmt.Sprintf("CAT-%s-%04d", now.Format("20060102"), randomSuffix())
}

func randomSuffix() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failing means the process is in a bad way; fall back
		// to a clock-derived suffix rather than refusing the order.
		return time.Now().UnixNano() % 10000
	}
	return n.Int64()
}
