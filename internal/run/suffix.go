package run

import (
	"time"

	"github.com/google/uuid"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// UniqueSuffix returns the local wall-clock time as HHMMSS followed by four
// random lowercase alphanumeric characters.
func UniqueSuffix(now time.Time) string {
	id := uuid.New()
	buf := make([]byte, 0, 10)
	buf = now.AppendFormat(buf, "150405")
	for _, b := range id[:4] {
		buf = append(buf, suffixAlphabet[int(b)%len(suffixAlphabet)])
	}
	return string(buf)
}
