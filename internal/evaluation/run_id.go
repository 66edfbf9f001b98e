package evaluation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"qfrbench/internal/export"
)

const runIDSuffixBytes = 4

// NewRunID returns a sortable run identifier.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now(), rand.Reader)
}

// NewRunIDWithRand builds a run identifier from now and random bytes read from r.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	buf := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(buf)), nil
}

// FormatRunID combines the export timestamp with a suffix.
func FormatRunID(now time.Time, suffix string) string {
	return now.Format(export.TimestampLayout) + "-" + suffix
}
