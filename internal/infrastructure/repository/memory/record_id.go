package memory

import (
	"crypto/rand"
	"encoding/hex"
)

// newRecordID mints an Airtable-shaped record id for locally created rows.
func newRecordID() string {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		return "recfallback000"
	}
	return "rec" + hex.EncodeToString(buf)
}
