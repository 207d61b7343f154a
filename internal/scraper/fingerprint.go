package scraper

import (
	"crypto/sha256"
	"encoding/hex"

	"announcer/internal/domain"
)

// Fingerprint is the lowercase hex SHA-256 of the title immediately followed
// by the link. Date and summary are ignored.
func Fingerprint(a domain.Announcement) string {
	sum := sha256.Sum256([]byte(a.Title + a.Link))

	return hex.EncodeToString(sum[:])
}
