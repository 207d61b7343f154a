package domain

import "time"

type Unit struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Faculty string `yaml:"faculty"`
}

// Announcement is one record extracted from a listing page. Fingerprint is
// derived from Title and Link and set by the scanner.
type Announcement struct {
	Title       string
	Link        string
	Date        string
	Summary     string
	Fingerprint string
}

type DedupRecord struct {
	Unit        string
	Fingerprint string
	Title       string
	SentAt      time.Time
}

type Subscription struct {
	UserID   int64
	Username string
	Unit     string
	Active   bool
}

type Stats struct {
	TotalUsers             int64
	ActiveUsers            int64
	TotalSentAnnouncements int64
}
