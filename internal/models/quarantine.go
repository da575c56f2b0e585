package models

import "time"

// QuarantinedRecord is a raw provider payload that failed boundary
// validation and was parked for later inspection instead of being loaded.
type QuarantinedRecord struct {
	ID            int64     `db:"id" json:"id"`
	MatchKey      string    `db:"match_key" json:"match_key"`
	Source        string    `db:"source" json:"source"`
	Payload       []byte    `db:"payload" json:"payload"`
	Reason        string    `db:"reason" json:"reason"`
	QuarantinedAt time.Time `db:"quarantined_at" json:"quarantined_at"`
}
