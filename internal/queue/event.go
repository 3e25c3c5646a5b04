// Package queue defines message payloads exchanged over the message broker.
package queue

// SignoffRecordedEvent is published after a sign-off is committed to the
// ledger. It carries enough for downstream consumers (audit log, reporting)
// to work without querying the primary database.
type SignoffRecordedEvent struct {
	EventID        string   `json:"event_id"`
	Kind           string   `json:"kind"`
	Date           string   `json:"date"`
	SignedBy       []string `json:"signed_by"`
	Overwrote      bool     `json:"overwrote"`
	OverwritesUsed int      `json:"overwrites_used"`
	SignedAt       string   `json:"signed_at"`
}
