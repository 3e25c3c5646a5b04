package model

import "time"

// ChecklistKind enumerates the three checklist cadences. The values
// match the `kind` column of the signoffs table, so the type doubles
// as the wire representation.
type ChecklistKind string

const (
	KindDaily   ChecklistKind = "daily"
	KindWeekly  ChecklistKind = "weekly"
	KindMonthly ChecklistKind = "monthly"
)

// Valid reports whether k is one of the known checklist kinds.
func (k ChecklistKind) Valid() bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly:
		return true
	}
	return false
}

// OverwriteCap is the number of times an existing sign-off may be
// resubmitted before its record locks. Once OverwritesUsed reaches the
// cap the record is immutable.
const OverwriteCap = 2

// SignoffRecord mirrors one row of the `signoffs` table: a single
// attestation that a checklist of a given kind was completed on a given
// calendar date. At most one record exists per (Kind, Date) pair.
//
// Date is a calendar date in "YYYY-MM-DD" form; it is validated at the
// HTTP boundary and stored as-is so that lexicographic order equals
// chronological order. Optional fields are nil when never supplied.
type SignoffRecord struct {
	ID             uint64        // signoffs.id
	Kind           ChecklistKind // signoffs.kind
	Date           string        // signoffs.signoff_date
	ManagerName    *string       // signoffs.manager_name
	DeputyName     *string       // signoffs.deputy_name
	DirectorName   *string       // signoffs.director_name
	OverwritesUsed int           // signoffs.overwrites_used
	SignedAt       time.Time     // signoffs.signed_at
	FridgeTemp     *float64      // signoffs.fridge_temp (°C, daily checklist only)
	Notes          *string       // signoffs.notes
}

// Locked reports whether the record has exhausted its overwrite budget.
func (r SignoffRecord) Locked() bool {
	return r.OverwritesUsed >= OverwriteCap
}

// Signers returns the non-empty signer names on the record, used when
// composing notifications and published events.
func (r SignoffRecord) Signers() []string {
	var out []string
	for _, p := range []*string{r.ManagerName, r.DeputyName, r.DirectorName} {
		if p != nil && *p != "" {
			out = append(out, *p)
		}
	}
	return out
}
