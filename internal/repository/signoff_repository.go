package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pharmaops/pharmacy-signoff/internal/model"
)

type SignoffRepo struct{ DB *sql.DB }

func NewSignoffRepo(db *sql.DB) *SignoffRepo { return &SignoffRepo{DB: db} }

// Submission carries the caller-supplied fields of one sign-off request.
// Optional fields are nil when the caller omitted them; on an overwrite a
// nil field keeps whatever the stored record already holds.
type Submission struct {
	Kind         model.ChecklistKind
	Date         string // YYYY-MM-DD, validated by the handler
	ManagerName  *string
	DeputyName   *string
	DirectorName *string
	FridgeTemp   *float64
	Notes        *string
}

// UpsertResult reports what the ledger did with a submission.
type UpsertResult struct {
	Record    model.SignoffRecord
	Overwrote bool
}

const signoffColumns = "id,kind,signoff_date,manager_name,deputy_name,director_name,overwrites_used,signed_at,fridge_temp,notes"

// Upsert applies one sign-off submission to the ledger.
//
// A missing (kind, date) record is inserted with overwrites_used = 0. An
// existing record is rewritten in place with the overwrite counter
// incremented, until the counter reaches model.OverwriteCap; after that the
// record is immutable and ErrLocked is returned without touching the row.
// The increment is guarded by `overwrites_used < cap` inside the UPDATE
// itself, so two racing submissions cannot push the counter past the cap:
// the loser's update matches zero rows and surfaces as ErrLocked.
func (r *SignoffRepo) Upsert(ctx context.Context, sub Submission) (UpsertResult, error) {
	existing, err := r.get(ctx, sub.Kind, sub.Date)
	if err == sql.ErrNoRows {
		rec, err := r.insert(ctx, sub)
		if err == nil {
			return UpsertResult{Record: rec}, nil
		}
		if !isDuplicate(err) {
			return UpsertResult{}, err
		}
		// Lost a create race; re-read and fall through to the overwrite path.
		existing, err = r.get(ctx, sub.Kind, sub.Date)
		if err != nil {
			return UpsertResult{}, err
		}
	} else if err != nil {
		return UpsertResult{}, err
	}

	if existing.Locked() {
		return UpsertResult{}, ErrLocked
	}
	rec, err := r.overwrite(ctx, existing, sub)
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{Record: rec, Overwrote: true}, nil
}

// ListByDateAsc returns the full ledger ordered by calendar date
// ascending. Dates are stored as YYYY-MM-DD strings, so the string sort
// is chronological.
func (r *SignoffRepo) ListByDateAsc(ctx context.Context) ([]model.SignoffRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+signoffColumns+" FROM signoffs ORDER BY signoff_date ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SignoffRecord
	for rows.Next() {
		rec, err := scanSignoff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SignoffRepo) get(ctx context.Context, kind model.ChecklistKind, date string) (model.SignoffRecord, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+signoffColumns+" FROM signoffs WHERE kind=? AND signoff_date=? LIMIT 1",
		string(kind), date)
	return scanSignoff(row)
}

func (r *SignoffRepo) insert(ctx context.Context, sub Submission) (model.SignoffRecord, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO signoffs
		   (kind, signoff_date, manager_name, deputy_name, director_name, overwrites_used, signed_at, fridge_temp, notes)
		 VALUES (?,?,?,?,?,0,?,?,?)`,
		string(sub.Kind), sub.Date, sub.ManagerName, sub.DeputyName, sub.DirectorName, now, sub.FridgeTemp, sub.Notes)
	if err != nil {
		return model.SignoffRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.SignoffRecord{}, err
	}
	return model.SignoffRecord{
		ID:           uint64(id),
		Kind:         sub.Kind,
		Date:         sub.Date,
		ManagerName:  sub.ManagerName,
		DeputyName:   sub.DeputyName,
		DirectorName: sub.DirectorName,
		SignedAt:     now,
		FridgeTemp:   sub.FridgeTemp,
		Notes:        sub.Notes,
	}, nil
}

// overwrite rewrites an unlocked record with the merged fields and bumps
// the counter. The counter guard makes the write conditional: zero rows
// affected means another submission locked the record between our read
// and this write.
func (r *SignoffRepo) overwrite(ctx context.Context, existing model.SignoffRecord, sub Submission) (model.SignoffRecord, error) {
	merged := existing
	merged.SignedAt = time.Now().UTC().Truncate(time.Second)
	if sub.ManagerName != nil {
		merged.ManagerName = sub.ManagerName
	}
	if sub.DeputyName != nil {
		merged.DeputyName = sub.DeputyName
	}
	if sub.DirectorName != nil {
		merged.DirectorName = sub.DirectorName
	}
	if sub.FridgeTemp != nil {
		merged.FridgeTemp = sub.FridgeTemp
	}
	if sub.Notes != nil {
		merged.Notes = sub.Notes
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE signoffs
		    SET manager_name=?, deputy_name=?, director_name=?, fridge_temp=?, notes=?,
		        signed_at=?, overwrites_used=overwrites_used+1
		  WHERE kind=? AND signoff_date=? AND overwrites_used<?`,
		merged.ManagerName, merged.DeputyName, merged.DirectorName, merged.FridgeTemp, merged.Notes,
		merged.SignedAt, string(existing.Kind), existing.Date, model.OverwriteCap)
	if err != nil {
		return model.SignoffRecord{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.SignoffRecord{}, err
	}
	if n == 0 {
		return model.SignoffRecord{}, ErrLocked
	}
	merged.OverwritesUsed = existing.OverwritesUsed + 1
	return merged, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanSignoff(s scanner) (model.SignoffRecord, error) {
	var rec model.SignoffRecord
	var kind string
	err := s.Scan(&rec.ID, &kind, &rec.Date, &rec.ManagerName, &rec.DeputyName,
		&rec.DirectorName, &rec.OverwritesUsed, &rec.SignedAt, &rec.FridgeTemp, &rec.Notes)
	if err != nil {
		return model.SignoffRecord{}, err
	}
	rec.Kind = model.ChecklistKind(kind)
	return rec, nil
}
