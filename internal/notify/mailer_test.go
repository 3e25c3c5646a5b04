package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pharmaops/pharmacy-signoff/internal/model"
)

func strp(s string) *string { return &s }

func floatp(f float64) *float64 { return &f }

func TestSubjectVariesByKindAndOverwrite(t *testing.T) {
	rec := model.SignoffRecord{Kind: model.KindDaily, Date: "2024-03-04"}

	assert.Equal(t, "Daily checklist signed off for 2024-03-04", subjectFor(rec, false))
	assert.Equal(t, "Daily checklist sign-off amended for 2024-03-04", subjectFor(rec, true))

	rec.Kind = model.KindMonthly
	assert.Equal(t, "Monthly checklist signed off for 2024-03-04", subjectFor(rec, false))
}

func TestBodyContainsSuppliedFields(t *testing.T) {
	rec := model.SignoffRecord{
		Kind:           model.KindDaily,
		Date:           "2024-03-04",
		ManagerName:    strp("A. Manager"),
		DeputyName:     strp("B. Deputy"),
		FridgeTemp:     floatp(4.5),
		Notes:          strp("all good"),
		OverwritesUsed: 1,
		SignedAt:       time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
	}

	body := bodyFor(rec, true)
	assert.Contains(t, body, "Manager: A. Manager")
	assert.Contains(t, body, "Deputy: B. Deputy")
	assert.Contains(t, body, "Fridge temperature: 4.5 C")
	assert.Contains(t, body, "Notes: all good")
	assert.Contains(t, body, "overwrite 1 of 2")
	assert.NotContains(t, body, "Director:")

	// A fresh sign-off does not mention overwrites.
	assert.NotContains(t, bodyFor(rec, false), "overwrite")
}
