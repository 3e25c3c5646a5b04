package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaops/pharmacy-signoff/internal/model"
	"github.com/pharmaops/pharmacy-signoff/internal/testutil"
)

func TestSignoffUpsertCreateThenLock(t *testing.T) {
	db := testutil.OpenTestDB(t, "signoff_lock")
	repo := NewSignoffRepo(db)
	ctx := context.Background()

	sub := Submission{
		Kind:        model.KindDaily,
		Date:        "2024-03-04",
		ManagerName: testutil.Str("A. Manager"),
		DeputyName:  testutil.Str("B. Deputy"),
		FridgeTemp:  testutil.Float(4.5),
	}

	// First submission creates the record.
	res, err := repo.Upsert(ctx, sub)
	require.NoError(t, err)
	assert.False(t, res.Overwrote)
	assert.Equal(t, 0, res.Record.OverwritesUsed)
	assert.False(t, res.Record.Locked())

	// Second and third submissions overwrite and count up.
	res, err = repo.Upsert(ctx, sub)
	require.NoError(t, err)
	assert.True(t, res.Overwrote)
	assert.Equal(t, 1, res.Record.OverwritesUsed)

	res, err = repo.Upsert(ctx, sub)
	require.NoError(t, err)
	assert.True(t, res.Overwrote)
	assert.Equal(t, 2, res.Record.OverwritesUsed)
	assert.True(t, res.Record.Locked())

	// Fourth submission is rejected and the row is untouched.
	_, err = repo.Upsert(ctx, Submission{
		Kind:        model.KindDaily,
		Date:        "2024-03-04",
		ManagerName: testutil.Str("Z. Intruder"),
	})
	assert.ErrorIs(t, err, ErrLocked)

	recs, err := repo.ListByDateAsc(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].OverwritesUsed)
	require.NotNil(t, recs[0].ManagerName)
	assert.Equal(t, "A. Manager", *recs[0].ManagerName)
}

func TestSignoffUpsertKeysAreIndependent(t *testing.T) {
	db := testutil.OpenTestDB(t, "signoff_keys")
	repo := NewSignoffRepo(db)
	ctx := context.Background()

	// Same date, different kind: separate records.
	daily := Submission{Kind: model.KindDaily, Date: "2024-03-04", ManagerName: testutil.Str("M"), DeputyName: testutil.Str("D")}
	weekly := Submission{Kind: model.KindWeekly, Date: "2024-03-04", ManagerName: testutil.Str("M"), DeputyName: testutil.Str("D")}

	res, err := repo.Upsert(ctx, daily)
	require.NoError(t, err)
	assert.False(t, res.Overwrote)

	res, err = repo.Upsert(ctx, weekly)
	require.NoError(t, err)
	assert.False(t, res.Overwrote)

	recs, err := repo.ListByDateAsc(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSignoffOverwriteKeepsOmittedFields(t *testing.T) {
	db := testutil.OpenTestDB(t, "signoff_fallback")
	repo := NewSignoffRepo(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, Submission{
		Kind:        model.KindDaily,
		Date:        "2024-03-05",
		ManagerName: testutil.Str("A. Manager"),
		DeputyName:  testutil.Str("B. Deputy"),
		FridgeTemp:  testutil.Float(3.0),
		Notes:       testutil.Str("all good"),
	})
	require.NoError(t, err)

	// Overwrite supplying only a new manager: everything else survives.
	res, err := repo.Upsert(ctx, Submission{
		Kind:        model.KindDaily,
		Date:        "2024-03-05",
		ManagerName: testutil.Str("C. Cover"),
	})
	require.NoError(t, err)
	assert.True(t, res.Overwrote)
	require.NotNil(t, res.Record.DeputyName)
	assert.Equal(t, "B. Deputy", *res.Record.DeputyName)
	require.NotNil(t, res.Record.FridgeTemp)
	assert.Equal(t, 3.0, *res.Record.FridgeTemp)
	require.NotNil(t, res.Record.Notes)
	assert.Equal(t, "all good", *res.Record.Notes)
	assert.Equal(t, "C. Cover", *res.Record.ManagerName)

	// The stored row agrees with the returned record.
	recs, err := repo.ListByDateAsc(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "C. Cover", *recs[0].ManagerName)
	assert.Equal(t, "B. Deputy", *recs[0].DeputyName)
}

func TestSignoffHistoryOrderedByDate(t *testing.T) {
	db := testutil.OpenTestDB(t, "signoff_order")
	repo := NewSignoffRepo(db)
	ctx := context.Background()

	// Insert out of chronological order.
	for _, date := range []string{"2024-03-11", "2024-03-04", "2024-03-29", "2024-03-18"} {
		_, err := repo.Upsert(ctx, Submission{
			Kind:        model.KindDaily,
			Date:        date,
			ManagerName: testutil.Str("M"),
			DeputyName:  testutil.Str("D"),
		})
		require.NoError(t, err)
	}

	recs, err := repo.ListByDateAsc(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	want := []string{"2024-03-04", "2024-03-11", "2024-03-18", "2024-03-29"}
	for i, rec := range recs {
		assert.Equal(t, want[i], rec.Date)
	}
}
