package college

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcetprep/kcetprep/internal/db/dbtest"
	"github.com/kcetprep/kcetprep/internal/predict"
)

var quiet = log.New(io.Discard, "", 0)

func records() predict.StaticSource {
	return predict.StaticSource{
		{CollegeName: "E001 R V College of Engineering", Branch: "CS", Category: "GM", ClosingRank: "1,234", Year: "2022"},
		{CollegeName: "E001 R V College of Engineering", Branch: "CS", Category: "gm", ClosingRank: "1100", Year: "2023"},
		{CollegeName: "E001 R V College of Engineering", Branch: "CS", Category: "2AG", ClosingRank: "N/A", Year: "2023"},
		{CollegeName: "E001 R V College of Engineering", Branch: "EC", Category: "GM", ClosingRank: "2100", Year: "2023"},
		{CollegeName: "E002 BMS College", Branch: "CS", Category: "", ClosingRank: "1800", Year: "2023"},
		{CollegeName: "  ", Branch: "CS", Category: "GM", ClosingRank: "10", Year: "2023"},
		{CollegeName: "Solo", Branch: "ME", Category: "SCG", ClosingRank: "40000", Year: "2021"},
	}
}

func TestFromRecords(t *testing.T) {
	got := FromRecords(records(), quiet)
	require.Len(t, got, 4)

	rv := got[0]
	assert.Equal(t, "E001", rv.CETCode)
	assert.Equal(t, "R V College of Engineering", rv.Name)
	assert.Equal(t, "Unknown", rv.Location)
	assert.Equal(t, "CS", rv.Branch)
	assert.Equal(t, map[string]int{"2022_GM": 1234, "2023_GM": 1100}, rv.CutoffRanks)

	assert.Equal(t, "EC", got[1].Branch)
	assert.Empty(t, got[2].CutoffRanks, "blank category is skipped")
	assert.Equal(t, "Solo", got[3].CETCode)
	assert.Equal(t, "Solo", got[3].Name)
}

func TestSeederSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(dbtest.Open(t))
	s := &Seeder{Source: records(), Store: store, Log: quiet}

	n, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second run is a no-op")

	cs, err := store.List(ctx, ListOpts{Branch: "cs"})
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, 1100, cs[0].CutoffRanks["2023_GM"])

	byName, err := store.List(ctx, ListOpts{Q: "bms"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	one, err := store.Get(ctx, byName[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "E002", one.CETCode)

	_, err = store.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeederEmptyDataset(t *testing.T) {
	store := NewSQLStore(dbtest.Open(t))
	n, err := (&Seeder{Source: predict.StaticSource{}, Store: store, Log: quiet}).Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
