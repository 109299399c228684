package predict

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVHeaderTolerance(t *testing.T) {
	in := "\ufeffYear, closing_rank ,Branch,College Name,CATEGORY,Notes\n" +
		"2023,\"1,050\",CS,E001 RV College,GM,x\n" +
		"2022,900,ME,E002 BMS College,1G\n"
	records, warnings, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)

	assert.Equal(t, HistoricalRecord{
		CollegeName: "E001 RV College", Branch: "CS", Category: "GM", ClosingRank: "1,050", Year: "2023",
	}, records[0])
	assert.Equal(t, "1G", records[1].Category)
}

func TestParseCSVMissingColumns(t *testing.T) {
	in := "CollegeName,Category\nE001 RV College,GM\n"
	records, _, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ClosingRank)
	assert.Empty(t, records[0].Branch)
}

func TestParseCSVEmptyInput(t *testing.T) {
	records, warnings, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kcet.csv")
	require.NoError(t, os.WriteFile(path, []byte("Year,CollegeName,Branch,Category,ClosingRank\n2023,A,CS,GM,10\n"), 0o644))

	records, _, err := FileSource{Path: path}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].CollegeName)

	_, _, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}.Records(context.Background())
	assert.Error(t, err)
}

func TestWriteCSVReadsBack(t *testing.T) {
	in := []HistoricalRecord{
		{CollegeName: "E001 RV College, Bengaluru", Branch: "CS", Category: "GM", ClosingRank: "1,050", Year: "2023"},
		{CollegeName: "E002 BMS College", Branch: "EC", Category: "2AG", ClosingRank: "--", Year: "2022"},
	}
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, in))

	out, warnings, err := ParseCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, in, out)
}
