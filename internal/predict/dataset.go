package predict

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Source yields the full historical dataset. Row-level problems are returned
// as warnings; an error means the dataset as a whole could not be read.
type Source interface {
	Records(ctx context.Context) ([]HistoricalRecord, []string, error)
	String() string
}

// FileSource reads a CSV file from disk on every call.
type FileSource struct {
	Path string
}

func (s FileSource) Records(ctx context.Context) ([]HistoricalRecord, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	return ParseCSV(f)
}

func (s FileSource) String() string { return s.Path }

// StaticSource serves a fixed in-memory dataset.
type StaticSource []HistoricalRecord

func (s StaticSource) Records(context.Context) ([]HistoricalRecord, []string, error) {
	out := make([]HistoricalRecord, len(s))
	copy(out, s)
	return out, nil, nil
}

func (s StaticSource) String() string { return fmt.Sprintf("memory(%d records)", len(s)) }

type column int

const (
	colCollege column = iota
	colBranch
	colCategory
	colClosingRank
	colYear
)

var headerAliases = map[string]column{
	"collegename": colCollege,
	"college":     colCollege,
	"branch":      colBranch,
	"course":      colBranch,
	"category":    colCategory,
	"cat":         colCategory,
	"closingrank": colClosingRank,
	"cutoffrank":  colClosingRank,
	"rank":        colClosingRank,
	"year":        colYear,
}

func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// ParseCSV converts raw tabular input into records. Headers are matched by
// name in any order; unknown columns are ignored and missing ones leave the
// field empty. Malformed rows are reported as warnings and skipped.
func ParseCSV(r io.Reader) ([]HistoricalRecord, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	hdr, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "read header")
	}
	idx := map[column]int{}
	for i, h := range hdr {
		if c, ok := headerAliases[headerKey(h)]; ok {
			if _, dup := idx[c]; !dup {
				idx[c] = i
			}
		}
	}

	var (
		records  []HistoricalRecord
		warnings []string
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			warnings = append(warnings, fmt.Sprintf("bad csv data at line %d: %v", perr.Line, perr.Err))
			continue
		}
		if err != nil {
			return records, warnings, errors.Wrap(err, "read row")
		}
		field := func(c column) string {
			i, ok := idx[c]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		records = append(records, HistoricalRecord{
			CollegeName: field(colCollege),
			Branch:      field(colBranch),
			Category:    field(colCategory),
			ClosingRank: field(colClosingRank),
			Year:        field(colYear),
		})
	}
	return records, warnings, nil
}

// WriteCSV writes records with the header ParseCSV reads back.
func WriteCSV(w io.Writer, records []HistoricalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"College Name", "Branch", "Category", "Closing Rank", "Year"}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, r := range records {
		if err := cw.Write([]string{r.CollegeName, r.Branch, r.Category, r.ClosingRank, r.Year}); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}
