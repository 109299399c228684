package college

import (
	"log"
	"strings"

	"github.com/kcetprep/kcetprep/internal/predict"
)

const unknownLocation = "Unknown"

// splitCode separates a leading CET code from the display name:
// "E001 R V College" -> ("E001", "R V College").
func splitCode(collegeName string) (code, name string) {
	parts := strings.SplitN(collegeName, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], collegeName
}

type groupKey struct{ college, branch string }

// FromRecords groups records by college and branch, in first-seen order.
func FromRecords(records []predict.HistoricalRecord, logger *log.Logger) []College {
	order := []groupKey{}
	groups := map[groupKey][]predict.HistoricalRecord{}
	for _, r := range records {
		k := groupKey{r.CollegeName, r.Branch}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]College, 0, len(order))
	for _, k := range order {
		name := strings.TrimSpace(k.college)
		branch := strings.TrimSpace(k.branch)
		if name == "" || branch == "" {
			logger.Printf("skipping record with empty college name or branch: %q, %q", name, branch)
			continue
		}
		code, display := splitCode(name)
		ranks := map[string]int{}
		for _, r := range groups[k] {
			if strings.TrimSpace(r.Category) == "" || strings.TrimSpace(r.ClosingRank) == "" {
				logger.Printf("skipping record with empty category or rank: %s, %s, %q, %q", name, branch, r.Category, r.ClosingRank)
				continue
			}
			rank, err := predict.ParseClosingRank(r.ClosingRank)
			if err != nil {
				logger.Printf("invalid rank format: %q for %s, %s, %s", r.ClosingRank, name, branch, r.Category)
				continue
			}
			ranks[CutoffKey(r.Year, r.Category)] = rank
		}
		out = append(out, College{
			CETCode:     code,
			Name:        display,
			Location:    unknownLocation,
			Branch:      branch,
			CutoffRanks: ranks,
		})
	}
	return out
}
