package college

import "strings"

// College is one college/branch pair with its historical cutoffs.
type College struct {
	ID       int64  `json:"id"`
	CETCode  string `json:"cet_code"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Branch   string `json:"branch"`
	// CutoffRanks maps "YEAR_CATEGORY" (e.g. "2023_GM") to a closing rank.
	CutoffRanks map[string]int `json:"cutoff_ranks"`
}

func CutoffKey(year, category string) string {
	return strings.TrimSpace(year) + "_" + strings.ToUpper(strings.TrimSpace(category))
}

type ListOpts struct {
	Q      string
	Branch string
	Limit  int
	Offset int
}
