package predict

// HistoricalRecord is one row of the cutoff dataset: the closing rank of a
// college/branch/category combination in a given exam year.
type HistoricalRecord struct {
	CollegeName string `json:"college_name"`
	Branch      string `json:"branch"`
	Category    string `json:"category"`
	ClosingRank string `json:"closing_rank"` // raw text, may carry thousands separators
	Year        string `json:"year"`
}

type Chance string

const (
	ChanceHigh     Chance = "High"
	ChanceLow      Chance = "Low"
	ChanceModerate Chance = "Moderate"
)

// Result is a single predicted college for a query.
type Result struct {
	CollegeName string `json:"college_name"`
	Branch      string `json:"branch"`
	Category    string `json:"category"`
	ClosingRank int    `json:"closing_rank"`
	Chance      Chance `json:"chance"`
	Year        string `json:"year"`
}

// Query is a normalized prediction request.
type Query struct {
	Rank     int    `json:"rank" validate:"min=1"`
	Category string `json:"category" validate:"required"`
	Branch   string `json:"branch,omitempty"`
}

// Catalog lists the filter values present in the dataset.
type Catalog struct {
	Categories []string `json:"categories"`
	Branches   []string `json:"branches"`
}
