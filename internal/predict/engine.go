package predict

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kcetprep/kcetprep/internal/validation"
)

// Engine predicts colleges for a rank from a historical cutoff dataset.
// It keeps no state between calls: the dataset is reloaded every time.
type Engine struct {
	source   Source
	sink     Sink
	validate *validator.Validate
}

type Option func(*Engine)

// WithSink mirrors every diagnostic message to s.
func WithSink(s Sink) Option { return func(e *Engine) { e.sink = s } }

func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{source: src, validate: validation.New()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Prediction is the outcome of one Predict call.
type Prediction struct {
	Query       Query       `json:"query"`
	Window      Window      `json:"window"`
	Results     []Result    `json:"results"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// EmptyMessage is what callers show when no college falls in the window.
func (p Prediction) EmptyMessage() string {
	branch := p.Query.Branch
	if branch == "" {
		branch = "Any"
	}
	return fmt.Sprintf("No colleges found for rank %d, category %s, branch %s in the defined window.",
		p.Query.Rank, p.Query.Category, branch)
}

func (e *Engine) check(q Query) error {
	err := e.validate.Struct(q)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		reason := "is invalid"
		switch fe.Tag() {
		case "min":
			reason = "must be a positive rank"
		case "required":
			reason = "is required"
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: reason})
	}
	return out
}

// Predict returns the colleges whose closing rank lies in the window around
// rank, filtered by category and, when non-empty, branch. Only invalid input
// is an error; dataset problems are reported through Diagnostics.
func (e *Engine) Predict(ctx context.Context, rank int, category, branch string) (Prediction, error) {
	q := Query{Rank: rank, Category: normalize(category), Branch: normalize(branch)}
	if err := e.check(q); err != nil {
		return Prediction{}, err
	}

	p := Prediction{Query: q, Window: NewWindow(rank), Results: []Result{}}
	d := &p.Diagnostics
	d.sink = e.sink

	records := e.load(ctx, d)

	relevant := records[:0:0]
	for _, r := range records {
		if normalize(r.Category) != q.Category {
			continue
		}
		if q.Branch != "" && normalize(r.Branch) != q.Branch {
			continue
		}
		relevant = append(relevant, r)
	}
	d.Matched = len(relevant)
	d.addf("after category/branch filter: %d rows", d.Matched)
	d.addf("filtering closing ranks between %d and %d", p.Window.Lower, p.Window.Upper)

	for _, r := range relevant {
		closing, err := ParseClosingRank(r.ClosingRank)
		if err != nil {
			d.ParseFailures++
			d.addf("cannot parse closing rank %q for %s (%s, %s, %s)",
				r.ClosingRank, strings.TrimSpace(r.CollegeName), strings.TrimSpace(r.Branch), r.Category, r.Year)
			continue
		}
		if !p.Window.Contains(closing) {
			continue
		}
		p.Results = append(p.Results, Result{
			CollegeName: strings.TrimSpace(r.CollegeName),
			Branch:      strings.TrimSpace(r.Branch),
			Category:    normalize(r.Category),
			ClosingRank: closing,
			Chance:      Classify(rank, closing),
			Year:        strings.TrimSpace(r.Year),
		})
	}
	sort.SliceStable(p.Results, func(i, j int) bool {
		return p.Results[i].ClosingRank < p.Results[j].ClosingRank
	})
	d.InWindow = len(p.Results)
	if d.ParseFailures > 0 {
		d.addf("%d records skipped with unparsable closing rank", d.ParseFailures)
	}
	d.addf("found %d colleges in rank window [%d, %d]", d.InWindow, p.Window.Lower, p.Window.Upper)
	return p, nil
}

// Options lists the distinct categories and branches in the dataset.
func (e *Engine) Options(ctx context.Context) (Catalog, Diagnostics) {
	d := Diagnostics{sink: e.sink}
	records := e.load(ctx, &d)

	cats := map[string]struct{}{}
	branches := map[string]struct{}{}
	for _, r := range records {
		if c := normalize(r.Category); c != "" {
			cats[c] = struct{}{}
		}
		if b := strings.TrimSpace(r.Branch); b != "" {
			branches[b] = struct{}{}
		}
	}
	return Catalog{Categories: sortedKeys(cats), Branches: sortedKeys(branches)}, d
}

func (e *Engine) load(ctx context.Context, d *Diagnostics) []HistoricalRecord {
	if e.source == nil {
		d.LoadError = &DataLoadError{Source: "<none>", Err: fmt.Errorf("no dataset configured")}
		d.LoadFailure = d.LoadError.Error()
		d.addf("%s", d.LoadFailure)
		return nil
	}
	records, warnings, err := e.source.Records(ctx)
	for _, w := range warnings {
		d.addf("%s", w)
	}
	if err != nil {
		d.LoadError = &DataLoadError{Source: e.source.String(), Err: err}
		d.LoadFailure = d.LoadError.Error()
		d.addf("%s", d.LoadFailure)
		return nil
	}
	d.Loaded = len(records)
	d.addf("loaded %d rows from %s", d.Loaded, e.source)
	return records
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
