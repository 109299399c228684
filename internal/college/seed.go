package college

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/predict"
)

// Seeder fills the colleges table from the cutoff dataset once.
type Seeder struct {
	Source predict.Source
	Store  *SQLStore
	Log    *log.Logger
}

// Seed returns the number of colleges inserted. It does nothing when the
// table already has rows or the dataset has no records.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	n, err := s.Store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Log.Printf("colleges table already contains data, skipping seeding")
		return 0, nil
	}

	records, warnings, err := s.Source.Records(ctx)
	for _, w := range warnings {
		s.Log.Printf("bad csv data in record: %s", w)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "load dataset %s", s.Source)
	}
	if len(records) == 0 {
		s.Log.Printf("no records found in %s, seeding aborted", s.Source)
		return 0, nil
	}

	inserted, err := s.Store.InsertMany(ctx, FromRecords(records, s.Log))
	if err != nil {
		return 0, errors.Wrap(err, "seed colleges")
	}
	s.Log.Printf("seeded %d colleges into the database", inserted)
	return inserted, nil
}
