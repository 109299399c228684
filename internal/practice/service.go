package practice

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/validation"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrNoQuestions = errors.New("no questions available for subject")
	ErrEmptyTest   = errors.New("no questions in this test")
	ErrNoAnswers   = errors.New("no answers submitted")
)

type Service struct {
	Store    *SQLStore
	Now      func() time.Time
	Shuffle  func(n int, swap func(i, j int))
	validate *validator.Validate
}

func NewService(store *SQLStore) *Service {
	return &Service{
		Store:    store,
		Now:      time.Now,
		Shuffle:  rand.Shuffle,
		validate: validation.New(),
	}
}

func normalizeQuestion(q *Question) {
	q.Subject = strings.TrimSpace(q.Subject)
	q.Text = strings.TrimSpace(q.Text)
	q.CorrectAnswer = strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
}

func (s *Service) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	normalizeQuestion(&q)
	if err := validation.Struct(s.validate, q); err != nil {
		return Question{}, err
	}
	return s.Store.InsertQuestion(ctx, q)
}

func (s *Service) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	normalizeQuestion(&q)
	if err := validation.Struct(s.validate, q); err != nil {
		return Question{}, err
	}
	if err := s.Store.UpdateQuestion(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *Service) GetQuestion(ctx context.Context, id int64) (Question, error) {
	return s.Store.GetQuestion(ctx, id)
}

func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	return s.Store.DeleteQuestion(ctx, id)
}

func (s *Service) ListQuestions(ctx context.Context, subject string) ([]Question, error) {
	return s.Store.ListQuestions(ctx, strings.TrimSpace(subject))
}

// CreateTest draws a random sample of up to MaxTestQuestions from the subject.
func (s *Service) CreateTest(ctx context.Context, subject, name string) (Test, error) {
	t := Test{Subject: strings.TrimSpace(subject), Name: strings.TrimSpace(name)}
	if err := validation.Struct(s.validate, t); err != nil {
		return Test{}, err
	}
	ids, err := s.Store.QuestionIDs(ctx, t.Subject)
	if err != nil {
		return Test{}, err
	}
	if len(ids) == 0 {
		return Test{}, errors.Wrapf(ErrNoQuestions, "%s", t.Subject)
	}
	s.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > MaxTestQuestions {
		ids = ids[:MaxTestQuestions]
	}
	if t.Name == "" {
		t.Name = "Unnamed Test"
	}
	t.CreatedAt = s.Now().Unix()
	return s.Store.InsertTest(ctx, t, ids)
}

func (s *Service) ListTests(ctx context.Context, subject string) ([]Test, error) {
	return s.Store.ListTests(ctx, strings.TrimSpace(subject))
}

func (s *Service) DeleteTest(ctx context.Context, id int64) error {
	return s.Store.DeleteTest(ctx, id)
}

// StartTest returns the test's questions in a fresh random order without answers.
func (s *Service) StartTest(ctx context.Context, id int64) (Session, error) {
	t, err := s.Store.GetTest(ctx, id)
	if err != nil {
		return Session{}, err
	}
	qs, err := s.Store.TestQuestions(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if len(qs) == 0 {
		return Session{}, ErrEmptyTest
	}
	s.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	for i := range qs {
		qs[i].CorrectAnswer = ""
	}
	return Session{Test: t, Questions: qs}, nil
}

// SubmitTest scores answers keyed by question id. Every submitted answer
// counts toward the total; unknown questions score nothing.
func (s *Service) SubmitTest(ctx context.Context, id int64, answers map[int64]string) (Result, error) {
	if _, err := s.Store.GetTest(ctx, id); err != nil {
		return Result{}, err
	}
	if len(answers) == 0 {
		return Result{}, ErrNoAnswers
	}
	res := Result{TestID: id, Total: len(answers)}
	for qid, ans := range answers {
		q, err := s.Store.GetQuestion(ctx, qid)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Result{}, err
		}
		if strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), strings.TrimSpace(ans)) {
			res.Score++
		}
	}
	return res, nil
}
