package practice

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcetprep/kcetprep/internal/db/dbtest"
	"github.com/kcetprep/kcetprep/internal/validation"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewSQLStore(dbtest.Open(t)))
}

func addQuestions(t *testing.T, svc *Service, subject string, n int) []Question {
	t.Helper()
	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := svc.CreateQuestion(context.Background(), Question{
			Subject:       subject,
			Text:          fmt.Sprintf("%s question %d", subject, i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "b",
		})
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

func TestCreateQuestionValidates(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateQuestion(context.Background(), Question{Subject: "History", Text: "?", CorrectAnswer: "E"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "subject")
	assert.Contains(t, verr.Fields, "option_a")
	assert.Contains(t, verr.Fields, "correct_answer")

	q := addQuestions(t, svc, "Physics", 1)[0]
	assert.Equal(t, "B", q.CorrectAnswer)
	got, err := svc.GetQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, got)
}

func TestQuestionCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	qs := addQuestions(t, svc, "Chemistry", 2)
	addQuestions(t, svc, "Biology", 1)

	all, err := svc.ListQuestions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	chem, err := svc.ListQuestions(ctx, "Chemistry")
	require.NoError(t, err)
	assert.Len(t, chem, 2)

	q := qs[0]
	q.Text = "updated"
	q.CorrectAnswer = "d"
	_, err = svc.UpdateQuestion(ctx, q)
	require.NoError(t, err)
	got, err := svc.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Text)
	assert.Equal(t, "D", got.CorrectAnswer)

	require.NoError(t, svc.DeleteQuestion(ctx, q.ID))
	_, err = svc.GetQuestion(ctx, q.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(svc.DeleteQuestion(ctx, q.ID), ErrNotFound))

	q.ID = 9999
	_, err = svc.UpdateQuestion(ctx, q)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateTestSamplesUpToLimit(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateTest(ctx, "Mathematics", "Mock 1")
	assert.True(t, errors.Is(err, ErrNoQuestions))

	_, err = svc.CreateTest(ctx, "Art", "Mock 1")
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))

	addQuestions(t, svc, "Mathematics", 5)
	small, err := svc.CreateTest(ctx, "Mathematics", "")
	require.NoError(t, err)
	assert.Equal(t, 5, small.QuestionCount)
	assert.Equal(t, "Unnamed Test", small.Name)

	addQuestions(t, svc, "Mathematics", 70)
	big, err := svc.CreateTest(ctx, "Mathematics", "Mock 2")
	require.NoError(t, err)
	assert.Equal(t, MaxTestQuestions, big.QuestionCount)

	tests, err := svc.ListTests(ctx, "Mathematics")
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, MaxTestQuestions, tests[1].QuestionCount)

	others, err := svc.ListTests(ctx, "Physics")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestStartTestHidesAnswers(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addQuestions(t, svc, "Physics", 4)
	test, err := svc.CreateTest(ctx, "Physics", "Mock")
	require.NoError(t, err)

	sess, err := svc.StartTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mock", sess.Test.Name)
	require.Len(t, sess.Questions, 4)
	for _, q := range sess.Questions {
		assert.Empty(t, q.CorrectAnswer)
	}

	_, err = svc.StartTest(ctx, 424242)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStartTestEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	qs := addQuestions(t, svc, "Biology", 1)
	test, err := svc.CreateTest(ctx, "Biology", "Mock")
	require.NoError(t, err)

	// deleting the only question cascades its link away
	require.NoError(t, svc.DeleteQuestion(ctx, qs[0].ID))
	_, err = svc.StartTest(ctx, test.ID)
	assert.True(t, errors.Is(err, ErrEmptyTest))
}

func TestSubmitTestScores(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	qs := addQuestions(t, svc, "Chemistry", 3)
	test, err := svc.CreateTest(ctx, "Chemistry", "Mock")
	require.NoError(t, err)

	_, err = svc.SubmitTest(ctx, test.ID, nil)
	assert.True(t, errors.Is(err, ErrNoAnswers))

	res, err := svc.SubmitTest(ctx, test.ID, map[int64]string{
		qs[0].ID: " b ",
		qs[1].ID: "B",
		qs[2].ID: "A",
		99999:    "B",
	})
	require.NoError(t, err)
	assert.Equal(t, Result{TestID: test.ID, Score: 2, Total: 4}, res)

	_, err = svc.SubmitTest(ctx, 424242, map[int64]string{qs[0].ID: "B"})
	assert.True(t, errors.Is(err, ErrNotFound))
}
