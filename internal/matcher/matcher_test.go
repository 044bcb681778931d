package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gita-guidance-search-api/internal/taxonomy"
)

func TestQuestionsAreWellFormed(t *testing.T) {
	require.Len(t, Questions, 3)
	for _, q := range Questions {
		assert.NotEmpty(t, q.Options, "question %q has no options", q.ID)
		for _, opt := range q.Options {
			require.NotEmpty(t, opt.Votes, "option %q votes for nothing", opt.Label)
			for _, slug := range opt.Votes {
				assert.True(t, taxonomy.IsKnown(slug), "option %q votes for unknown slug %q", opt.Label, slug)
			}
		}
	}
}

func answerAll(t *testing.T, s State, options ...int) State {
	t.Helper()
	var err error
	for _, opt := range options {
		s, err = s.Answer(opt)
		require.NoError(t, err)
	}
	return s
}

func TestPluralityWins(t *testing.T) {
	// self-doubt+confusion, anxiety, anxiety -> {anxiety: 2, confusion: 1,
	// self-doubt: 1}
	s := answerAll(t, NewState().Open(), 2, 0, 0)

	require.Equal(t, Resolved, s.Phase)
	assert.Equal(t, taxonomy.Anxiety, s.Match)
}

func TestTieBreaksByCanonicalOrder(t *testing.T) {
	// anxiety+fear, fear, anxiety -> both at 2; anxiety precedes fear in
	// the canonical order
	s := answerAll(t, NewState().Open(), 3, 1, 0)

	require.Equal(t, Resolved, s.Phase)
	assert.Equal(t, taxonomy.Anxiety, s.Match)
}

func TestOpenOnlyFromClosed(t *testing.T) {
	s := NewState()
	assert.Equal(t, Closed, s.Phase)

	s = s.Open()
	assert.Equal(t, Asking, s.Phase)
	assert.Equal(t, 0, s.Step)

	// Open is a no-op mid-quiz
	mid, err := s.Answer(0)
	require.NoError(t, err)
	assert.Equal(t, mid, mid.Open())
}

func TestAnswerValidation(t *testing.T) {
	s := NewState()

	_, err := s.Answer(0)
	assert.Error(t, err, "answering while closed must fail")

	s = s.Open()
	_, err = s.Answer(-1)
	assert.Error(t, err)
	_, err = s.Answer(len(Questions[0].Options))
	assert.Error(t, err)
}

func TestBackKeepsAnswersAndReanswerReplaces(t *testing.T) {
	s := NewState().Open()

	// Answer question 0 with relationships+anger, then go back and
	// replace it with self-doubt+confusion.
	s, err := s.Answer(1)
	require.NoError(t, err)
	require.Equal(t, 1, s.Step)

	s = s.Back()
	require.Equal(t, 0, s.Step)

	s = answerAll(t, s, 2, 2, 3)

	require.Equal(t, Resolved, s.Phase)
	// With replacement: confusion, self-doubt, anger, relationships all at
	// one vote, so confusion wins on canonical order. If the stale answer
	// had been kept, relationships and anger would lead instead.
	assert.Equal(t, taxonomy.Confusion, s.Match)
}

func TestBackAtFirstQuestionIsNoOp(t *testing.T) {
	s := NewState().Open()
	assert.Equal(t, s, s.Back())
}

func TestResetClearsAnswers(t *testing.T) {
	s := answerAll(t, NewState().Open(), 1, 2)
	s = s.Reset()

	assert.Equal(t, Asking, s.Phase)
	assert.Equal(t, 0, s.Step)

	// Only the fresh answers count after reset
	s = answerAll(t, s, 3, 0, 0)
	assert.Equal(t, taxonomy.Anxiety, s.Match)
}

func TestMatcherCallbackFiresExactlyOnce(t *testing.T) {
	var got []taxonomy.Slug
	m := New(func(slug taxonomy.Slug) {
		got = append(got, slug)
	})

	m.Open()
	require.NoError(t, m.Answer(2))
	require.NoError(t, m.Answer(0))
	require.NoError(t, m.Answer(0))

	require.Equal(t, []taxonomy.Slug{taxonomy.Anxiety}, got)

	// A completed run cannot re-fire
	err := m.Answer(0)
	assert.Error(t, err)
	assert.Len(t, got, 1)

	// A reset starts a new run with its own single callback
	m.Reset()
	require.NoError(t, m.Answer(3))
	require.NoError(t, m.Answer(1))
	require.NoError(t, m.Answer(0))
	assert.Len(t, got, 2)
}

func TestStateIsImmutable(t *testing.T) {
	s0 := NewState().Open()
	s1, err := s0.Answer(0)
	require.NoError(t, err)

	assert.Equal(t, 0, s0.Step)
	assert.Equal(t, 1, s1.Step)

	// Diverging from the same snapshot must not share answer storage
	s2, err := s0.Answer(1)
	require.NoError(t, err)

	r1 := answerAll(t, s1, 0, 0)
	r2 := answerAll(t, s2, 2, 3)
	assert.Equal(t, taxonomy.Anxiety, r1.Match)
	assert.Equal(t, taxonomy.Relationships, r2.Match)
}
