// Package matcher implements the three-question problem matcher: a
// network-free way to land on a taxonomy category by tallying the category
// votes attached to each selected answer option.
package matcher

import (
	"fmt"

	"github.com/gita-guidance-search-api/internal/taxonomy"
)

// Phase is the matcher's lifecycle phase
type Phase int

const (
	Closed Phase = iota
	Asking
	Resolved
)

// Option is one selectable answer; choosing it votes for its categories.
type Option struct {
	Label string
	Votes []taxonomy.Slug
}

// Question is one step of the fixed decision tree
type Question struct {
	ID      string
	Prompt  string
	Options []Option
}

// Questions is the fixed tree. Exactly three questions; every option votes
// for one or more taxonomy slugs.
var Questions = []Question{
	{
		ID:     "focus",
		Prompt: "What weighs on you most right now?",
		Options: []Option{
			{Label: "My work and duties", Votes: []taxonomy.Slug{taxonomy.Leadership, taxonomy.DecisionMaking}},
			{Label: "The people around me", Votes: []taxonomy.Slug{taxonomy.Relationships, taxonomy.Anger}},
			{Label: "How I see myself", Votes: []taxonomy.Slug{taxonomy.SelfDoubt, taxonomy.Confusion}},
			{Label: "What lies ahead", Votes: []taxonomy.Slug{taxonomy.Anxiety, taxonomy.Fear}},
		},
	},
	{
		ID:     "feeling",
		Prompt: "How does it show up in you?",
		Options: []Option{
			{Label: "Restless worry I can't switch off", Votes: []taxonomy.Slug{taxonomy.Anxiety}},
			{Label: "I avoid facing it", Votes: []taxonomy.Slug{taxonomy.Fear}},
			{Label: "Irritation and short temper", Votes: []taxonomy.Slug{taxonomy.Anger}},
			{Label: "Going back and forth, unable to commit", Votes: []taxonomy.Slug{taxonomy.DecisionMaking, taxonomy.Confusion}},
		},
	},
	{
		ID:     "seeking",
		Prompt: "What do you most want to find?",
		Options: []Option{
			{Label: "Calm and steadiness", Votes: []taxonomy.Slug{taxonomy.Anxiety}},
			{Label: "Courage and self-belief", Votes: []taxonomy.Slug{taxonomy.Fear, taxonomy.SelfDoubt}},
			{Label: "Clarity about my path", Votes: []taxonomy.Slug{taxonomy.Confusion, taxonomy.DecisionMaking}},
			{Label: "Harmony with others", Votes: []taxonomy.Slug{taxonomy.Relationships}},
		},
	},
}

// State is an immutable snapshot of a matcher run. Transitions return a new
// State and never mutate the receiver, so the tally logic is testable
// without a UI harness.
type State struct {
	Phase   Phase
	Step    int
	answers map[int][]taxonomy.Slug
	Match   taxonomy.Slug
}

// NewState returns the initial, collapsed state
func NewState() State {
	return State{Phase: Closed}
}

func (s State) cloneAnswers() map[int][]taxonomy.Slug {
	out := make(map[int][]taxonomy.Slug, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Open transitions Closed -> Question(0)
func (s State) Open() State {
	if s.Phase != Closed {
		return s
	}
	return State{Phase: Asking, Step: 0, answers: s.cloneAnswers()}
}

// Answer records the selected option's votes against the current question,
// replacing any prior answer for it, and advances. Answering the final
// question resolves the run.
func (s State) Answer(optionIndex int) (State, error) {
	if s.Phase != Asking {
		return s, fmt.Errorf("cannot answer in phase %d", s.Phase)
	}
	q := Questions[s.Step]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return s, fmt.Errorf("question %q has no option %d", q.ID, optionIndex)
	}

	answers := s.cloneAnswers()
	answers[s.Step] = q.Options[optionIndex].Votes

	if s.Step == len(Questions)-1 {
		return State{
			Phase:   Resolved,
			Step:    s.Step,
			answers: answers,
			Match:   tally(answers),
		}, nil
	}
	return State{Phase: Asking, Step: s.Step + 1, answers: answers}, nil
}

// Back returns to the previous question. Recorded answers are kept; they
// are only replaced when the question is answered again.
func (s State) Back() State {
	if s.Phase != Asking || s.Step == 0 {
		return s
	}
	return State{Phase: Asking, Step: s.Step - 1, answers: s.cloneAnswers()}
}

// Reset discards all recorded answers and returns to the first question
func (s State) Reset() State {
	return State{Phase: Asking, Step: 0, answers: map[int][]taxonomy.Slug{}}
}

// tally picks the plurality slug across all recorded votes. Ties resolve
// by canonical taxonomy order, not map iteration order.
func tally(answers map[int][]taxonomy.Slug) taxonomy.Slug {
	counts := make(map[taxonomy.Slug]int)
	for _, votes := range answers {
		for _, slug := range votes {
			counts[slug]++
		}
	}

	winner := taxonomy.DefaultSlug
	best := 0
	for _, slug := range taxonomy.Order {
		if counts[slug] > best {
			best = counts[slug]
			winner = slug
		}
	}
	return winner
}

// Matcher drives a run and fires the match callback exactly once when the
// quiz resolves.
type Matcher struct {
	state   State
	onMatch func(taxonomy.Slug)
	fired   bool
}

// New creates a Matcher; onMatch may be nil
func New(onMatch func(taxonomy.Slug)) *Matcher {
	return &Matcher{state: NewState(), onMatch: onMatch}
}

// State returns the current snapshot
func (m *Matcher) State() State {
	return m.state
}

// Open opts in to the quiz
func (m *Matcher) Open() {
	m.state = m.state.Open()
}

// Answer selects an option for the current question
func (m *Matcher) Answer(optionIndex int) error {
	next, err := m.state.Answer(optionIndex)
	if err != nil {
		return err
	}
	m.state = next
	if next.Phase == Resolved && !m.fired {
		m.fired = true
		if m.onMatch != nil {
			m.onMatch(next.Match)
		}
	}
	return nil
}

// Back steps to the previous question
func (m *Matcher) Back() {
	m.state = m.state.Back()
}

// Reset clears all answers and allows the callback to fire again on the
// next completed run
func (m *Matcher) Reset() {
	m.state = m.state.Reset()
	m.fired = false
}
