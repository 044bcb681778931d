package taxonomy

// Slug identifies one life-problem category. The set of slugs is closed:
// categories are added through the admin path, never by end users, so the
// classifier, the AI prompt, and the matcher all derive from this one table.
type Slug string

const (
	Anxiety        Slug = "anxiety"
	Fear           Slug = "fear"
	Confusion      Slug = "confusion"
	Leadership     Slug = "leadership"
	Relationships  Slug = "relationships"
	SelfDoubt      Slug = "self-doubt"
	Anger          Slug = "anger"
	DecisionMaking Slug = "decision-making"
)

// DefaultSlug is the category used when no keyword matches, so downstream
// ranking always has something to query.
const DefaultSlug = Confusion

// Order is the canonical listing order. It also serves as the documented
// tie-break for the problem matcher's vote tally.
var Order = []Slug{
	Anxiety,
	Fear,
	Confusion,
	Leadership,
	Relationships,
	SelfDoubt,
	Anger,
	DecisionMaking,
}

// Keywords maps each category to its trigger words for the fallback
// classifier. Matching is case-insensitive substring matching.
var Keywords = map[Slug][]string{
	Anxiety:        {"anxiety", "anxious", "worry", "worried", "stress", "stressed", "overwhelm", "panic", "restless", "tense"},
	Fear:           {"fear", "afraid", "scared", "terrified", "dread", "frightened"},
	Confusion:      {"confus", "lost", "unclear", "unsure", "don't know what", "no direction", "aimless"},
	Leadership:     {"lead", "leader", "team", "manage", "responsibilit", "duty", "in charge"},
	Relationships:  {"relationship", "family", "friend", "partner", "marriage", "lonely", "loneliness", "conflict with"},
	SelfDoubt:      {"doubt", "worthless", "inadequate", "insecure", "confidence", "not good enough", "failure", "imposter"},
	Anger:          {"anger", "angry", "rage", "furious", "resent", "irritat", "frustrat"},
	DecisionMaking: {"decision", "decide", "choice", "choose", "crossroads", "dilemma", "torn between"},
}

var known = func() map[Slug]bool {
	m := make(map[Slug]bool, len(Order))
	for _, s := range Order {
		m[s] = true
	}
	return m
}()

// IsKnown reports whether s belongs to the closed taxonomy.
func IsKnown(s Slug) bool {
	return known[s]
}

// Filter returns the known slugs from in, deduplicated, preserving input
// order. Unknown slugs are dropped rather than treated as an error.
func Filter(in []Slug) []Slug {
	seen := make(map[Slug]bool, len(in))
	out := make([]Slug, 0, len(in))
	for _, s := range in {
		if known[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Strings converts a slug list for prompt construction and SQL parameters.
func Strings(slugs []Slug) []string {
	out := make([]string, len(slugs))
	for i, s := range slugs {
		out[i] = string(s)
	}
	return out
}
