package domain

// GoldCaseTypeNormal marks an evaluation case that counts towards the
// Hit@1 denominator when it carries a gold chunk. Other types
// (adversarial probes, off-topic controls) still produce result rows
// but are excluded from the hit rate.
const GoldCaseTypeNormal = "normal"

// GoldCase is one labelled question from the evaluation gold set.
type GoldCase struct {
	// QID is the case identifier from the gold set.
	QID string

	// Question is the question text replayed through retrieval.
	Question string

	// Type classifies the case; only "normal" cases are scored.
	Type string

	// GoldChunk is the chunk ID a correct retrieval should rank first.
	// Empty when the question has no answer in the corpus.
	GoldChunk string

	// Notes is free-form annotator commentary, carried through to the
	// results file untouched.
	Notes string
}

// Scored reports whether the case counts towards the Hit@1 denominator.
func (c GoldCase) Scored() bool {
	return c.Type == GoldCaseTypeNormal && c.GoldChunk != ""
}

// EvalCaseResult is one row of the evaluation results table.
type EvalCaseResult struct {
	// QID, Question, Type, GoldChunk and Notes are copied from the case.
	QID       string
	Question  string
	Type      string
	GoldChunk string
	Notes     string

	// PredChunk is the top-ranked retrieved chunk ID, empty when
	// retrieval produced no context.
	PredChunk string

	// Hit1 is 1 when PredChunk equals GoldChunk, 0 when it does not,
	// and nil for cases outside the Hit@1 denominator.
	Hit1 *int

	// Answer is the synthesised answer text, captured for qualitative
	// review. For a failed case it holds a labelled error message so
	// the aggregate statistics stay computable.
	Answer string
}

// EvalSummary aggregates an evaluation run.
type EvalSummary struct {
	// RunID uniquely identifies the evaluation run.
	RunID string

	// EligibleCases is the number of scored cases (the denominator).
	EligibleCases int

	// Hits is the number of scored cases with a correct top-1 chunk.
	Hits int
}

// HitRate returns Hits / EligibleCases. It must only be called when
// EligibleCases is non-zero; callers report "no answerable cases"
// instead of dividing by zero.
func (s EvalSummary) HitRate() float64 {
	return float64(s.Hits) / float64(s.EligibleCases)
}
