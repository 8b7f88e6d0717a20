package domain

// Fixed response shapes the generation rules allow. The gate emits
// InsufficientContextText locally without a generation call; the other
// two come back verbatim from a backend honouring the rules prompt.
const (
	// InsufficientContextText is the fixed response when retrieval
	// confidence is too low or the excerpt does not cover the question.
	InsufficientContextText = "Insufficient context in the handbook sections I know."

	// RefusalText is the fixed response to policy-circumvention or
	// targeted-manipulation requests.
	RefusalText = "I cannot help with that as it would violate college policy."
)

// Citation points a reader at the handbook section an answer drew from.
type Citation struct {
	// SectionTitle is the cited section's title.
	SectionTitle string

	// URL is the external handbook reference, empty when unknown.
	URL string
}

// Answer is the final output for one live question.
type Answer struct {
	// Text is the answer body: a grounded answer, or one of the fixed
	// refusal / insufficient-context strings.
	Text string

	// Citations lists the context chunks' sections, in context order.
	// Empty when the confidence gate stayed closed.
	Citations []Citation

	// MaxSimilarity is the retrieval confidence behind the answer.
	MaxSimilarity float64
}
