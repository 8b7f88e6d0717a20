package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driving"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
)

// Ensure EvalService implements the interface.
var _ driving.EvalService = (*EvalService)(nil)

// EvalService replays a labelled question set through the exact
// query-time pipeline - retrieval and gated answer synthesis - and
// scores chunk-level Hit@1 over the answerable normal cases.
type EvalService struct {
	retriever *Retriever
	answerer  *Answerer
}

// NewEvalService creates a new evaluation service.
func NewEvalService(retriever *Retriever, answerer *Answerer) *EvalService {
	return &EvalService{retriever: retriever, answerer: answerer}
}

// Evaluate runs every gold case and returns a result row per case plus
// the run summary. A failing case produces a labelled row and counts
// as a miss when scored; it never aborts the run.
func (s *EvalService) Evaluate(ctx context.Context, cases []domain.GoldCase) ([]domain.EvalCaseResult, *domain.EvalSummary, error) {
	logger.Section("Evaluation")
	logger.Info("Replaying %d gold cases", len(cases))

	summary := &domain.EvalSummary{RunID: uuid.New().String()}
	results := make([]domain.EvalCaseResult, 0, len(cases))

	for _, c := range cases {
		row := domain.EvalCaseResult{
			QID:       c.QID,
			Question:  c.Question,
			Type:      c.Type,
			GoldChunk: c.GoldChunk,
			Notes:     c.Notes,
		}

		res, err := s.retriever.Retrieve(ctx, c.Question)
		if err != nil {
			logger.Warn("Case %s: retrieval failed: %v", c.QID, err)
			row.Answer = fmt.Sprintf("ERROR: %v", err)
			if c.Scored() {
				miss := 0
				row.Hit1 = &miss
				summary.EligibleCases++
			}
			results = append(results, row)
			continue
		}

		row.PredChunk = res.TopChunkID()

		if c.Scored() {
			summary.EligibleCases++
			hit := 0
			if row.PredChunk == c.GoldChunk {
				hit = 1
				summary.Hits++
			}
			row.Hit1 = &hit
		}

		answer, err := s.answerer.Synthesize(ctx, c.Question, res)
		if err != nil {
			logger.Warn("Case %s: answer synthesis failed: %v", c.QID, err)
			row.Answer = fmt.Sprintf("ERROR: %v", err)
		} else {
			row.Answer = answer.Text
		}

		results = append(results, row)
	}

	if summary.EligibleCases > 0 {
		logger.Info("Hit@1 = %.3f (%d/%d)", summary.HitRate(), summary.Hits, summary.EligibleCases)
	} else {
		logger.Info("No answerable normal cases in the gold set")
	}

	return results, summary, nil
}
