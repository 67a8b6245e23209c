package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/roivest/return-calculator-backend/internal/model"
)

// RecomputeSummary reports the outcome of a recompute-all run.
type RecomputeSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
}

// RecomputeAll re-runs the engine over every saved calculation and stores
// the fresh results. Rows whose cached result already matches are left
// untouched. Used after imports and by the nightly scheduler, so an
// engine fix propagates to stored records without manual edits.
func (s *CalculationService) RecomputeAll(ctx context.Context, concurrency int) (RecomputeSummary, error) {
	calculations, err := s.calculationRepo.GetCalculations(model.CalculationFilter{})
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("failed to load calculations for recompute: %w", err)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	updated := make(chan string, len(calculations))

	for _, calculation := range calculations {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result := computeResult(calculation)
			if result == calculation.CalculatedResult {
				return nil
			}

			if err := s.calculationRepo.UpdateResult(calculation.ID, result); err != nil {
				return fmt.Errorf("failed to store recomputed result for %s: %w", calculation.ID, err)
			}
			updated <- calculation.ID
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return RecomputeSummary{}, err
	}
	close(updated)

	summary := RecomputeSummary{Total: len(calculations)}
	for range updated {
		summary.Updated++
	}

	log.Printf("recompute finished: %d calculations, %d updated", summary.Total, summary.Updated)

	return summary, nil
}
