package availability_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"golang.org/x/sync/errgroup"
)

// ResolveBatchSlots разрешает несколько дат параллельно. Запросы независимы,
// общего изменяемого состояния между ними нет. Порядок ответа совпадает с порядком запросов.
func (s *AvailabilityService) ResolveBatchSlots(ctx context.Context, reqs []domain.ResolutionRequest) ([]*domain.Resolution, error) {
	if maxDates := s.cfg.Engine.BatchMaxDates; maxDates > 0 && len(reqs) > maxDates {
		return nil, fmt.Errorf("%w: batch of %d dates exceeds %d", domain.ErrInvalidDate, len(reqs), maxDates)
	}

	// Ошибки вызывающего проверяем до первого запроса в бэкенд
	for _, req := range reqs {
		if err := validateRequest(req); err != nil {
			return nil, err
		}
	}

	s.logger.Info("availability.batch.started", out.LogFields{
		"dates": len(reqs),
	})

	results := make([]*domain.Resolution, len(reqs))

	group, groupCtx := errgroup.WithContext(ctx)
	limit := s.cfg.Engine.BatchConcurrency
	if limit <= 0 {
		limit = 1
	}
	group.SetLimit(limit)

	for i, req := range reqs {
		i, req := i, req
		group.Go(func() error {
			resolution, err := s.ResolveSlots(groupCtx, req)
			if err != nil {
				return err
			}
			results[i] = resolution
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
