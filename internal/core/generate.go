package core

import (
	"context"
	"errors"
	"fmt"

	"evolve/pkg/domain"
)

// ErrPlacementFailed is returned when a capped generate loop runs out of attempts.
var ErrPlacementFailed = errors.New("placement failed")

// TryGenerate is the generate-and-test loop: it draws candidates from next and
// offers each to place until one is accepted.
//
// With maxAttempts <= 0 the loop never gives up; termination then depends
// only on the candidate distribution. With a positive cap it returns
// ErrPlacementFailed after that many rejections. A cancelled ctx stops the loop
// between candidates. The returned count is the number of candidates tried.
func TryGenerate(ctx context.Context, maxAttempts int, next func() domain.Organism, place func(domain.Organism) bool) (domain.Organism, int, error) {
	for attempts := 1; ; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, attempts - 1, err
		}
		candidate := next()
		if place(candidate) {
			return candidate, attempts, nil
		}
		if maxAttempts > 0 && attempts >= maxAttempts {
			return nil, attempts, fmt.Errorf("%w after %d attempts", ErrPlacementFailed, attempts)
		}
	}
}
