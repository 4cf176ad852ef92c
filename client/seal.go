package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/onflow/flow-client-go/model/flow"
)

var errNotFinal = errors.New("transaction status is not final")

// WaitForSeal polls the result of a transaction until it is sealed or
// expired. It returns the final result, the first failed request, or the
// context error.
func (c *Client) WaitForSeal(ctx context.Context, id flow.Identifier) (*flow.TransactionResult, error) {
	backoff, err := retry.NewConstant(c.sealPollInterval)
	if err != nil {
		return nil, fmt.Errorf("could not create seal poll backoff: %w", err)
	}

	lg := c.log.With().Hex("tx_id", id[:]).Logger()

	start := time.Now()
	status := flow.TransactionStatusUnknown
	var result *flow.TransactionResult

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.GetTransactionResult(ctx, id)
		if err != nil {
			return err
		}

		if r.Status != status {
			lg.Debug().
				Str("status", r.Status.String()).
				Str("previous_status", status.String()).
				Msg("transaction status changed")
			status = r.Status
		}

		if !r.Status.IsFinal() {
			return retry.RetryableError(errNotFinal)
		}

		result = r
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	switch result.Status {
	case flow.TransactionStatusSealed:
		c.metrics.TransactionSealed(time.Since(start))
		lg.Info().Dur("waited", time.Since(start)).Msg("transaction sealed")
	case flow.TransactionStatusExpired:
		c.metrics.TransactionExpired()
		lg.Warn().Msg("transaction expired")
	}

	return result, nil
}
