package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
)

// BuildOrderLinkActivityName renders the checkout link for an order snapshot.
const BuildOrderLinkActivityName = "checkout.activities.BuildOrderLink"

// Activities groups the checkout activities.
type Activities struct{}

func NewActivities() *Activities {
	return &Activities{}
}

// BuildOrderLink formats the order message and composes the deep link.
// Validation failures are returned as non-retryable: retrying cannot fix them.
func (a *Activities) BuildOrderLink(ctx context.Context, request checkoutdomain.OrderRequest) (*checkoutdomain.OrderLink, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("BuildOrderLink activity started", "reference", request.Reference, "items", len(request.Items))
	link, err := request.Render()
	if err != nil {
		logger.Error("BuildOrderLink activity failed", "reference", request.Reference, "error", err)
		if isValidationError(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidOrder", err)
		}
		return nil, err
	}
	logger.Info("BuildOrderLink activity completed", "reference", request.Reference, "total", link.Total)
	return link, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, checkoutdomain.ErrEmptyCart) ||
		errors.Is(err, checkoutdomain.ErrInvalidDestination) ||
		errors.Is(err, checkoutdomain.ErrInvalidBaseURL)
}
