package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/checkout"
)

// RunOrderLinkSequence executes the activities that turn an order snapshot into a link.
func RunOrderLinkSequence(ctx workflow.Context, request checkoutdomain.OrderRequest) (*checkoutdomain.OrderLink, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order link sequence started", "reference", request.Reference)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var link checkoutdomain.OrderLink
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), checkoutactivities.BuildOrderLinkActivityName, request).Get(ctx, &link)
	if err != nil {
		logger.Error("order link sequence failed", "reference", request.Reference, "error", err)
		return nil, err
	}
	logger.Info("order link sequence completed", "reference", request.Reference)
	return &link, nil
}
