package checkout

import (
	"time"

	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// OrderLinkWorkflowName is the public identifier for registering the workflow.
	OrderLinkWorkflowName = "checkout.workflows.OrderLink"
	// OrderLinkTaskQueue is the queue consumed by the checkout worker.
	OrderLinkTaskQueue = "ORDER_LINK"
	// OrderLinkExecutionTimeout bounds a whole run, so a checkout fails
	// instead of waiting forever when no worker polls the queue.
	OrderLinkExecutionTimeout = 30 * time.Second
)

// OrderLinkWorkflowInput captures the order snapshot to render.
type OrderLinkWorkflowInput struct {
	Request checkoutdomain.OrderRequest
}

// OrderLinkWorkflow renders the checkout link for a confirmed cart.
func OrderLinkWorkflow(ctx workflow.Context, input OrderLinkWorkflowInput) (*checkoutdomain.OrderLink, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderLinkWorkflow started", "reference", input.Request.Reference, "items", len(input.Request.Items))
	link, err := sequences.RunOrderLinkSequence(ctx, input.Request)
	if err != nil {
		logger.Error("OrderLinkWorkflow failed", "reference", input.Request.Reference, "error", err)
		return nil, err
	}
	logger.Info("OrderLinkWorkflow completed", "reference", input.Request.Reference)
	return link, nil
}
