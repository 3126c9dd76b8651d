package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/checkout/ports"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/checkout"
)

var (
	_ ports.LinkBuilder = (*TemporalCheckout)(nil)
	_ ports.LinkBuilder = (*InlineCheckout)(nil)
)

// TemporalCheckout renders order links through a workflow on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the link builder.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: checkoutworkflows.OrderLinkTaskQueue}
}

// BuildLink starts the order link workflow and waits for its result. The
// workflow id is derived from the order reference, so a retried request with
// the same reference joins the existing run.
func (o *TemporalCheckout) BuildLink(ctx context.Context, request domain.OrderRequest) (*domain.OrderLink, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	workflowID := orderLinkWorkflowID(request.Reference)
	options := client.StartWorkflowOptions{
		ID:                       workflowID,
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: checkoutworkflows.OrderLinkExecutionTimeout,
	}
	input := checkoutworkflows.OrderLinkWorkflowInput{Request: request}
	run, err := o.client.ExecuteWorkflow(ctx, options, checkoutworkflows.OrderLinkWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var link domain.OrderLink
	if err := run.Get(ctx, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// InlineCheckout renders links in-process, for tests or when Temporal is unavailable.
type InlineCheckout struct{}

func NewInlineCheckout() *InlineCheckout {
	return &InlineCheckout{}
}

func (o *InlineCheckout) BuildLink(_ context.Context, request domain.OrderRequest) (*domain.OrderLink, error) {
	return request.Render()
}

func orderLinkWorkflowID(reference string) string {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		reference = uuid.NewString()
	}
	return fmt.Sprintf("order-link-%s", reference)
}
