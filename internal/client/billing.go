package client

import (
	"context"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// BillingClient implements crm.BillingClient.
type BillingClient struct {
	transactions *ResourceClient[crm.BillingTransaction]
}

// NewBillingClient creates a new billing client.
func NewBillingClient(base *crm.BaseClient) *BillingClient {
	return &BillingClient{
		transactions: NewResourceClient[crm.BillingTransaction](base, constants.PathBillingTransactions, "billing transaction"),
	}
}

// GetTransaction implements crm.BillingClient.GetTransaction.
func (c *BillingClient) GetTransaction(ctx context.Context, uid string) (*crm.BillingTransaction, error) {
	return c.transactions.Get(ctx, uid)
}

// ListTransactions implements crm.BillingClient.ListTransactions.
func (c *BillingClient) ListTransactions(ctx context.Context, request *crm.PageRequest) (*crm.ItemPage[crm.BillingTransaction], error) {
	return c.transactions.List(ctx, request)
}
