package client

import (
	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// AccountsClient implements crm.AccountsClient.
type AccountsClient struct {
	*ResourceClient[crm.Account]
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(base *crm.BaseClient) *AccountsClient {
	return &AccountsClient{
		ResourceClient: NewResourceClient[crm.Account](base, constants.PathAccounts, "account"),
	}
}
