package client

import (
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Client implements the crm.Client interface.
type Client struct {
	base *crm.BaseClient

	// Resource clients
	people     *PeopleClient
	accounts   *AccountsClient
	activities *ActivitiesClient
	billing    *BillingClient
	auth       *AuthClient
}

// New creates a client whose resource clients share one BaseClient built
// from config.
func New(config *crm.ClientConfiguration) (*Client, error) {
	base, err := crm.NewBaseClient(config)
	if err != nil {
		return nil, err
	}

	return NewWithBase(base), nil
}

// NewWithBase creates a client around an existing BaseClient.
func NewWithBase(base *crm.BaseClient) *Client {
	client := &Client{base: base}
	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.people = NewPeopleClient(c.base)
	c.accounts = NewAccountsClient(c.base)
	c.activities = NewActivitiesClient(c.base)
	c.billing = NewBillingClient(c.base)
	c.auth = NewAuthClient(c.base)
}

// People implements crm.Client.People.
func (c *Client) People() crm.PeopleClient {
	return c.people
}

// Accounts implements crm.Client.Accounts.
func (c *Client) Accounts() crm.AccountsClient {
	return c.accounts
}

// Activities implements crm.Client.Activities.
func (c *Client) Activities() crm.ActivitiesClient {
	return c.activities
}

// Billing implements crm.Client.Billing.
func (c *Client) Billing() crm.BillingClient {
	return c.billing
}

// Auth implements crm.Client.Auth.
func (c *Client) Auth() crm.AuthClient {
	return c.auth
}

// Base implements crm.Client.Base.
func (c *Client) Base() *crm.BaseClient {
	return c.base
}

// Authorize sets the bearer token sent by every resource client.
func (c *Client) Authorize(token *crm.Token) {
	if token == nil || token.AccessToken == "" {
		return
	}

	c.base.SetHeader(crm.HeaderAuthorization, crm.BearerPrefix+token.AccessToken)
}
