package client

import (
	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// PeopleClient implements crm.PeopleClient.
type PeopleClient struct {
	*ResourceClient[crm.Person]
}

// NewPeopleClient creates a new people client.
func NewPeopleClient(base *crm.BaseClient) *PeopleClient {
	return &PeopleClient{
		ResourceClient: NewResourceClient[crm.Person](base, constants.PathPeople, "person"),
	}
}
