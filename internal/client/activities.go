package client

import (
	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// ActivitiesClient implements crm.ActivitiesClient.
type ActivitiesClient struct {
	*ResourceClient[crm.Activity]
}

// NewActivitiesClient creates a new activities client.
func NewActivitiesClient(base *crm.BaseClient) *ActivitiesClient {
	return &ActivitiesClient{
		ResourceClient: NewResourceClient[crm.Activity](base, constants.PathActivities, "activity"),
	}
}
