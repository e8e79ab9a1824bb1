package crm

import (
	"context"
)

// Transport sends a single HTTP request and returns the raw response body.
// Implementations classify failures into RequestError kinds: BadRequest for
// I/O faults, Unknown for a missing response, InvalidResponseCode for any
// status outside 200-299 and InvalidURL for a malformed URL.
type Transport interface {
	Get(ctx context.Context, url string, params *Params, headers map[string]string) (string, error)
	Put(ctx context.Context, url string, params *Params, payload string, headers map[string]string) (string, error)
	Post(ctx context.Context, url string, params *Params, payload string, headers map[string]string) (string, error)
	Patch(ctx context.Context, url string, params *Params, payload string, headers map[string]string) (string, error)
	Delete(ctx context.Context, url string, params *Params, headers map[string]string) (string, error)
}

// Parser converts between Go values and JSON text. Every failure is
// reported as a Parse error.
type Parser interface {
	ObjectToJSONString(value interface{}) (string, error)
	JSONStringToObject(data string, target interface{}) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// PeopleClient manages people records.
type PeopleClient interface {
	Get(ctx context.Context, uid string) (*Person, error)
	List(ctx context.Context, request *PageRequest) (*ItemPage[Person], error)
	Iterate(ctx context.Context, request *PageRequest) *PageIterator[Person]
	Create(ctx context.Context, person *Person) (*Person, error)
	Update(ctx context.Context, uid string, person *Person) (*Person, error)
	Delete(ctx context.Context, uid string) error
}

// AccountsClient manages accounts.
type AccountsClient interface {
	Get(ctx context.Context, uid string) (*Account, error)
	List(ctx context.Context, request *PageRequest) (*ItemPage[Account], error)
	Create(ctx context.Context, account *Account) (*Account, error)
}

// ActivitiesClient reads the activity timeline.
type ActivitiesClient interface {
	Get(ctx context.Context, uid string) (*Activity, error)
	List(ctx context.Context, request *PageRequest) (*ItemPage[Activity], error)
}

// BillingClient reads billing transactions.
type BillingClient interface {
	GetTransaction(ctx context.Context, uid string) (*BillingTransaction, error)
	ListTransactions(ctx context.Context, request *PageRequest) (*ItemPage[BillingTransaction], error)
}

// AuthClient exchanges user credentials for an access key.
type AuthClient interface {
	Login(ctx context.Context, credentials *Credentials) (*Token, error)
}

// Client provides access to all resource clients.
type Client interface {
	People() PeopleClient
	Accounts() AccountsClient
	Activities() ActivitiesClient
	Billing() BillingClient
	Auth() AuthClient
	Base() *BaseClient
}
