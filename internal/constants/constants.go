package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are disabled unless a caller opts in.
const (
	// DefaultRetryMax is the default number of retries after the first attempt.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP status code boundaries of the success range.
const (
	// HTTPStatusSuccessMin is the lowest successful status code.
	HTTPStatusSuccessMin = 200

	// HTTPStatusSuccessMax is one past the highest successful status code.
	HTTPStatusSuccessMax = 300
)

// Header names set by the transport itself.
const (
	// HeaderUserAgent is the User-Agent header name.
	HeaderUserAgent = "User-Agent"

	// HeaderRequestID carries a per-request correlation ID.
	HeaderRequestID = "X-Request-Id"

	// DefaultUserAgent identifies the client library.
	DefaultUserAgent = "crm-client-go/1.0"
)

// Metrics naming.
const (
	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "crm_client"

	// OutcomeSuccess labels requests that returned a 2xx response.
	OutcomeSuccess = "success"
)

// Settings defaults.
const (
	// EnvPrefix is the prefix of environment variables read by settings.
	EnvPrefix = "CRM"

	// DefaultLogBackend is used when settings name no log backend.
	DefaultLogBackend = "zap"

	// DefaultLogLevel is used when settings name no log level.
	DefaultLogLevel = "info"

	// DefaultRateBurst is the burst size of the client-side rate limiter.
	DefaultRateBurst = 1
)

// Form field names of the password grant.
const (
	// GrantTypePassword is the OAuth2 password grant type.
	GrantTypePassword = "password"

	// FormGrantType is the grant type field.
	FormGrantType = "grant_type"

	// FormUsername is the username field.
	FormUsername = "username"

	// FormPassword is the password field.
	FormPassword = "password"

	// FormScope is the scope field.
	FormScope = "scope"
)

// API path suffixes.
const (
	// PathPeople is the people collection.
	PathPeople = "/crm/people"

	// PathAccounts is the accounts collection.
	PathAccounts = "/crm/accounts"

	// PathActivities is the activity timeline.
	PathActivities = "/crm/activities"

	// PathBillingTransactions is the billing transactions collection.
	PathBillingTransactions = "/billing/transactions"

	// PathAuthToken is the token endpoint of the password grant.
	PathAuthToken = "/auth/token"
)

// Token lifetime handling.
const (
	// TokenExpiryBuffer is how long before its expiry a token is treated as
	// expired.
	TokenExpiryBuffer = 30 * time.Second
)
