package crm

import (
	"time"
)

// Address represents a postal address.
type Address struct {
	Street     string `json:"Street,omitempty"     yaml:"street,omitempty"`
	City       string `json:"City,omitempty"       yaml:"city,omitempty"`
	Region     string `json:"Region,omitempty"     yaml:"region,omitempty"`
	PostalCode string `json:"PostalCode,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"Country,omitempty"    yaml:"country,omitempty"`
}

// Person represents a contact record.
type Person struct {
	UID          string            `json:"Uid,omitempty"          yaml:"uid,omitempty"`
	FirstName    string            `json:"FirstName,omitempty"    yaml:"first_name,omitempty"`
	LastName     string            `json:"LastName,omitempty"     yaml:"last_name,omitempty"`
	Email        string            `json:"Email,omitempty"        yaml:"email,omitempty"`
	Phone        string            `json:"Phone,omitempty"        yaml:"phone,omitempty"`
	AccountUID   string            `json:"AccountUid,omitempty"   yaml:"account_uid,omitempty"`
	Address      *Address          `json:"Address,omitempty"      yaml:"address,omitempty"`
	Tags         []string          `json:"Tags,omitempty"         yaml:"tags,omitempty"`
	CustomFields map[string]string `json:"CustomFields,omitempty" yaml:"custom_fields,omitempty"`
	CreatedAt    *time.Time        `json:"CreatedAt,omitempty"    yaml:"created_at,omitempty"`
}

// Account represents an organization or household.
type Account struct {
	UID        string       `json:"Uid,omitempty"        yaml:"uid,omitempty"`
	Name       string       `json:"Name,omitempty"       yaml:"name,omitempty"`
	Stage      AccountStage `json:"Stage,omitempty"      yaml:"stage,omitempty"`
	OwnerUID   string       `json:"OwnerUid,omitempty"   yaml:"owner_uid,omitempty"`
	Address    *Address     `json:"Address,omitempty"    yaml:"address,omitempty"`
	PeopleUIDs []string     `json:"PeopleUids,omitempty" yaml:"people_uids,omitempty"`
}

// Activity represents an entry on an entity's timeline.
type Activity struct {
	UID        string       `json:"Uid,omitempty"       yaml:"uid,omitempty"`
	Type       ActivityType `json:"Type,omitempty"      yaml:"type,omitempty"`
	EntityType EntityType   `json:"EntityType,omitempty" yaml:"entity_type,omitempty"`
	EntityUID  string       `json:"EntityUid,omitempty" yaml:"entity_uid,omitempty"`
	Subject    string       `json:"Subject,omitempty"   yaml:"subject,omitempty"`
	Note       string       `json:"Note,omitempty"      yaml:"note,omitempty"`
	Date       *time.Time   `json:"Date,omitempty"      yaml:"date,omitempty"`
}

// BillingTransaction represents a charge, payment or refund.
type BillingTransaction struct {
	UID        string          `json:"Uid,omitempty"        yaml:"uid,omitempty"`
	Type       TransactionType `json:"Type,omitempty"       yaml:"type,omitempty"`
	AccountUID string          `json:"AccountUid,omitempty" yaml:"account_uid,omitempty"`
	Amount     float64         `json:"Amount"               yaml:"amount"`
	Currency   string          `json:"Currency,omitempty"   yaml:"currency,omitempty"`
	Date       *time.Time      `json:"Date,omitempty"       yaml:"date,omitempty"`
}

// Credentials are exchanged for an access key by AuthClient.Login.
type Credentials struct {
	Username string
	Password string
	Scope    string
}

// Token is the result of a successful login.
type Token struct {
	AccessToken  string `json:"access_token"            yaml:"access_token"`
	TokenType    string `json:"token_type,omitempty"    yaml:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"    yaml:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}
