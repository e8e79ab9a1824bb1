package crm

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxPageSize is the largest page size the API accepts.
const MaxPageSize = 25

// Query parameter names used by PageRequest.
const (
	ParamPageNum          = "page"
	ParamPageSize         = "pageSize"
	ParamOrderBy          = "orderBy"
	ParamOrderByDirection = "orderByDirection"
)

// SortDirection orders list results.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "Asc"
	SortDesc SortDirection = "Desc"
)

// String implements fmt.Stringer.
func (d SortDirection) String() string {
	return string(d)
}

// Filter is a typed list filter serialized under a fixed parameter key.
type Filter interface {
	FilterKey() string
	FilterValue() string
}

// AccountStage filters accounts by lifecycle stage.
type AccountStage string

// Account stages.
const (
	AccountStageLead     AccountStage = "Lead"
	AccountStageProspect AccountStage = "Prospect"
	AccountStageCustomer AccountStage = "Customer"
	AccountStageFormer   AccountStage = "Former"
)

// FilterKey implements Filter.
func (s AccountStage) FilterKey() string { return "accountStage" }

// FilterValue implements Filter.
func (s AccountStage) FilterValue() string { return string(s) }

// ActivityType filters activities by kind.
type ActivityType string

// Activity types.
const (
	ActivityTypeNote  ActivityType = "Note"
	ActivityTypeCall  ActivityType = "Call"
	ActivityTypeEmail ActivityType = "Email"
	ActivityTypeTask  ActivityType = "Task"
)

// FilterKey implements Filter.
func (t ActivityType) FilterKey() string { return "activityType" }

// FilterValue implements Filter.
func (t ActivityType) FilterValue() string { return string(t) }

// EntityType filters activities by the kind of record they belong to.
type EntityType string

// Entity types.
const (
	EntityTypePerson  EntityType = "Person"
	EntityTypeAccount EntityType = "Account"
	EntityTypeCase    EntityType = "Case"
)

// FilterKey implements Filter.
func (t EntityType) FilterKey() string { return "entityType" }

// FilterValue implements Filter.
func (t EntityType) FilterValue() string { return string(t) }

// TransactionType filters billing transactions.
type TransactionType string

// Transaction types.
const (
	TransactionTypeCharge  TransactionType = "Charge"
	TransactionTypePayment TransactionType = "Payment"
	TransactionTypeRefund  TransactionType = "Refund"
)

// FilterKey implements Filter.
func (t TransactionType) FilterKey() string { return "transactionType" }

// FilterValue implements Filter.
func (t TransactionType) FilterValue() string { return string(t) }

// PageRequest describes one page of a list call. Values are immutable; use
// NextPageRequest or Builder to derive new requests.
type PageRequest struct {
	pageNum          *int
	pageSize         *int
	orderBy          string
	orderByDirection SortDirection
	filters          []Filter
	customParams     *Params
}

// PageNum returns the page number and whether it was set.
func (r *PageRequest) PageNum() (int, bool) {
	if r == nil || r.pageNum == nil {
		return 0, false
	}

	return *r.pageNum, true
}

// PageSize returns the page size and whether it was set.
func (r *PageRequest) PageSize() (int, bool) {
	if r == nil || r.pageSize == nil {
		return 0, false
	}

	return *r.pageSize, true
}

// OrderBy returns the sort field.
func (r *PageRequest) OrderBy() string {
	if r == nil {
		return ""
	}

	return r.orderBy
}

// OrderByDirection returns the sort direction.
func (r *PageRequest) OrderByDirection() SortDirection {
	if r == nil {
		return ""
	}

	return r.orderByDirection
}

// Filter returns the value of the typed filter stored under key.
func (r *PageRequest) Filter(key string) (string, bool) {
	if r == nil {
		return "", false
	}

	for _, filter := range r.filters {
		if filter.FilterKey() == key {
			return filter.FilterValue(), true
		}
	}

	return "", false
}

// CustomParams returns a copy of the custom parameters.
func (r *PageRequest) CustomParams() *Params {
	if r == nil {
		return nil
	}

	return r.customParams.Clone()
}

// BuildParams serializes the fields that are set. Unset fields are omitted.
func (r *PageRequest) BuildParams() *Params {
	params := NewParams()

	if r == nil {
		return params
	}

	if r.pageNum != nil {
		params.Set(ParamPageNum, strconv.Itoa(*r.pageNum))
	}

	if r.pageSize != nil {
		params.Set(ParamPageSize, strconv.Itoa(*r.pageSize))
	}

	if r.orderBy != "" {
		params.Set(ParamOrderBy, r.orderBy)
	}

	if r.orderByDirection != "" {
		params.Set(ParamOrderByDirection, r.orderByDirection.String())
	}

	for _, filter := range r.filters {
		params.Set(filter.FilterKey(), filter.FilterValue())
	}

	return params.Merge(r.customParams)
}

// NextPageRequest returns a new request for the following page with every
// other field preserved. A request without a page number is treated as page
// 0. The receiver is not modified.
func (r *PageRequest) NextPageRequest() *PageRequest {
	next := r.clone()

	current, _ := r.PageNum()
	nextNum := current + 1
	next.pageNum = &nextNum

	return next
}

// Builder returns a builder seeded with a copy of the request.
func (r *PageRequest) Builder() *PageRequestBuilder {
	return &PageRequestBuilder{request: *r.clone()}
}

func (r *PageRequest) clone() *PageRequest {
	if r == nil {
		return &PageRequest{}
	}

	cloned := &PageRequest{
		orderBy:          r.orderBy,
		orderByDirection: r.orderByDirection,
		customParams:     r.customParams.Clone(),
	}

	if r.pageNum != nil {
		pageNum := *r.pageNum
		cloned.pageNum = &pageNum
	}

	if r.pageSize != nil {
		pageSize := *r.pageSize
		cloned.pageSize = &pageSize
	}

	if len(r.filters) > 0 {
		cloned.filters = make([]Filter, len(r.filters))
		copy(cloned.filters, r.filters)
	}

	return cloned
}

// PageRequestBuilder assembles a PageRequest. Bounds are checked by Build.
type PageRequestBuilder struct {
	request PageRequest
}

// NewPageRequestBuilder creates an empty page request builder.
func NewPageRequestBuilder() *PageRequestBuilder {
	return &PageRequestBuilder{}
}

// WithPageNum sets the zero-based page number.
func (b *PageRequestBuilder) WithPageNum(pageNum int) *PageRequestBuilder {
	b.request.pageNum = &pageNum

	return b
}

// WithPageSize sets the number of items per page.
func (b *PageRequestBuilder) WithPageSize(pageSize int) *PageRequestBuilder {
	b.request.pageSize = &pageSize

	return b
}

// WithOrderBy sets the sort field and direction. An empty direction leaves
// the server default.
func (b *PageRequestBuilder) WithOrderBy(field string, direction SortDirection) *PageRequestBuilder {
	b.request.orderBy = field
	b.request.orderByDirection = direction

	return b
}

// WithFilter sets a typed filter, replacing one with the same key.
func (b *PageRequestBuilder) WithFilter(filter Filter) *PageRequestBuilder {
	for i, existing := range b.request.filters {
		if existing.FilterKey() == filter.FilterKey() {
			filters := make([]Filter, len(b.request.filters))
			copy(filters, b.request.filters)
			filters[i] = filter
			b.request.filters = filters

			return b
		}
	}

	b.request.filters = append(b.request.filters[:len(b.request.filters):len(b.request.filters)], filter)

	return b
}

// WithAccountStage filters by account stage.
func (b *PageRequestBuilder) WithAccountStage(stage AccountStage) *PageRequestBuilder {
	return b.WithFilter(stage)
}

// WithActivityType filters by activity type.
func (b *PageRequestBuilder) WithActivityType(activityType ActivityType) *PageRequestBuilder {
	return b.WithFilter(activityType)
}

// WithEntityType filters by entity type.
func (b *PageRequestBuilder) WithEntityType(entityType EntityType) *PageRequestBuilder {
	return b.WithFilter(entityType)
}

// WithTransactionType filters by billing transaction type.
func (b *PageRequestBuilder) WithTransactionType(transactionType TransactionType) *PageRequestBuilder {
	return b.WithFilter(transactionType)
}

// WithCustomParam adds a raw query parameter.
func (b *PageRequestBuilder) WithCustomParam(key string, value interface{}) *PageRequestBuilder {
	params := b.request.customParams.Clone()
	if params == nil {
		params = NewParams()
	}

	b.request.customParams = params.Set(key, value)

	return b
}

// WithCustomParams adds every parameter of params.
func (b *PageRequestBuilder) WithCustomParams(params *Params) *PageRequestBuilder {
	params.Each(func(key string, value interface{}) {
		b.WithCustomParam(key, value)
	})

	return b
}

// Build validates the bounds and returns an independent PageRequest.
func (b *PageRequestBuilder) Build() (*PageRequest, error) {
	err := b.validate()
	if err != nil {
		return nil, err
	}

	return b.request.clone(), nil
}

func (b *PageRequestBuilder) validate() error {
	if b.request.pageNum != nil && *b.request.pageNum < 0 {
		return NewPageBuildError(fmt.Sprintf("page number must be >= 0, got %d", *b.request.pageNum))
	}

	if b.request.pageSize != nil && (*b.request.pageSize <= 0 || *b.request.pageSize > MaxPageSize) {
		return NewPageBuildError(fmt.Sprintf("page size must be in (0, %d], got %d", MaxPageSize, *b.request.pageSize))
	}

	switch b.request.orderByDirection {
	case "", SortAsc, SortDesc:
	default:
		return NewPageBuildError(fmt.Sprintf("unknown sort direction %q", b.request.orderByDirection))
	}

	if b.request.orderByDirection != "" && b.request.orderBy == "" {
		return NewPageBuildError("sort direction requires a sort field")
	}

	return nil
}

// PageMetadata carries the page envelope's totals.
type PageMetadata struct {
	Total int `json:"Total" yaml:"total"`
}

// ItemPage is one decoded page of a list response.
type ItemPage[T any] struct {
	items    []T
	metadata PageMetadata
}

// Items returns a copy of the page's items in server order.
func (p *ItemPage[T]) Items() []T {
	items := make([]T, len(p.items))
	copy(items, p.items)

	return items
}

// Len returns the number of items on the page.
func (p *ItemPage[T]) Len() int {
	return len(p.items)
}

// Metadata returns the page metadata.
func (p *ItemPage[T]) Metadata() PageMetadata {
	return p.metadata
}

// Total returns the total number of items across all pages.
func (p *ItemPage[T]) Total() int {
	return p.metadata.Total
}

type pageEnvelope[T any] struct {
	Items    []T          `json:"Items"`
	Metadata PageMetadata `json:"Metadata"`
}

// JSONStringToPage decodes a page envelope using parser.
func JSONStringToPage[T any](parser Parser, data string) (*ItemPage[T], error) {
	if parser == nil {
		return nil, NewInvalidArgumentError("parser is required")
	}

	var envelope pageEnvelope[T]

	err := parser.JSONStringToObject(data, &envelope)
	if err != nil {
		reqErr := &RequestError{}
		if errors.As(err, &reqErr) {
			return nil, err
		}

		return nil, NewParseError("decoding page envelope", err)
	}

	return &ItemPage[T]{items: envelope.Items, metadata: envelope.Metadata}, nil
}
