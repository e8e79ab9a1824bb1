package crmclient

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	internalhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/internal/serde"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Request maker names.
const (
	RequestMakerRetryable = "retryablehttp"
	RequestMakerResty     = "resty"
	RequestMakerStdlib    = "stdlib"

	// DefaultRequestMaker is used by Builder.WithDefaultRequestMaker.
	DefaultRequestMaker = RequestMakerRetryable
)

// Parser names.
const (
	ParserJSON   = serde.EngineJSON
	ParserSonic  = serde.EngineSonic
	ParserGoJSON = serde.EngineGoJSON

	// DefaultParser is used by Builder.WithDefaultParser.
	DefaultParser = ParserJSON
)

// TransportOption configures a transport created by a RequestMaker.
type TransportOption = internalhttp.Option

// RequestMaker creates a transport configured with opts.
type RequestMaker func(opts ...TransportOption) crm.Transport

// ParserFactory creates a parser.
type ParserFactory func() crm.Parser

var (
	registryMutex sync.RWMutex

	requestMakers = map[string]RequestMaker{
		RequestMakerRetryable: func(opts ...TransportOption) crm.Transport { return internalhttp.NewRetryableClient(opts...) },
		RequestMakerResty:     func(opts ...TransportOption) crm.Transport { return internalhttp.NewRestyClient(opts...) },
		RequestMakerStdlib:    func(opts ...TransportOption) crm.Transport { return internalhttp.NewStdlibClient(opts...) },
	}

	parsers = map[string]ParserFactory{
		ParserJSON:   func() crm.Parser { return serde.NewJSON() },
		ParserSonic:  func() crm.Parser { return serde.NewSonic() },
		ParserGoJSON: func() crm.Parser { return serde.NewGoJSON() },
	}
)

// RegisterRequestMaker makes a transport implementation available to
// Builder.WithRequestMaker under name. An existing registration is replaced.
func RegisterRequestMaker(name string, maker RequestMaker) error {
	name = normalizeName(name)
	if name == "" || maker == nil {
		return crm.NewInvalidArgumentError("request maker name and constructor are required")
	}

	registryMutex.Lock()
	defer registryMutex.Unlock()

	requestMakers[name] = maker

	return nil
}

// RegisterParser makes a parser available to Builder.WithParser under name.
func RegisterParser(name string, factory ParserFactory) error {
	name = normalizeName(name)
	if name == "" || factory == nil {
		return crm.NewInvalidArgumentError("parser name and constructor are required")
	}

	registryMutex.Lock()
	defer registryMutex.Unlock()

	parsers[name] = factory

	return nil
}

// RequestMakers lists the registered request maker names.
func RequestMakers() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	return sortedNames(requestMakers)
}

// Parsers lists the registered parser names.
func Parsers() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	return sortedNames(parsers)
}

func lookupRequestMaker(name string) (RequestMaker, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	maker, ok := requestMakers[normalizeName(name)]
	if !ok {
		return nil, crm.NewInvalidRequestMakerError(name)
	}

	return maker, nil
}

func lookupParser(name string) (ParserFactory, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, ok := parsers[normalizeName(name)]
	if !ok {
		return nil, crm.NewBuildError(fmt.Sprintf("unknown parser %q, available: %s", name, strings.Join(sortedNames(parsers), ", ")))
	}

	return factory, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sortedNames[V any](registry map[string]V) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
