// Package crmclient provides the primary entry point for constructing a CRM
// API client that implements the crm.Client interface.
//
// It layers configuration, HTTP transport selection and JSON parser
// selection on top of the resource interfaces and types defined in the crm
// package. Most applications build a configuration with Builder, then use
// the returned crm.Client to access resource-specific clients, for example
// People(), Accounts() or Billing().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/crm-client/pkg/crm"
//	  "github.com/fivetwenty-io/crm-client/pkg/crmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: base URL and API key with the default transport and parser.
//	  cli, err := crmclient.NewWithAPIKey("https://api.example.com", "my-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or pick the pieces explicitly:
//	  builder := crmclient.NewBuilder()
//	  if _, err = builder.WithBaseURL("https://api.example.com"); err != nil { log.Fatal(err) }
//	  if _, err = builder.WithAccessKey("eyJhbGciOi..."); err != nil { log.Fatal(err) }
//	  if _, err = builder.WithRequestMaker(crmclient.RequestMakerResty); err != nil { log.Fatal(err) }
//	  if _, err = builder.WithParser(crmclient.ParserSonic); err != nil { log.Fatal(err) }
//
//	  config, err := builder.Build()
//	  if err != nil { log.Fatal(err) }
//
//	  cli, err = crmclient.New(config)
//	  if err != nil { log.Fatal(err) }
//
//	  req, err := crm.NewPageRequestBuilder().WithPageSize(25).Build()
//	  if err != nil { log.Fatal(err) }
//
//	  people, err := cli.People().List(ctx, req)
//	  if err != nil { log.Fatal(err) }
//	  _ = people
//	}
//
// # Request makers and parsers
//
// Transports are chosen by name: "retryablehttp" (default), "resty" and
// "stdlib". Parsers are "json" (default), "sonic" and "gojson". Additional
// implementations can be added with RegisterRequestMaker and RegisterParser.
// An unknown request maker name is reported as an InvalidRequestMaker error.
//
// # Settings
//
// LoadSettings reads a YAML file and CRM_* environment variables (for
// example CRM_BASE_URL and CRM_API_KEY). NewBuilderFromSettings and
// NewFromSettings turn the result into a builder or a ready client.
package crmclient
