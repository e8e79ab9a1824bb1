// Package crm provides types, interfaces, and helpers for working with the
// CRM, billing and support REST API.
//
// # Overview
//
// The crm package defines the request pipeline contract: the Transport and
// Parser interfaces, the validated ClientConfiguration, the BaseClient that
// resource clients call, pagination (PageRequest, ItemPage, PageIterator)
// and the RequestError taxonomy. Concrete transports, parsers and resource
// clients are wired by the crmclient package; most consumers import
// crmclient to build a configuration and then use the resource client
// interfaces exposed here.
//
// Getting a client
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
//	  builder, err := crmclient.NewBuilder().WithBaseURL("https://api.example.com")
//	  if err != nil { log.Fatal(err) }
//	  if _, err = builder.WithAPIKey("my-key"); err != nil { log.Fatal(err) }
//
//	  config, err := builder.WithDefaultRequestMaker().WithDefaultParser().Build()
//	  if err != nil { log.Fatal(err) }
//
//	  cli, err := crmclient.New(config)
//	  if err != nil { log.Fatal(err) }
//
//	  person, err := cli.People().Get(ctx, "42")
//	  if err != nil { log.Fatal(err) }
//	  _ = person
//	}
//
// # Pagination
//
// PageRequest values are immutable. Build one with NewPageRequestBuilder and
// advance with NextPageRequest, which returns a new request for the
// following page:
//
//	req, err := crm.NewPageRequestBuilder().WithPageSize(25).Build()
//	page, err := cli.People().List(ctx, req)
//	next := req.NextPageRequest()
//
// PageIterator walks every page until the envelope total is reached.
//
// # Errors
//
// Every failure is a *RequestError with an ErrorKind. Use errors.Is with the
// Err* sentinels, or the Is* helpers, to tell invalid input (Build,
// InvalidArgument) from network and server failures (BadRequest,
// InvalidResponseCode, Unknown) and undecodable data (Parse).
package crm
