package crmclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/crm-client/internal/serde"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
	"github.com/fivetwenty-io/crm-client/pkg/crmclient"
)

func TestRequestMakers(t *testing.T) {
	t.Parallel()

	names := crmclient.RequestMakers()
	assert.Contains(t, names, "retryablehttp")
	assert.Contains(t, names, "resty")
	assert.Contains(t, names, "stdlib")
	assert.Equal(t, "retryablehttp", crmclient.DefaultRequestMaker)
}

func TestParsers(t *testing.T) {
	t.Parallel()

	names := crmclient.Parsers()
	assert.Contains(t, names, "json")
	assert.Contains(t, names, "sonic")
	assert.Contains(t, names, "gojson")
	assert.Equal(t, "json", crmclient.DefaultParser)
}

func TestRegisterRequestMaker(t *testing.T) {
	t.Parallel()

	stub := &stubTransport{body: "{}"}

	err := crmclient.RegisterRequestMaker("registry-test-stub", func(opts ...crmclient.TransportOption) crm.Transport {
		return stub
	})
	require.NoError(t, err)

	builder := completeBuilder(t, "transport")

	_, err = builder.WithRequestMaker("registry-test-stub")
	require.NoError(t, err)

	config, err := builder.Build()
	require.NoError(t, err)
	assert.Same(t, stub, config.Transport())

	err = crmclient.RegisterRequestMaker("", nil)
	require.Error(t, err)
	assert.True(t, crm.IsInvalidArgument(err))
}

func TestRegisterParser(t *testing.T) {
	t.Parallel()

	err := crmclient.RegisterParser("registry-test-json", func() crm.Parser { return serde.NewJSON() })
	require.NoError(t, err)

	_, err = crmclient.NewBuilder().WithParser("registry-test-json")
	require.NoError(t, err)

	err = crmclient.RegisterParser("x", nil)
	require.Error(t, err)
}
