package crm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/crm-client/internal/serde"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

func TestPageRequestBuilder_Bounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *crm.PageRequestBuilder
		wantErr bool
	}{
		{name: "empty", builder: crm.NewPageRequestBuilder()},
		{name: "page zero", builder: crm.NewPageRequestBuilder().WithPageNum(0)},
		{name: "negative page", builder: crm.NewPageRequestBuilder().WithPageNum(-1), wantErr: true},
		{name: "size one", builder: crm.NewPageRequestBuilder().WithPageSize(1)},
		{name: "size max", builder: crm.NewPageRequestBuilder().WithPageSize(crm.MaxPageSize)},
		{name: "size zero", builder: crm.NewPageRequestBuilder().WithPageSize(0), wantErr: true},
		{name: "size over max", builder: crm.NewPageRequestBuilder().WithPageSize(26), wantErr: true},
		{name: "negative size", builder: crm.NewPageRequestBuilder().WithPageSize(-5), wantErr: true},
		{name: "unknown direction", builder: crm.NewPageRequestBuilder().WithOrderBy("Name", "Sideways"), wantErr: true},
		{name: "direction without field", builder: crm.NewPageRequestBuilder().WithOrderBy("", crm.SortAsc), wantErr: true},
		{name: "field without direction", builder: crm.NewPageRequestBuilder().WithOrderBy("Name", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			request, err := tt.builder.Build()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, crm.IsPageBuild(err))
				assert.Nil(t, request)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, request)
		})
	}
}

func TestPageRequest_BuildParams(t *testing.T) {
	t.Parallel()

	request, err := crm.NewPageRequestBuilder().
		WithCustomParam("q", "smith").
		WithAccountStage(crm.AccountStageLead).
		WithOrderBy("LastName", crm.SortAsc).
		WithPageSize(10).
		WithPageNum(3).
		WithAccountStage(crm.AccountStageCustomer).
		Build()
	require.NoError(t, err)

	params := request.BuildParams()
	assert.Equal(t, []string{"page", "pageSize", "orderBy", "orderByDirection", "accountStage", "q"}, params.Keys())
	assert.Equal(t, map[string]interface{}{
		"page":             "3",
		"pageSize":         "10",
		"orderBy":          "LastName",
		"orderByDirection": "Asc",
		"accountStage":     "Customer",
		"q":                "smith",
	}, params.Map())

	stage, ok := request.Filter("accountStage")
	assert.True(t, ok)
	assert.Equal(t, "Customer", stage)
}

func TestPageRequest_BuildParams_OnlySetFields(t *testing.T) {
	t.Parallel()

	request, err := crm.NewPageRequestBuilder().WithPageSize(5).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"pageSize"}, request.BuildParams().Keys())

	empty, err := crm.NewPageRequestBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.BuildParams().Len())
}

func TestPageRequest_NextPageRequest(t *testing.T) {
	t.Parallel()

	request, err := crm.NewPageRequestBuilder().
		WithPageNum(0).
		WithPageSize(25).
		WithOrderBy("Name", crm.SortDesc).
		WithEntityType(crm.EntityTypeAccount).
		WithCustomParam("q", "x").
		Build()
	require.NoError(t, err)

	next := request.NextPageRequest()

	pageNum, _ := request.PageNum()
	assert.Equal(t, 0, pageNum)

	nextNum, ok := next.PageNum()
	assert.True(t, ok)
	assert.Equal(t, 1, nextNum)

	pageSize, _ := next.PageSize()
	assert.Equal(t, 25, pageSize)
	assert.Equal(t, "Name", next.OrderBy())
	assert.Equal(t, crm.SortDesc, next.OrderByDirection())

	entityType, ok := next.Filter("entityType")
	assert.True(t, ok)
	assert.Equal(t, "Account", entityType)

	q, _ := next.CustomParams().Get("q")
	assert.Equal(t, "x", q)

	third := next.NextPageRequest()
	thirdNum, _ := third.PageNum()
	assert.Equal(t, 2, thirdNum)

	nextNum, _ = next.PageNum()
	assert.Equal(t, 1, nextNum)
}

func TestPageRequest_NextPageRequest_Unset(t *testing.T) {
	t.Parallel()

	request, err := crm.NewPageRequestBuilder().Build()
	require.NoError(t, err)

	next := request.NextPageRequest()

	pageNum, ok := next.PageNum()
	assert.True(t, ok)
	assert.Equal(t, 1, pageNum)

	_, ok = request.PageNum()
	assert.False(t, ok)
}

func TestPageRequest_IndependentOfBuilder(t *testing.T) {
	t.Parallel()

	builder := crm.NewPageRequestBuilder().WithPageNum(1).WithCustomParam("a", "1")

	request, err := builder.Build()
	require.NoError(t, err)

	builder.WithPageNum(5).WithCustomParam("b", "2")

	pageNum, _ := request.PageNum()
	assert.Equal(t, 1, pageNum)
	assert.Equal(t, []string{"a"}, request.CustomParams().Keys())

	request.CustomParams().Set("c", "3")
	assert.Equal(t, []string{"a"}, request.CustomParams().Keys())

	derived, err := request.Builder().WithPageSize(2).Build()
	require.NoError(t, err)

	_, ok := request.PageSize()
	assert.False(t, ok)

	size, _ := derived.PageSize()
	assert.Equal(t, 2, size)
}

func TestJSONStringToPage_NilParser(t *testing.T) {
	t.Parallel()

	_, err := crm.JSONStringToPage[crm.Person](nil, `{}`)
	require.Error(t, err)
	assert.True(t, crm.IsInvalidArgument(err))
}

func TestItemPage_ItemsAreCopied(t *testing.T) {
	t.Parallel()

	page, err := crm.JSONStringToPage[crm.Account](serde.NewJSON(), `{"Items":[{"Uid":"a"}],"Metadata":{"Total":1}}`)
	require.NoError(t, err)

	items := page.Items()
	items[0].UID = "changed"

	assert.Equal(t, "a", page.Items()[0].UID)
	assert.Equal(t, crm.PageMetadata{Total: 1}, page.Metadata())
}
