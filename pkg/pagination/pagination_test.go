package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_OffsetComputation(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&limit=25", nil)
	p := FromRequest(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestFromRequest_IgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=zero&limit=-4", nil)
	p := FromRequest(r)

	assert.Equal(t, DefaultParams(), p)
}

func TestFromRequest_CapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?limit=5000", nil)
	p := FromRequest(r)

	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNewResult(t *testing.T) {
	res := NewResult([]string{"a", "b"}, 21, Params{Page: 1, Limit: 10})

	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.Equal(t, 21, res.TotalCount)
}

func TestNewResult_NilData(t *testing.T) {
	res := NewResult[string](nil, 0, Params{Page: 1, Limit: 10})

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.False(t, res.HasNext)
}
