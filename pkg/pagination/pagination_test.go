package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMiddlePage(t *testing.T) {
	page := New("/api/v1/products", 2, 10, 25, []string{"a"})

	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 10, page.Meta.PerPage)
	assert.Equal(t, 3, page.Meta.LastPage)
	assert.Equal(t, int64(25), page.Meta.Total)

	assert.Equal(t, "/api/v1/products?page=1&per_page=10", page.Links.First)
	assert.Equal(t, "/api/v1/products?page=3&per_page=10", page.Links.Last)
	require.NotNil(t, page.Links.Prev)
	assert.Equal(t, "/api/v1/products?page=1&per_page=10", *page.Links.Prev)
	require.NotNil(t, page.Links.Next)
	assert.Equal(t, "/api/v1/products?page=3&per_page=10", *page.Links.Next)
}

func TestNewFirstAndLastPage(t *testing.T) {
	page := New("/api/v1/toko", 1, 10, 10, nil)

	assert.Equal(t, 1, page.Meta.LastPage)
	assert.Nil(t, page.Links.Prev)
	assert.Nil(t, page.Links.Next)
}

func TestNewEmptyResult(t *testing.T) {
	page := New("/api/v1/toko", 1, 10, 0, []string{})

	// Empty sets still get well-formed links.
	assert.Equal(t, 1, page.Meta.LastPage)
	assert.Equal(t, "/api/v1/toko?page=1&per_page=10", page.Links.Last)
	assert.Nil(t, page.Links.Next)
}
