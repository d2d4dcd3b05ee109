package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	p := NewPageRequest(3, 20, DefaultPageSize, MaxPageSize)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Size)
	assert.Equal(t, 40, p.Offset())

	// Out-of-range values fall back
	p = NewPageRequest(0, -5, DefaultPageSize, MaxPageSize)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 0, p.Offset())

	p = NewPageRequest(1, 500, DefaultPageSize, MaxPageSize)
	assert.Equal(t, DefaultPageSize, p.Size)

	// Endpoint-specific bounds
	p = NewPageRequest(2, 150, 50, 200)
	assert.Equal(t, 150, p.Size)
	assert.Equal(t, 150, p.Offset())
}

func TestPageRequestMeta(t *testing.T) {
	meta := NewPageRequest(3, 20, DefaultPageSize, MaxPageSize).Meta(41)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(41), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	// Exact multiple does not add a trailing page
	meta = NewPageRequest(1, 20, DefaultPageSize, MaxPageSize).Meta(40)
	assert.Equal(t, 2, meta.TotalPages)

	meta = NewPageRequest(1, 20, DefaultPageSize, MaxPageSize).Meta(0)
	assert.Equal(t, 0, meta.TotalPages)
}
