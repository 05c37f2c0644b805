package page

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := FromQuery(url.Values{})
		assert.Equal(t, Request{Number: 0, Size: DefaultSize}, req)
	})

	t.Run("explicit", func(t *testing.T) {
		req := FromQuery(url.Values{"page": {"2"}, "size": {"25"}})
		assert.Equal(t, Request{Number: 2, Size: 25}, req)
		assert.Equal(t, 50, req.Offset())
	})

	t.Run("out of range", func(t *testing.T) {
		req := FromQuery(url.Values{"page": {"-3"}, "size": {"1000"}})
		assert.Equal(t, Request{Number: 0, Size: DefaultSize}, req)
	})

	t.Run("huge page number", func(t *testing.T) {
		req := FromQuery(url.Values{"page": {"4611686018427387904"}, "size": {"100"}})
		assert.Equal(t, MaxNumber, req.Number)
		assert.Positive(t, req.Offset())
		assert.LessOrEqual(t, req.Offset(), math.MaxInt32)
	})

	t.Run("unparsable page number", func(t *testing.T) {
		req := FromQuery(url.Values{"page": {"99999999999999999999999"}})
		assert.Equal(t, 0, req.Number)
	})
}

func TestNew(t *testing.T) {
	p := New([]string{"a"}, Request{Number: 0, Size: 10}, 1)

	assert.Equal(t, 1, p.TotalElements)
	assert.Equal(t, 0, p.PageNumber)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, map[string]any{"page": 0, "page_size": 10, "total": 1, "total_pages": 1}, p.Meta())
}

func TestNew_NilContentRendersEmpty(t *testing.T) {
	p := New[int](nil, Request{Size: 10}, 0)
	assert.NotNil(t, p.Content)
	assert.Empty(t, p.Content)
	assert.Equal(t, 0, p.TotalPages())
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(all, Request{Number: 0, Size: 2}))
	assert.Equal(t, []int{5}, Slice(all, Request{Number: 2, Size: 2}))
	assert.Empty(t, Slice(all, Request{Number: 3, Size: 2}))
	assert.Empty(t, Slice(all, Request{Number: math.MaxInt, Size: 2}), "overflowing offset")
	assert.Empty(t, Slice(all, Request{Number: -1, Size: 2}))
}
