package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsOffset(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		offset int
	}{
		{"unpaginated", Params{}, 0},
		{"first page", Params{Page: 1, Size: 10}, 0},
		{"third page", Params{Page: 3, Size: 10}, 20},
		{"zero page normalized", Params{Page: 0, Size: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.params.Offset())
		})
	}
}

func TestNewPage(t *testing.T) {
	t.Run("unpaginated returns one page of everything", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3}, Params{}, 3)
		assert.Equal(t, []int{1, 2, 3}, page.Content)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.Size)
		assert.Equal(t, int64(3), page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("paginated rounds total pages up", func(t *testing.T) {
		page := NewPage([]int{1, 2}, Params{Page: 2, Size: 2}, 5)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.Size)
		assert.Equal(t, int64(5), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("nil content marshals as empty list", func(t *testing.T) {
		page := NewPage[int](nil, Params{}, 0)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
	})
}
