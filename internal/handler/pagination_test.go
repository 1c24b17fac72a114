package handler

import (
	"math"
	"reflect"
	"testing"
)

func TestPaginateSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name       string
		page       int
		limit      int
		want       []int
		totalPages int
	}{
		{"first page", 1, 2, []int{1, 2}, 3},
		{"last partial page", 3, 2, []int{5}, 3},
		{"past the end", 4, 2, []int{}, 3},
		{"page below one", 0, 2, []int{1, 2}, 3},
		{"default limit", 1, 0, []int{1, 2, 3, 4, 5}, 1},
		{"huge page", 184467440737095517, 100, []int{}, 1},
		{"max page", math.MaxInt, 2, []int{}, 3},
		{"max limit", 1, math.MaxInt, []int{1, 2, 3, 4, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaginateSlice(items, tt.page, tt.limit)
			if !reflect.DeepEqual(got.Data, tt.want) {
				t.Errorf("Data = %v, want %v", got.Data, tt.want)
			}
			if got.Meta.TotalItems != 5 || got.Meta.TotalPages != tt.totalPages {
				t.Errorf("Meta = %+v", got.Meta)
			}
		})
	}
}

func TestPaginateSliceEmpty(t *testing.T) {
	got := PaginateSlice[int](nil, 1, 10)
	if got.Data == nil || len(got.Data) != 0 || got.Meta.TotalPages != 0 {
		t.Errorf("got %+v", got)
	}
}
