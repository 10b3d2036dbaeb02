package worker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{name: "empty", items: nil, size: 3, want: nil},
		{name: "exact", items: []int{1, 2, 3, 4}, size: 2, want: [][]int{{1, 2}, {3, 4}}},
		{name: "remainder", items: []int{1, 2, 3, 4, 5}, size: 2, want: [][]int{{1, 2}, {3, 4}, {5}}},
		{name: "larger than input", items: []int{1, 2}, size: 10, want: [][]int{{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, chunk(tt.items, tt.size)); diff != "" {
				t.Errorf("chunk() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
