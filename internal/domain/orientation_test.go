package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOrientation(t *testing.T) {
	bounds := DefaultBounds()

	tests := []struct {
		name  string
		table Table
		want  Orientation
		swap  bool
	}{
		{
			name: "reversed headers",
			table: rawTable(
				[]string{"a", "-1.5", "52.0", ""},
				[]string{"b", "0.2", "51.4", ""},
				[]string{"c", "", "53.0", ""},
			),
			want: Orientation{AsWritten: 0, Swapped: 2},
			swap: true,
		},
		{
			name: "correct headers",
			table: rawTable(
				[]string{"a", "52.0", "-1.5", ""},
				[]string{"b", "bad", "-1.5", ""},
			),
			want: Orientation{AsWritten: 1, Swapped: 0},
			swap: false,
		},
		{
			name:  "missing column",
			table: Table{Header: []string{"Latitude"}, Rows: []Row{{Line: 2, Values: []string{"52"}}}},
			want:  Orientation{},
			swap:  false,
		},
		{
			name:  "nothing inside either way",
			table: rawTable([]string{"a", "90", "200", ""}),
			want:  Orientation{},
			swap:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectOrientation(tt.table, bounds)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.swap, got.SwapLikely())
		})
	}
}
