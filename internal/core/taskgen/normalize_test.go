package taskgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbering, bullets and duplicates",
			raw:  "1. Buy cake\n- Buy cake\n2) Send invites",
			want: []string{"Buy cake", "Send invites"},
		},
		{
			name: "dedupe is case-insensitive, first occurrence wins",
			raw:  "Buy Cake\nbuy cake\nBUY CAKE",
			want: []string{"Buy Cake"},
		},
		{
			name: "unicode bullets and whitespace",
			raw:  "  • First thing \n\n◦ Second thing\n* Third thing\t",
			want: []string{"First thing", "Second thing", "Third thing"},
		},
		{
			name: "lines that are only markers vanish",
			raw:  "1.\n- \n\nReal task",
			want: []string{"Real task"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "numbering without separator is kept",
			raw:  "2024 planning kickoff",
			want: []string{"2024 planning kickoff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}

	t.Run("caps at MaxBatch", func(t *testing.T) {
		var lines []string
		for i := 0; i < MaxBatch*2; i++ {
			lines = append(lines, "Task "+strings.Repeat("x", i+1))
		}

		got := Normalize(strings.Join(lines, "\n"))
		assert.Len(t, got, MaxBatch)
		assert.Equal(t, "Task x", got[0])
	})
}
