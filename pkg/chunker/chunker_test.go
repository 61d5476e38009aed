package chunker

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		texts     []string
		chunkSize int
		want      []string
	}{
		{
			name:      "even split with remainder",
			texts:     []string{"abcdefghij"},
			chunkSize: 4,
			want:      []string{"abcd", "efgh", "ij"},
		},
		{
			name:      "text shorter than chunk size",
			texts:     []string{"hi"},
			chunkSize: 10,
			want:      []string{"hi"},
		},
		{
			name:      "exact multiple",
			texts:     []string{"abcdef"},
			chunkSize: 3,
			want:      []string{"abc", "def"},
		},
		{
			name:      "multiple texts keep document order",
			texts:     []string{"abcd", "efgh"},
			chunkSize: 2,
			want:      []string{"ab", "cd", "ef", "gh"},
		},
		{
			name:      "empty string yields no chunks",
			texts:     []string{""},
			chunkSize: 4,
			want:      nil,
		},
		{
			name:      "empty input",
			texts:     nil,
			chunkSize: 4,
			want:      nil,
		},
		{
			name:      "non-positive size keeps whole text",
			texts:     []string{"abcdefghij"},
			chunkSize: 0,
			want:      []string{"abcdefghij"},
		},
		{
			name:      "multibyte runes are never split",
			texts:     []string{"héllo wörld"},
			chunkSize: 5,
			want:      []string{"héllo", " wörl", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.texts, tt.chunkSize)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}
