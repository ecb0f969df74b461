package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptContent(t *testing.T) {
	t.Parallel()
	cfg := Config{}.withDefaults()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "empty", content: "", want: false},
		{name: "short shell", content: "Please enable JavaScript to continue.", want: false},
		{
			name:    "short but no indicator",
			content: strings.Repeat("lorem ipsum dolor sit amet ", 12),
			want:    false,
		},
		{
			name:    "short with indicator",
			content: "Our clinic offers family counseling. " + strings.Repeat("We are open weekdays. ", 10),
			want:    true,
		},
		{
			name:    "large without indicator",
			content: strings.Repeat("lorem ipsum dolor sit amet ", 100),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, acceptContent(tt.content, cfg))
		})
	}
}
