package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{name: "watch URL", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "watch URL with extra params", url: "https://youtube.com/watch?v=a_b-C1d2E3f&t=42", wantID: "a_b-C1d2E3f", wantOK: true},
		{name: "embed URL", url: "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "id too short", url: "https://youtu.be/short", wantOK: false},
		{name: "other host", url: "https://vimeo.com/123456789012", wantOK: false},
		{name: "bare filename", url: "clip.mp4", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
