package validator

import "testing"

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"http://youtu.be/dQw4w9WgXcQ", true},
		{"not-a-url", false},
		{"", false},
		{"https://vimeo.com/12345", false},
		{"https://evil.com/youtube.com", false},
		{"ftp://youtube.com/watch", false},
		{"youtube.com/watch?v=dQw4w9WgXcQ", false},
	}
	for _, tt := range tests {
		if got := IsSupportedURL(tt.url); got != tt.want {
			t.Errorf("IsSupportedURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
