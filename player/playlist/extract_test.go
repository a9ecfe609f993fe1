package playlist

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		want  string
		valid bool
	}{
		{
			name:  "canonical watch URL",
			url:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "watch URL without www",
			url:   "https://youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "mobile watch URL",
			url:   "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "share short URL",
			url:   "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "share short URL with query",
			url:   "https://youtu.be/dQw4w9WgXcQ?t=42",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "embed URL",
			url:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "watch URL with extra params",
			url:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "scheme-less watch URL",
			url:   "youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			valid: true,
		},
		{
			name:  "id with dash and underscore",
			url:   "https://youtu.be/a-b_c1D2e3F",
			want:  "a-b_c1D2e3F",
			valid: true,
		},
		{name: "empty"},
		{name: "whitespace only", url: "   "},
		{name: "not a URL at all", url: "not-a-video-url"},
		{name: "wrong host", url: "https://vimeo.com/123456789"},
		{name: "lookalike host", url: "https://notyoutube.com/watch?v=dQw4w9WgXcQ"},
		{name: "watch URL without v param", url: "https://www.youtube.com/watch?t=10"},
		{name: "id too short", url: "https://youtu.be/short"},
		{name: "id too long", url: "https://youtu.be/dQw4w9WgXcQQQ"},
		{name: "id with invalid characters", url: "https://youtu.be/dQw4w9Wg!cQ"},
		{name: "non-http scheme", url: "ftp://youtube.com/watch?v=dQw4w9WgXcQ"},
		{name: "channel path", url: "https://www.youtube.com/channel/UC123"},
		{name: "bare host", url: "https://www.youtube.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.url)
			if ok != tc.valid {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tc.url, ok, tc.valid)
			}
			if got != tc.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		name     string
		idx      int
		length   int
		expected int
	}{
		{"in range", 2, 5, 2},
		{"negative", -1, 5, 0},
		{"past end", 7, 5, 4},
		{"empty playlist", 3, 0, 0},
		{"exact end", 4, 5, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampIndex(tc.idx, tc.length); got != tc.expected {
				t.Errorf("ClampIndex(%d, %d) = %d, want %d", tc.idx, tc.length, got, tc.expected)
			}
		})
	}
}

func TestTrackDisplay(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected string
	}{
		{"title and artist", Track{Title: "Song", Artist: "Band"}, "Band - Song"},
		{"title only", Track{Title: "Song"}, "Song"},
		{"artist only", Track{Artist: "Band"}, "Band"},
		{"nothing but URL", Track{URL: "https://youtu.be/dQw4w9WgXcQ"}, "https://youtu.be/dQw4w9WgXcQ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.track.Display(); got != tc.expected {
				t.Errorf("Display() = %q, want %q", got, tc.expected)
			}
		})
	}
}
