package utils

import "testing"

func TestPlatformFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://soundcloud.com/dj/mix-1", "soundcloud"},
		{"https://www.mixcloud.com/dj/set/", "mixcloud"},
		{"https://www.youtube.com/watch?v=abc12345678", "youtube"},
		{"https://youtu.be/abc12345678", "youtube"},
		{"https://open.spotify.com/track/xyz", ""},
		{"::not a url::", ""},
	}
	for _, tc := range cases {
		if got := PlatformFromURL(tc.url); got != tc.want {
			t.Fatalf("PlatformFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	cases := []struct {
		url      string
		platform string
		want     string
	}{
		{
			"https://soundcloud.com/dj/mix-1", "soundcloud",
			"https://w.soundcloud.com/player/?url=https%3A%2F%2Fsoundcloud.com%2Fdj%2Fmix-1",
		},
		{
			"https://www.mixcloud.com/dj/set/", "mixcloud",
			"https://www.mixcloud.com/widget/iframe/?hide_cover=1&feed=%2Fdj%2Fset%2F",
		},
		{
			"https://www.youtube.com/watch?v=abc12345678", "youtube",
			"https://www.youtube.com/embed/abc12345678",
		},
		{
			"https://youtu.be/abc12345678", "youtube",
			"https://www.youtube.com/embed/abc12345678",
		},
		{
			"https://example.com/x", "vimeo",
			"https://example.com/x",
		},
	}
	for _, tc := range cases {
		if got := EmbedURL(tc.url, tc.platform); got != tc.want {
			t.Fatalf("EmbedURL(%q, %q) = %q, want %q", tc.url, tc.platform, got, tc.want)
		}
	}
}
