package utils

import (
	"net/url"
	"strings"
)

// PlatformFromURL detects which hosting platform a mix URL points at.
// Returns "" when the host is none of the supported platforms.
func PlatformFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.HasSuffix(host, "soundcloud.com"):
		return "soundcloud"
	case strings.HasSuffix(host, "mixcloud.com"):
		return "mixcloud"
	case strings.HasSuffix(host, "youtube.com"), host == "youtu.be":
		return "youtube"
	}
	return ""
}

// EmbedURL converts a public mix URL into the platform's iframe embed URL.
// Unknown platforms and unparseable URLs come back unchanged.
func EmbedURL(raw, platform string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	switch platform {
	case "soundcloud":
		return "https://w.soundcloud.com/player/?url=" + url.QueryEscape(raw)
	case "mixcloud":
		return "https://www.mixcloud.com/widget/iframe/?hide_cover=1&feed=" + url.QueryEscape(u.Path)
	case "youtube":
		var videoID string
		host := strings.ToLower(u.Hostname())
		if host == "youtu.be" {
			videoID = strings.TrimPrefix(u.Path, "/")
		} else if strings.HasSuffix(host, "youtube.com") {
			videoID = u.Query().Get("v")
		}
		return "https://www.youtube.com/embed/" + videoID
	}
	return raw
}
