package playlist

import (
	"net/url"
	"strings"
)

// videoIDLength is the fixed length of YouTube video ids.
const videoIDLength = 11

// ExtractVideoID parses the supported YouTube URL shapes into the stable
// 11-character video id:
//
//	https://www.youtube.com/watch?v=dQw4w9WgXcQ
//	https://youtu.be/dQw4w9WgXcQ
//	https://www.youtube.com/embed/dQw4w9WgXcQ
//
// It returns ("", false) for anything else: empty input, malformed URLs,
// unknown hosts, or ids of the wrong shape. It never panics.
func ExtractVideoID(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	// Tolerate scheme-less input like "youtube.com/watch?v=..."
	if u.Host == "" && u.Scheme == "" {
		u, err = url.Parse("https://" + rawURL)
		if err != nil {
			return "", false
		}
	}

	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		if strings.HasPrefix(u.Path, "/embed/") {
			id = strings.TrimPrefix(u.Path, "/embed/")
			id = strings.SplitN(id, "/", 2)[0]
		} else if u.Path == "/watch" {
			id = u.Query().Get("v")
		}
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
		id = strings.SplitN(id, "/", 2)[0]
	default:
		return "", false
	}

	if !validVideoID(id) {
		return "", false
	}
	return id, true
}

func validVideoID(id string) bool {
	if len(id) != videoIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
