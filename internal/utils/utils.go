package utils

import (
	"net/url"
	"strings"
)

// NormalizeRoutePrefix returns "" or "/prefix" from input, accepting raw paths or full URLs.
func NormalizeRoutePrefix(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || s == "/" {
		return ""
	}
	// If someone passes a full URL, keep only the .Path.
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	if s == "/" {
		return ""
	}
	return s
}

// ObfuscateURL hides the path of a webhook URL, which carries its token,
// keeping the scheme, host, and first 2 and last 2 characters of the path.
// Example: "https://chat.example.com/ho********yz"
func ObfuscateURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "[invalid url]"
	}

	origin := u.Scheme + "://" + u.Host
	path := strings.TrimPrefix(u.Path, "/")
	n := len(path)

	if n <= 4 {
		return origin + "/" + strings.Repeat("*", n)
	}

	return origin + "/" + path[:2] + strings.Repeat("*", n-4) + path[n-2:]
}
