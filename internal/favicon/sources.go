package favicon

import (
	"net/url"
	"strings"
)

// DefaultSources are tried in order for every card. {origin} expands to
// scheme://host of the card url, {host} to the bare host.
var DefaultSources = []string{
	"https://www.google.com/s2/favicons?domain={origin}&sz=64",
	"https://favicon.im/{origin}",
	"{origin}/favicon.ico",
}

// Origin returns scheme://host for an absolute http(s) url.
func Origin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", false
	}
	return strings.ToLower(u.Scheme) + "://" + u.Host, true
}

// expand fills every template for one origin.
func expand(templates []string, origin string) []string {
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	r := strings.NewReplacer("{origin}", origin, "{host}", host)
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = r.Replace(t)
	}
	return out
}
