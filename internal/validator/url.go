package validator

import (
	"net/url"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

var supportedHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
}

// IsSupportedURL reports whether raw is an absolute http(s) URL pointing at
// a supported video platform host.
func IsSupportedURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return slice.Contain(supportedHosts, strings.ToLower(u.Hostname()))
}
