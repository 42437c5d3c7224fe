package uptime

import (
	"fmt"
	"net/url"
	"strings"
)

// FriendlyName labels a monitor "Client (host)" so it is recognizable in the
// vendor dashboard. When one half is missing the other is used alone.
func FriendlyName(clientName, website string) string {
	clientName = strings.TrimSpace(clientName)
	host := siteHost(website)

	switch {
	case clientName == "":
		return strings.TrimSpace(website)
	case host == "":
		return clientName
	}

	return fmt.Sprintf("%s (%s)", clientName, host)
}

// siteHost returns the lower-cased host of a client website without port or
// "www." prefix, or "" when there is none. Bare hosts are accepted.
func siteHost(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}

	if !strings.Contains(website, "://") {
		website = "https://" + website
	}

	u, err := url.Parse(website)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
