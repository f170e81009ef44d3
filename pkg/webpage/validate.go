package webpage

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrInvalidURL marks a URL rejected before any network I/O was attempted.
// It is a caller error, distinct from a fetch failure.
var ErrInvalidURL = errors.New("invalid URL")

// blockedHosts are literal hostnames rejected outright.
var blockedHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"::1":       {},
}

// ValidateURL rejects URLs the fetcher must never request: unparseable
// values, non-HTTP schemes, loopback/private/link-local targets, and hosts
// outside the TLD allowlist. Hostnames that are not IP literals are not
// resolved here, so a hostname pointing at a private address at request
// time still gets through (accepted residual risk).
func ValidateURL(rawURL string, allowedTLDs []string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	if _, blocked := blockedHosts[host]; blocked {
		return fmt.Errorf("%w: host %q is not allowed", ErrInvalidURL, host)
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("%w: IP %s is in a reserved range", ErrInvalidURL, ip)
		}
		// Public IP literals still have no TLD, so they fail the suffix
		// check below unless explicitly allowed.
	}

	if !hasAllowedSuffix(host, allowedTLDs) {
		return fmt.Errorf("%w: host %q is outside the allowed TLDs %v", ErrInvalidURL, host, allowedTLDs)
	}

	return nil
}

func hasAllowedSuffix(host string, allowedTLDs []string) bool {
	for _, tld := range allowedTLDs {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	return false
}
