package util

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// EndpointAddr returns the host:port an endpoint URL dials, filling in
// the scheme's default port.
func EndpointAddr(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint %q has no host", endpoint)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		return net.JoinHostPort(u.Hostname(), "80"), nil
	case "https":
		return net.JoinHostPort(u.Hostname(), "443"), nil
	}
	return "", fmt.Errorf("endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
}

// ValidEndpoint reports whether endpoint is an absolute http(s) URL.
func ValidEndpoint(endpoint string) bool {
	_, err := EndpointAddr(endpoint)
	return err == nil
}
