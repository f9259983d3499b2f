package validators

import (
	"net"
	"strings"
)

// NormalizeHost lowercases h and drops any port and trailing dot.
func NormalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}
	return strings.TrimSuffix(h, ".")
}

// IsSubdomain accepts a single DNS label such as "barbearia-central".
func IsSubdomain(s string) bool {
	return !strings.Contains(s, ".") &&
		validate.Var(s, "required,max=63,hostname_rfc1123") == nil
}

// IsDomain accepts a fully qualified name such as "barbeariacentral.com.br".
func IsDomain(s string) bool {
	return validate.Var(s, "required,max=255,fqdn") == nil
}
