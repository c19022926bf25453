package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid does a cheap sanity check on the address domain: it
// must at least resolve an MX or A record. Not a deliverability guarantee.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if addrs, err := net.LookupHost(domain); err == nil && len(addrs) > 0 {
		return true
	}

	return false
}
