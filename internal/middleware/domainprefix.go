package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shortlyhq/shortly/internal/handlers"
)

// reservedLabels are subdomains that never act as a tenant domain prefix.
var reservedLabels = map[string]bool{
	"www": true,
	"app": true,
}

// DomainPrefix is a middleware that extracts the tenant subdomain from the
// request host and stores it in the request context for redirect resolution.
func DomainPrefix(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		prefix := PrefixFromHost(ctx.Host())
		if prefix != "" {
			ctx = huma.WithContext(ctx, handlers.ContextWithDomainPrefix(ctx.Context(), prefix))
		}

		next(ctx)
	}
}

// PrefixFromHost returns the leftmost label of host when it looks like a
// subdomain of the service, or "" when the host carries no usable prefix.
func PrefixFromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return ""
	}

	prefix := strings.ToLower(labels[0])
	if prefix == "" || reservedLabels[prefix] {
		return ""
	}

	return prefix
}
