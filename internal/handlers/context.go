package handlers

import "context"

type domainPrefixKey struct{}

// ContextWithDomainPrefix stores the tenant subdomain extracted from the
// request host.
func ContextWithDomainPrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, domainPrefixKey{}, prefix)
}

// DomainPrefixFromContext returns the tenant subdomain for the request, or
// "" when the request arrived on a bare host.
func DomainPrefixFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(domainPrefixKey{}).(string); ok {
		return v
	}

	return ""
}
