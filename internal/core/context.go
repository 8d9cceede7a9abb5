package core

import "context"

type contextKey string

const ctxKeyTenant contextKey = "tenant_id"

// ContextWithTenant adds the active tenant id to ctx.
func ContextWithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, ctxKeyTenant, tenantID)
}

// TenantFromContext returns the tenant id set by ContextWithTenant, or
// DefaultTenantID.
func TenantFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyTenant).(string); ok && v != "" {
		return v
	}
	return DefaultTenantID
}
