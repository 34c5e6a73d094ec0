package common

import "context"

type adminSubjectKey struct{}

// WithAdminSubject stores the authenticated admin subject on the context.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey{}, subject)
}

// AdminSubject extracts the authenticated admin subject, reporting presence.
func AdminSubject(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminSubjectKey{}).(string)
	return v, ok && v != ""
}
