package auth

import "context"

type subjectKey struct{}

// WithSubject attaches the authenticated user id. Admin logins use the admin email.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// SubjectFromContext returns the id set by JWTMiddleware, or "" for anonymous requests.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey{}).(string)
	return sub
}
