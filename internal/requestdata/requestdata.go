// Package requestdata carries per-request identity through context instead
// of ambient session state.
package requestdata

import (
	"context"
)

type contextKey struct{}

type RequestData struct {
	UserID      uint
	TokenString string
	RequestID   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(contextKey{}).(*RequestData)
	return rd
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(ctx context.Context) uint {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.UserID
	}
	return 0
}
