package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData carries the authenticated session payload through the request
// context. PlanKey is the opaque plan identifier from the session; plan
// assignment itself is the account service's concern.
type RequestData struct {
	UserID  uuid.UUID
	PlanKey string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
