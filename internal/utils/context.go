package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

type CustomContext struct {
	AppSource string
	RequestId string
	UserId    string
}

type customContextKeyType string

const customContextKey customContextKeyType = "CUSTOM_CONTEXT"

// gin context keys populated by the api middlewares
const (
	GinKeyRequestId  = "RequestId"
	GinKeyUserId     = "UserId"
	GinKeyCredential = "Credential"
)

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		RequestId: c.GetString(GinKeyRequestId),
		UserId:    c.GetString(GinKeyUserId),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetRequestIdFromContext(ctx context.Context) string {
	return GetContext(ctx).RequestId
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}
