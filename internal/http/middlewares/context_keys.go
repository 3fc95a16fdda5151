package middlewares

type ctxKey string

const (
	CtxRequestID ctxKey = "request_id"
)

// RequestIDKey is the plain string key the request id is stored under in
// gin.Context.
const RequestIDKey = string(CtxRequestID)
