package httpx

type ctxKey string

const (
	CtxKeyUserID  ctxKey = "user_id"
	CtxKeySession ctxKey = "session"
)
