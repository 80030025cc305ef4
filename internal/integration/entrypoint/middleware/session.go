// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freight-backoffice/backend/internal/domain/entity"
)

const (
	// OperatorHeader names the operator responsible for the request.
	OperatorHeader = "X-Operator"
	// RequestIDHeader carries the request id back to the caller.
	RequestIDHeader = "X-Request-ID"
	// AnonymousOperator is used when no operator header is sent.
	AnonymousOperator = "anonymous"

	sessionKey = "session"
)

// Session returns a Gin middleware that attaches an entity.Session to every request.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := strings.TrimSpace(c.GetHeader(OperatorHeader))
		if operator == "" {
			operator = AnonymousOperator
		}
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(sessionKey, entity.Session{Operator: operator, RequestID: requestID})
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetSession returns the request session, or an anonymous one when the middleware did not run.
func GetSession(c *gin.Context) entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(entity.Session); ok {
			return s
		}
	}
	return entity.Session{Operator: AnonymousOperator, RequestID: uuid.NewString()}
}
