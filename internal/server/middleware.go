package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"tradingapp/internal/adapter"
	"tradingapp/internal/identity"
	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

const (
	keyRequestID = "request_id"
	keyUser      = "user"
	keyTrader    = "trader"

	headerRequestID = "X-Request-Id"
)

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = s.traces.Next()
		}
		c.Set(keyRequestID, id)
		c.Header(headerRequestID, id)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		s.metrics.ObserveRequest(status, latency)
		logs.Infof("%s %s %s status=%d latency=%s", id, c.Request.Method, c.Request.URL.Path, status, latency)
	}
}

func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := identity.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			s.abort(c, err)
			return
		}
		user, trader, err := s.identity.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.abort(c, err)
			return
		}
		c.Set(keyUser, user)
		c.Set(keyTrader, trader)
		c.Next()
	}
}

func currentUser(c *gin.Context) model.User {
	return c.MustGet(keyUser).(model.User)
}

func currentTrader(c *gin.Context) model.Trader {
	return c.MustGet(keyTrader).(model.Trader)
}

func statusOf(err error) int {
	switch exception.KindOf(err) {
	case exception.ErrValidation, exception.ErrBusinessRule:
		return http.StatusBadRequest
	case exception.ErrNotFound:
		return http.StatusNotFound
	case exception.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abort writes the error response and stops the handler chain.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusOf(err)
	id := c.GetString(keyRequestID)
	if status >= http.StatusInternalServerError {
		logs.Errorf("%s %s %s failed, err: %+v", id, c.Request.Method, c.Request.URL.Path, err)
	}
	if errors.Is(err, exception.ErrDuplicateRecord) {
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, adapter.NewErrorView(err, id))
}
