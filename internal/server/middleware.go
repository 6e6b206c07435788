package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"StockProphet/internal/auth"
	"StockProphet/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ctxUser  = "user"
	ctxToken = "token"
)

var errPremiumRequired = errors.New("this page requires a premium account")

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// requireAuth resolves the bearer token to a user or aborts with 401.
func requireAuth(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, auth.ErrSessionNotFound)
			return
		}
		user, err := svc.Current(c.Request.Context(), token)
		if err != nil {
			respondError(c, authStatus(err), err)
			return
		}
		c.Set(ctxUser, user)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// requirePremium must run after requireAuth.
func requirePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := currentUser(c); user == nil || !user.Premium {
			respondError(c, http.StatusForbidden, errPremiumRequired)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
