// Package middleware contains gin middleware for the web server.
package middleware

import (
	"github.com/gin-gonic/gin"

	"pinboard/database/model"
	"pinboard/logger"
	"pinboard/web/service"
	"pinboard/web/session"
)

const loginAccountKey = "login_account"

// SessionAuth resolves the session's account id to a fresh Account on every
// request. Accounts are never cached across requests, so role and permission
// changes take effect immediately. Deactivated or deleted accounts resolve
// to anonymous and the stale session is cleared.
func SessionAuth(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.GetLoginAccountId(c)
		if id == 0 {
			c.Next()
			return
		}
		account, err := userService.GetAccount(id)
		if err != nil || !account.Active {
			if err != nil {
				logger.Debug("session account lookup failed:", err)
			}
			if err := session.ClearSession(c); err != nil {
				logger.Warning("unable to clear stale session:", err)
			}
			c.Next()
			return
		}
		c.Set(loginAccountKey, account)
		c.Next()
	}
}

// Account returns the resolved account for this request, or nil for
// anonymous.
func Account(c *gin.Context) *model.Account {
	if obj, ok := c.Get(loginAccountKey); ok {
		if account, ok := obj.(*model.Account); ok {
			return account
		}
	}
	return nil
}
