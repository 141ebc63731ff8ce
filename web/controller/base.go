// Package controller provides the HTTP request handlers of the bulletin
// board: authentication, posts, news, profiles and the admin surface.
package controller

import (
	"net/http"

	"pinboard/web/locale"
	"pinboard/web/middleware"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin rejects anonymous requests on routes that require an identity.
func (a *BaseController) checkLogin(c *gin.Context) {
	if middleware.Account(c) == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "auth.loginRequired"))
		c.Abort()
	} else {
		c.Next()
	}
}

// I18nWeb localizes a message for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.Localize(c, name, params...)
}
