// Package session binds the logged-in account to the client's cookie
// session. Only the account id is stored; the account itself is re-fetched
// on every request so role and status changes apply without re-login.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginAccountId = "LOGIN_ACCOUNT_ID"
	languageKey    = "LANGUAGE"
)

func SetLoginAccount(c *gin.Context, accountId int) error {
	s := sessions.Default(c)
	s.Set(loginAccountId, accountId)
	return s.Save()
}

// GetLoginAccountId returns the bound account id, or 0 when the session is
// anonymous.
func GetLoginAccountId(c *gin.Context) int {
	s := sessions.Default(c)
	if obj := s.Get(loginAccountId); obj != nil {
		if id, ok := obj.(int); ok {
			return id
		}
	}
	return 0
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

func SetLanguage(c *gin.Context, lang string) error {
	s := sessions.Default(c)
	s.Set(languageKey, lang)
	return s.Save()
}

func GetLanguage(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(languageKey); obj != nil {
		if lang, ok := obj.(string); ok {
			return lang
		}
	}
	return ""
}

// ClearSession drops the login binding and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
