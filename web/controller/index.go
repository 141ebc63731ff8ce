package controller

import (
	"errors"
	"net/http"

	"pinboard/config"
	"pinboard/logger"
	"pinboard/web/locale"
	"pinboard/web/middleware"
	"pinboard/web/service"
	"pinboard/web/session"

	"github.com/gin-gonic/gin"
)

// sessionMaxAge is how long a login is trusted before the cookie expires.
const sessionMaxAge = 7 * 24 * 3600

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles login, logout, registration and language choice.
type IndexController struct {
	BaseController

	userService *service.UserService
}

func NewIndexController(g *gin.RouterGroup, userService *service.UserService) *IndexController {
	a := &IndexController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/login", a.login)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)
	g.POST("/language", a.setLanguage)
}

// index identifies the board and, for logged-in clients, the current
// account.
func (a *IndexController) index(c *gin.Context) {
	jsonObj(c, gin.H{
		"name":    config.GetName(),
		"version": config.GetVersion(),
		"account": middleware.Account(c),
	}, nil)
}

// register creates a new account. Duplicate usernames and emails both get
// the same inline error.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	if form.Username == "" || form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password)
	if errors.Is(err, service.ErrDuplicateAccount) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "auth.duplicateAccount"))
		return
	} else if err != nil {
		jsonFailure(c, err)
		return
	}
	pureJsonMsg(c, http.StatusOK, true, I18nWeb(c, "auth.registerSuccess"))
}

// login authenticates and binds the account to the session. The failure
// message never reveals whether the username or the password was wrong.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}

	account, err := a.userService.Authenticate(form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "auth.invalidCredentials"))
		return
	} else if err != nil {
		jsonFailure(c, err)
		return
	}

	if err := session.SetMaxAge(c, sessionMaxAge); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginAccount(c, account.Id); err != nil {
		logger.Warning("unable to save session:", err)
		jsonFailure(c, err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", account.Username, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "auth.loginSuccess"), nil)
}

// logout invalidates the session binding.
func (a *IndexController) logout(c *gin.Context) {
	if account := middleware.Account(c); account != nil {
		logger.Infof("%s logged out successfully", account.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// setLanguage stores the preferred language in the session.
func (a *IndexController) setLanguage(c *gin.Context) {
	lang := c.PostForm("language")
	if !locale.IsSupported(lang) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "language.unsupported"))
		return
	}
	if err := session.SetLanguage(c, lang); err != nil {
		jsonFailure(c, err)
		return
	}
	pureJsonMsg(c, http.StatusOK, true, I18nWeb(c, "language.updated"))
}
