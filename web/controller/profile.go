package controller

import (
	"pinboard/filestore"
	"pinboard/logger"
	"pinboard/web/middleware"
	"pinboard/web/service"
	"pinboard/web/session"

	"github.com/gin-gonic/gin"
)

// ProfileController handles viewing and editing profiles and self-service
// account deletion.
type ProfileController struct {
	BaseController

	userService *service.UserService
	uploads     *filestore.Store
}

func NewProfileController(g *gin.RouterGroup, userService *service.UserService, uploads *filestore.Store) *ProfileController {
	a := &ProfileController{userService: userService, uploads: uploads}
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g.GET("/profile/:username", a.viewOther)

	auth := g.Group("")
	auth.Use(a.checkLogin)
	auth.GET("/profile", a.view)
	auth.POST("/profile/update", a.update)
	auth.POST("/profile/delete", a.deleteAccount)
}

func (a *ProfileController) view(c *gin.Context) {
	jsonObj(c, middleware.Account(c), nil)
}

func (a *ProfileController) viewOther(c *gin.Context) {
	account, err := a.userService.GetAccountByUsername(c.Param("username"))
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, account, nil)
}

func (a *ProfileController) update(c *gin.Context) {
	account := middleware.Account(c)

	avatarRef := ""
	name, data, err := readUploadedFile(c, "avatar")
	if err == nil && name != "" {
		ref, err := a.uploads.Save(name, data)
		if err != nil {
			logger.Warning("avatar upload rejected:", err)
		} else {
			avatarRef = ref
			if account.Avatar != "" {
				if err := a.uploads.Delete(account.Avatar); err != nil {
					logger.Warning("unable to delete old avatar:", err)
				}
			}
		}
	}

	err = a.userService.UpdateProfile(account.Id,
		c.PostForm("bio"),
		c.PostForm("location"),
		c.PostForm("website"),
		c.PostForm("newsletter") == "on" || c.PostForm("newsletter") == "true",
		avatarRef)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "profile.updated"), nil)
}

// deleteAccount is self-service: the acting identity removes itself and its
// owned content, no admin check involved.
func (a *ProfileController) deleteAccount(c *gin.Context) {
	account := middleware.Account(c)
	if err := a.userService.DeleteAccount(account.Id); err != nil {
		jsonFailure(c, err)
		return
	}
	if account.Avatar != "" {
		if err := a.uploads.Delete(account.Avatar); err != nil {
			logger.Warning("unable to delete avatar:", err)
		}
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	jsonMsg(c, I18nWeb(c, "profile.accountDeleted"), nil)
}
