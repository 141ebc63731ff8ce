package controller

import (
	"errors"
	"net/http"
	"strconv"

	"pinboard/database/model"
	"pinboard/web/middleware"
	"pinboard/web/service"

	"github.com/gin-gonic/gin"
)

// AdminController handles the administrative surface: dashboard, categories,
// roles and user accounts. Every handler starts with an explicit RequireAdmin
// guard call.
type AdminController struct {
	BaseController

	userService     *service.UserService
	roleService     *service.RoleService
	categoryService *service.CategoryService
	activityService *service.ActivityService
	serverService   *service.ServerService
}

func NewAdminController(g *gin.RouterGroup,
	userService *service.UserService,
	roleService *service.RoleService,
	categoryService *service.CategoryService,
	activityService *service.ActivityService,
	serverService *service.ServerService,
) *AdminController {
	a := &AdminController{
		userService:     userService,
		roleService:     roleService,
		categoryService: categoryService,
		activityService: activityService,
		serverService:   serverService,
	}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	admin.Use(a.checkLogin)

	admin.GET("/dashboard", a.dashboard)

	admin.GET("/categories", a.categories)
	admin.POST("/categories", a.createCategory)
	admin.POST("/categories/:id/update", a.updateCategory)
	admin.POST("/categories/:id/delete", a.deleteCategory)

	admin.GET("/roles", a.roles)
	admin.POST("/roles", a.createRole)
	admin.POST("/roles/:id/update", a.updateRole)
	admin.POST("/roles/:id/delete", a.deleteRole)

	admin.GET("/users", a.users)
	admin.POST("/users/:id/update", a.updateUser)
	admin.POST("/users/:id/role", a.assignRole)
	admin.POST("/users/:id/toggle", a.toggleUser)
}

// requireAdmin runs the admin guard for the current request. Returns nil
// after writing the denial when the caller is not an admin.
func (a *AdminController) requireAdmin(c *gin.Context) *model.Account {
	account := middleware.Account(c)
	if d := service.RequireAdmin(account); !d.Allowed {
		denied(c, d)
		return nil
	}
	return account
}

func (a *AdminController) dashboard(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}

	stats, err := a.serverService.Stats()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	activities, err := a.activityService.Recent(10)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	users, err := a.userService.AllAccounts()
	if err != nil {
		jsonFailure(c, err)
		return
	}

	jsonObj(c, gin.H{
		"stats":            stats,
		"status":           a.serverService.Status(),
		"recentActivities": activities,
		"users":            users,
	}, nil)
}

func (a *AdminController) categories(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	categories, err := a.categoryService.AllCategories()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, categories, nil)
}

func (a *AdminController) createCategory(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	name := c.PostForm("name")
	if name == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	category, err := a.categoryService.CreateCategory(name, c.PostForm("description"))
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "category.created"), category, nil)
}

func (a *AdminController) updateCategory(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	name := c.PostForm("name")
	if name == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	if err := a.categoryService.UpdateCategory(id, name, c.PostForm("description")); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "category.updated"), nil)
}

func (a *AdminController) deleteCategory(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	if err := a.categoryService.DeleteCategory(id); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "category.deleted"), nil)
}

func (a *AdminController) roles(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	roles, err := a.roleService.AllRoles()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, roles, nil)
}

// createRole builds the bitmask from the submitted flags; unknown bits are
// rejected before anything is stored.
func (a *AdminController) createRole(c *gin.Context) {
	account := a.requireAdmin(c)
	if account == nil {
		return
	}

	name := c.PostForm("name")
	if name == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	perms, err := model.ParsePermissions(c.PostFormArray("permissions"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "role.invalidPermissions"))
		return
	}

	role, err := a.roleService.CreateRole(account.Id, name, perms)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "role.created"), role, nil)
}

func (a *AdminController) updateRole(c *gin.Context) {
	account := a.requireAdmin(c)
	if account == nil {
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	name := c.PostForm("name")
	if name == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	perms, err := model.ParsePermissions(c.PostFormArray("permissions"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "role.invalidPermissions"))
		return
	}

	if err := a.roleService.UpdateRole(account.Id, id, name, perms); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "role.updated"), nil)
}

func (a *AdminController) deleteRole(c *gin.Context) {
	account := a.requireAdmin(c)
	if account == nil {
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	err := a.roleService.DeleteRole(account.Id, id)
	if errors.Is(err, service.ErrRoleInUse) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "role.inUse"))
		return
	} else if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "role.deleted"), nil)
}

func (a *AdminController) users(c *gin.Context) {
	if a.requireAdmin(c) == nil {
		return
	}
	users, err := a.userService.AllAccounts()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, users, nil)
}

func (a *AdminController) updateUser(c *gin.Context) {
	account := a.requireAdmin(c)
	if account == nil {
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	username := c.PostForm("username")
	email := c.PostForm("email")
	if username == "" || email == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	roleId := optionalIntForm(c, "roleId")

	err := a.userService.UpdateAccount(account.Id, id, username, email, roleId)
	if errors.Is(err, service.ErrDuplicateAccount) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "auth.duplicateAccount"))
		return
	} else if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "user.updated"), nil)
}

// assignRole sets or clears the target's role. An empty roleId unassigns.
func (a *AdminController) assignRole(c *gin.Context) {
	account := a.requireAdmin(c)
	if account == nil {
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	roleId := optionalIntForm(c, "roleId")

	if err := a.userService.AssignRole(account.Id, id, roleId); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "user.updated"), nil)
}

// toggleUser flips another account's active flag. Self-deactivation is
// forbidden by the guard.
func (a *AdminController) toggleUser(c *gin.Context) {
	account := middleware.Account(c)
	id, _ := strconv.Atoi(c.Param("id"))

	if d := service.CanToggleActive(account, id); !d.Allowed {
		denied(c, d)
		return
	}

	target, err := a.userService.GetAccount(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	active, err := a.userService.ToggleActive(account.Id, id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	status := I18nWeb(c, "user.deactivated")
	if active {
		status = I18nWeb(c, "user.activated")
	}
	jsonMsg(c, I18nWeb(c, "user.toggled", "Username=="+target.Username, "Status=="+status), nil)
}
