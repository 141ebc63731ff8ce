package controller

import (
	"net/http"
	"strconv"

	"pinboard/web/middleware"
	"pinboard/web/service"

	"github.com/gin-gonic/gin"
)

// NewsController handles news articles.
type NewsController struct {
	BaseController

	newsService *service.NewsService
}

func NewNewsController(g *gin.RouterGroup, newsService *service.NewsService) *NewsController {
	a := &NewsController{newsService: newsService}
	a.initRouter(g)
	return a
}

func (a *NewsController) initRouter(g *gin.RouterGroup) {
	g.GET("/news", a.list)
	g.GET("/news/:id", a.view)

	auth := g.Group("")
	auth.Use(a.checkLogin)
	auth.POST("/news", a.create)
	auth.POST("/news/:id/update", a.update)
	auth.POST("/news/:id/delete", a.delete)
}

func (a *NewsController) list(c *gin.Context) {
	news, err := a.newsService.AllNews()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, news, nil)
}

func (a *NewsController) view(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	news, err := a.newsService.GetNews(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, news, nil)
}

func (a *NewsController) create(c *gin.Context) {
	account := middleware.Account(c)
	if d := service.CanCreateNews(account); !d.Allowed {
		denied(c, d)
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	subject := c.PostForm("subject")
	if title == "" || content == "" || subject == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "post.missingFields"))
		return
	}

	news, err := a.newsService.CreateNews(account.Id, title, content, subject)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "news.created"), news, nil)
}

func (a *NewsController) update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	news, err := a.newsService.GetNews(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	account := middleware.Account(c)
	if d := service.CanModifyOwned(account, news.AuthorId); !d.Allowed {
		denied(c, d)
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	subject := c.PostForm("subject")
	if title == "" || content == "" || subject == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "post.missingFields"))
		return
	}

	if err := a.newsService.UpdateNews(id, title, content, subject); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "news.updated"), nil)
}

func (a *NewsController) delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	news, err := a.newsService.GetNews(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	account := middleware.Account(c)
	if d := service.CanModifyOwned(account, news.AuthorId); !d.Allowed {
		denied(c, d)
		return
	}

	if err := a.newsService.DeleteNews(id); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "news.deleted"), nil)
}
