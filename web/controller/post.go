package controller

import (
	"net/http"
	"strconv"

	"pinboard/filestore"
	"pinboard/logger"
	"pinboard/web/middleware"
	"pinboard/web/service"

	"github.com/gin-gonic/gin"
)

// PostController handles posts and their comments.
type PostController struct {
	BaseController

	postService *service.PostService
	uploads     *filestore.Store
}

func NewPostController(g *gin.RouterGroup, postService *service.PostService, uploads *filestore.Store) *PostController {
	a := &PostController{postService: postService, uploads: uploads}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/posts", a.list)
	g.GET("/post/:id", a.view)

	auth := g.Group("")
	auth.Use(a.checkLogin)
	auth.POST("/post", a.create)
	auth.POST("/post/:id/update", a.update)
	auth.POST("/post/:id/delete", a.delete)
	auth.POST("/post/:id/comment", a.addComment)
	auth.POST("/comment/:id/delete", a.deleteComment)
}

func (a *PostController) list(c *gin.Context) {
	posts, err := a.postService.AllPosts()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, posts, nil)
}

func (a *PostController) view(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	post, err := a.postService.GetPost(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	comments, err := a.postService.Comments(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonObj(c, gin.H{"post": post, "comments": comments, "commentCount": len(comments)}, nil)
}

// create makes a new post; requires the WRITE permission.
func (a *PostController) create(c *gin.Context) {
	account := middleware.Account(c)
	if d := service.CanCreatePost(account); !d.Allowed {
		denied(c, d)
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "post.missingFields"))
		return
	}
	categoryId := optionalIntForm(c, "categoryId")

	imageRef, err := a.storeImage(c)
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}

	post, err := a.postService.CreatePost(account.Id, title, content, categoryId, imageRef)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "post.created"), post, nil)
}

// update edits a post; only the author or an admin may do so.
func (a *PostController) update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	post, err := a.postService.GetPost(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	account := middleware.Account(c)
	if d := service.CanModifyOwned(account, post.AuthorId); !d.Allowed {
		denied(c, d)
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "post.missingFields"))
		return
	}
	categoryId := optionalIntForm(c, "categoryId")

	imageRef, err := a.storeImage(c)
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	if imageRef != "" && post.ImageRef != "" {
		if err := a.uploads.Delete(post.ImageRef); err != nil {
			logger.Warning("unable to delete old post image:", err)
		}
	}

	if err := a.postService.UpdatePost(id, title, content, categoryId, imageRef); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "post.updated"), nil)
}

// delete removes a post and all its comments; author or admin only.
func (a *PostController) delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	post, err := a.postService.GetPost(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	account := middleware.Account(c)
	if d := service.CanModifyOwned(account, post.AuthorId); !d.Allowed {
		denied(c, d)
		return
	}

	imageRef, err := a.postService.DeletePost(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	if imageRef != "" {
		if err := a.uploads.Delete(imageRef); err != nil {
			logger.Warning("unable to delete post image:", err)
		}
	}
	jsonMsg(c, I18nWeb(c, "post.deleted"), nil)
}

// addComment requires the COMMENT permission.
func (a *PostController) addComment(c *gin.Context) {
	account := middleware.Account(c)
	if d := service.CanComment(account); !d.Allowed {
		denied(c, d)
		return
	}

	postId, _ := strconv.Atoi(c.Param("id"))
	content := c.PostForm("content")
	if content == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}

	comment, err := a.postService.AddComment(account.Id, postId, content)
	if err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "comment.added"), comment, nil)
}

// deleteComment allows the comment author, an admin or a moderator.
func (a *PostController) deleteComment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	comment, err := a.postService.GetComment(id)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	account := middleware.Account(c)
	if d := service.CanDeleteComment(account, comment.AuthorId); !d.Allowed {
		denied(c, d)
		return
	}

	if err := a.postService.DeleteComment(id); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "comment.deleted"), nil)
}

// storeImage saves an optional "image" upload and returns its reference.
func (a *PostController) storeImage(c *gin.Context) (string, error) {
	name, data, err := readUploadedFile(c, "image")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}
	return a.uploads.Save(name, data)
}

// optionalIntForm parses an optional integer form value.
func optionalIntForm(c *gin.Context, field string) *int {
	value := c.PostForm(field)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
