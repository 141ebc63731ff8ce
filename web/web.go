// Package web provides the HTTP server for the board, including routing,
// session handling and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"

	"pinboard/config"
	"pinboard/filestore"
	"pinboard/logger"
	"pinboard/util/common"
	"pinboard/util/random"
	"pinboard/web/controller"
	"pinboard/web/job"
	"pinboard/web/locale"
	"pinboard/web/middleware"
	"pinboard/web/service"
	"pinboard/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed translation/*
var i18nFS embed.FS

// Server is the board's web server with its controllers, services and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	post    *controller.PostController
	news    *controller.NewsController
	profile *controller.ProfileController
	admin   *controller.AdminController

	userService     *service.UserService
	roleService     *service.RoleService
	categoryService *service.CategoryService
	postService     *service.PostService
	newsService     *service.NewsService
	activityService *service.ActivityService
	serverService   *service.ServerService

	db      *gorm.DB
	uploads *filestore.Store

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server around an already initialized database
// handle and upload store.
func NewServer(db *gorm.DB, uploads *filestore.Store) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		db:      db,
		uploads: uploads,

		userService:     service.NewUserService(db),
		roleService:     service.NewRoleService(db),
		categoryService: service.NewCategoryService(db),
		postService:     service.NewPostService(db),
		newsService:     service.NewNewsService(db),
		activityService: service.NewActivityService(db),
		serverService:   service.NewServerService(db),

		ctx:    ctx,
		cancel: cancel,
	}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	secret := config.GetSessionSecret()
	if secret == "" {
		// Sessions do not survive a restart without a configured secret.
		secret = random.Seq(32)
		logger.Warning("BOARD_SESSION_SECRET not set, using a random session secret")
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("pinboard", store))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware(session.GetLanguage))

	engine.Use(middleware.SessionAuth(s.userService))

	engine.Static("/uploads", s.uploads.Root())

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.userService)
	s.post = controller.NewPostController(g, s.postService, s.uploads)
	s.news = controller.NewNewsController(g, s.newsService)
	s.profile = controller.NewProfileController(g, s.userService, s.uploads)
	s.admin = controller.NewAdminController(g, s.userService, s.roleService,
		s.categoryService, s.activityService, s.serverService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@hourly", job.NewCheckpointJob(s.db))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", config.GetListenAddr())
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
