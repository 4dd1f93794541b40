package routes

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/lukenewport-prog/nptgpt/controllers"
	"github.com/lukenewport-prog/nptgpt/middlewares"
	"github.com/lukenewport-prog/nptgpt/services"
)

type Options struct {
	StaticDir string
	UploadDir string

	Auth   *services.AuthService
	Chat   controllers.TurnHandler
	Upload *controllers.UploadController
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.Logger())
	r.Use(middlewares.CORS())

	authController := controllers.NewAuthController(opts.Auth)
	chatController := controllers.NewChatController(opts.Chat)
	requireAuth := middlewares.Auth(opts.Auth)

	// Login endpoint and login-page assets stay public.
	r.POST("/api/login", authController.HandleLogin)
	r.POST("/api/logout", authController.HandleLogout)
	for _, name := range []string{"login.html", "styles.css", "script.js", "favicon.ico"} {
		r.StaticFile("/"+name, filepath.Join(opts.StaticDir, name))
	}

	// Everything else sits behind the token.
	r.GET("/", requireAuth, func(c *gin.Context) {
		c.File(filepath.Join(opts.StaticDir, "index.html"))
	})
	r.GET("/uploads/:name", requireAuth, func(c *gin.Context) {
		c.File(filepath.Join(opts.UploadDir, filepath.Base(c.Param("name"))))
	})

	api := r.Group("/api", requireAuth)
	api.POST("/chat", chatController.HandleChat)
	api.POST("/upload", opts.Upload.HandleUpload)

	return r
}
