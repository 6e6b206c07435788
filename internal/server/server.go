package server

import (
	"net/http"
	"time"

	"StockProphet/internal/auth"
	"StockProphet/internal/predictor"
	"StockProphet/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Auth            auth.Service
	Predictions     *service.PredictionService
	Demo            *predictor.Demo
	Watchlist       []string
	WatchlistMonths int
	AllowedOrigins  []string
}

// Server holds the handlers of the dashboard API.
type Server struct {
	deps     Deps
	validate *validator.Validate
}

// NewRouter builds the gin engine with every route registered under /api.
func NewRouter(deps Deps) *gin.Engine {
	s := &Server{deps: deps, validate: validator.New()}

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.HEAD("/health", s.health)

	authed := requireAuth(deps.Auth)

	a := api.Group("/auth")
	a.POST("/signup", s.signup)
	a.POST("/login", s.login)
	a.POST("/logout", authed, s.logout)
	a.GET("/me", authed, s.me)

	p := api.Group("/predictions")
	p.GET("/demo", s.demo)
	p.POST("", authed, s.predict)
	p.GET("/history", authed, s.history)

	acct := api.Group("/account", authed)
	acct.PUT("/premium", s.setPremium)
	acct.GET("/portfolio", requirePremium(), s.portfolio)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.Status(http.StatusOK)
}
