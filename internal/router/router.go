// Package router builds the gin engine and mounts every API route.
package router

import (
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/controller"
	adminctrl "github.com/dhanyabad11/PrepForge-Backend/internal/controller/admin"
	userctrl "github.com/dhanyabad11/PrepForge-Backend/internal/controller/user"
	"github.com/dhanyabad11/PrepForge-Backend/internal/metrics"
	"github.com/dhanyabad11/PrepForge-Backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// Controllers groups the handlers mounted by Register.
type Controllers struct {
	fx.In

	Interviews *userctrl.InterviewController
	Feedback   *userctrl.FeedbackController
	Bookmarks  *userctrl.BookmarkController
	Progress   *adminctrl.ProgressController
}

func NewEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	controller.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware())

	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !contains(origins, "*"),
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

// Register mounts the API under /api/v1.
func Register(r *gin.Engine, c Controllers) {
	api := r.Group("/api/v1")
	{
		interview := api.Group("/interview")
		interview.POST("/generate-questions", c.Interviews.GenerateQuestions)
		interview.POST("/generate-feedback", c.Feedback.GenerateFeedback)
		interview.GET("/user-stats/:userId", c.Feedback.GetUserStats)
		interview.GET("/interview-history/:userId", c.Interviews.GetInterviewHistory)
		interview.GET("/interview-details/:interviewId", c.Interviews.GetInterviewDetails)
		interview.PATCH("/:interviewId/complete", c.Interviews.CompleteInterview)

		saved := api.Group("/saved-questions")
		saved.POST("/save", c.Bookmarks.SaveQuestionSet)
		saved.GET("/user/:userId", c.Bookmarks.ListQuestionSets)
		saved.PATCH("/:setId/favorite", c.Bookmarks.ToggleFavorite)
		saved.POST("/:setId/practice", c.Bookmarks.RecordPractice)
		saved.DELETE("/:setId", c.Bookmarks.DeleteQuestionSet)

		admin := api.Group("/admin")
		admin.POST("/progress/:userId/rebuild", c.Progress.RebuildProgress)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
