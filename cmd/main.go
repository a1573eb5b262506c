package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/database"
	"github.com/dhanyabad11/PrepForge-Backend/internal/cache"
	adminctrl "github.com/dhanyabad11/PrepForge-Backend/internal/controller/admin"
	userctrl "github.com/dhanyabad11/PrepForge-Backend/internal/controller/user"
	"github.com/dhanyabad11/PrepForge-Backend/internal/jobs"
	"github.com/dhanyabad11/PrepForge-Backend/internal/logger"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/dhanyabad11/PrepForge-Backend/internal/router"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title PrepForge Interview Practice API
// @version 1.0
// @description Interview question generation, answer feedback, progress tracking and saved question sets.
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			cache.NewCache,
			cache.NewMemoizer,
			router.NewEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewInterviewRepository,
			repository.NewAnswerRepository,
			repository.NewProgressRepository,
			repository.NewSavedQuestionSetRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewSkillConverterService,
			service.NewQuestionGeneratorService,
			service.NewFeedbackService,
			service.NewProgressService,
			service.NewInterviewService,
			service.NewAnswerService,
			service.NewStatsService,
			service.NewBookmarkService,
		),

		fx.Provide(
			userctrl.NewInterviewController,
			userctrl.NewFeedbackController,
			userctrl.NewBookmarkController,
			adminctrl.NewProgressController,
			jobs.NewScheduler,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseOnStop),
		fx.Invoke(jobs.StartJobs),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}

// RegisterRoutesAndStartServer mounts the API and manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, controllers router.Controllers) {
	router.Register(engine, controllers)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("PrepForge API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return server.Shutdown(ctx)
		},
	})
}

// CloseOnStop releases the model client and cache connection.
func CloseOnStop(lc fx.Lifecycle, llm service.TextGenerator, c cache.Cache, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			for _, res := range []interface{}{llm, c} {
				if closer, ok := res.(io.Closer); ok {
					if err := closer.Close(); err != nil {
						log.Warn().Err(err).Msg("Failed to close resource")
					}
				}
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
