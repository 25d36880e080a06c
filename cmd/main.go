package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/lumahealth/authoring/config"
	"github.com/lumahealth/authoring/database"
	_ "github.com/lumahealth/authoring/docs" // Swagger docs - auto-generated
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/controller"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/logger"
	"github.com/lumahealth/authoring/internal/model"
	"github.com/lumahealth/authoring/internal/repository"
	"github.com/lumahealth/authoring/internal/service"
	"github.com/lumahealth/authoring/internal/session"
)

// @title Assessment Authoring API
// @version 1.0
// @description Edit-session orchestration for clinical assessment authoring: content tree editing, library deduplication, relationships, reordering and scoring.
// @contact.name API Support
// @contact.email support@lumahealth.io
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewSectionRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewRelationshipRepository,
			repository.NewLibraryRepository,
			repository.NewScoringRepository,
		),

		fx.Provide(
			NewContentClient,
			NewSearcher,
			library.NewMatcher,
			NewSessionManager,
		),

		fx.Provide(
			service.NewSessionService,
			service.NewRelationshipService,
			service.NewLibraryService,
			service.NewScoringService,
		),

		fx.Provide(controller.NewController),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewContentClient picks the persistence backend for edit sessions: a remote
// content API or this service's own database.
func NewContentClient(
	cfg *config.Config,
	assessments repository.AssessmentRepository,
	sections repository.SectionRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	relationships repository.RelationshipRepository,
	libraryRepo repository.LibraryRepository,
	scoring repository.ScoringRepository,
) contentapi.Client {
	if cfg.ContentAPI.Mode == "remote" {
		log.Info().Str("baseURL", cfg.ContentAPI.BaseURL).Msg("Using remote content API")
		return contentapi.NewHTTPClient(cfg.ContentAPI.BaseURL, cfg.ContentAPI.AccessToken, cfg.Session.RequestTimeout)
	}
	log.Info().Msg("Using local content store")
	return contentapi.NewLocalClient(assessments, sections, questions, answers, relationships, libraryRepo, scoring)
}

// NewSearcher picks the library search backend and, when redis is
// configured, wraps it with the typeahead cache.
func NewSearcher(cfg *config.Config, libraryRepo repository.LibraryRepository) library.Searcher {
	var searcher library.Searcher
	if cfg.Library.Mode == "remote" {
		log.Info().Str("baseURL", cfg.Library.BaseURL).Msg("Using remote library search")
		searcher = library.NewHTTPSearcher(cfg.Library.BaseURL, cfg.Library.AccessToken, cfg.Session.RequestTimeout)
	} else {
		log.Info().Msg("Using local library search")
		searcher = library.NewDBSearcher(libraryRepo)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Library search caching enabled")
		searcher = library.NewCachedSearcher(searcher, client, cfg.Library.CacheTTL)
	}
	return searcher
}

func NewSessionManager(cfg *config.Config, client contentapi.Client, matcher *library.Matcher) *session.Manager {
	return session.NewManager(client, matcher, cfg.Session.DebounceInterval, cfg.Session.RequestTimeout)
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment authoring server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// AutoMigrateDB is only meaningful in local content mode but is harmless in
// remote mode; the tables back the local client and library search.
func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Assessment{},
		&model.Section{},
		&model.Question{},
		&model.Answer{},
		&model.RelationshipLink{},
		&model.Guideline{},
		&model.Barrier{},
		&model.Problem{},
		&model.Goal{},
		&model.Intervention{},
		&model.LibraryItem{},
		&model.ScoringModel{},
		&model.AnswerScore{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
