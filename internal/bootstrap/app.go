package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "materna-backend/internal/auth"
	"materna-backend/internal/checkins"
	"materna-backend/internal/llm"
	"materna-backend/internal/llm/gemini"
	"materna-backend/internal/shared/config"
	"materna-backend/internal/shared/server"
	"materna-backend/internal/shared/storage/db"
	"materna-backend/internal/users"
	"materna-backend/internal/workouts"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	CheckInsRepo    checkins.Repo
	WorkoutsRepo    workouts.Repo
	UsersRepo       users.Repo
	CheckInsService *checkins.Service
	UsersService    *users.Service
	CheckInHandler  *checkins.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		CheckInHandler: app.CheckInHandler,
		UsersHandler:   app.UsersHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories and the static catalog")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var checkInsRepo checkins.Repo
	var workoutsRepo workouts.Repo
	var usersRepo users.Repo
	dataSource := checkins.DataSourceStatic

	if app.DB != nil {
		checkInsRepo = &checkins.PGRepo{DB: app.DB}
		workoutsRepo = &workouts.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
		dataSource = checkins.DataSourceDatabase
	} else {
		checkInsRepo = checkins.NewMemoryRepo()
		workoutsRepo = workouts.NewStaticRepo()
		usersRepo = users.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GeminiAPIKey) != "" {
		geminiClient, err := gemini.NewClient(app.Config.GeminiAPIKey, app.Config.GeminiModel)
		if err != nil {
			return err
		}
		llmClient = geminiClient
	} else {
		log.Printf("bootstrap: GEMINI_API_KEY empty; check-ins use the fallback scorer only")
	}

	checkInSvc := &checkins.Service{
		Repo:       checkInsRepo,
		Catalog:    workoutsRepo,
		LLM:        llmClient,
		RetryLimit: app.Config.GeminiRetryLimit,
		DataSource: dataSource,
	}

	userSvc := users.NewService(usersRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.CheckInsRepo = checkInsRepo
	app.WorkoutsRepo = workoutsRepo
	app.UsersRepo = usersRepo
	app.CheckInsService = checkInSvc
	app.UsersService = userSvc
	app.CheckInHandler = checkins.NewHandler(checkInSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
