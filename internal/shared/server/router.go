package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "synthdata-backend/internal/auth"
	"synthdata-backend/internal/files"
	"synthdata-backend/internal/generation"
	"synthdata-backend/internal/llm"
	"synthdata-backend/internal/llm/openai"
	"synthdata-backend/internal/shared/config"
	"synthdata-backend/internal/shared/metrics"
	"synthdata-backend/internal/shared/server/middleware"
	"synthdata-backend/internal/shared/server/respond"
	"synthdata-backend/internal/shared/storage/db"
	"synthdata-backend/internal/shared/storage/object"
	localstore "synthdata-backend/internal/shared/storage/object/local"
	s3store "synthdata-backend/internal/shared/storage/object/s3"
	"synthdata-backend/internal/tabular"
	"synthdata-backend/internal/users"
)

const generateRateGroup = "GENERATE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generateRateGroup: {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/generate/") {
					return generateRateGroup
				}
				return ""
			},
		}),
	)

	// Dependencies
	store := newObjectStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var userRepo users.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
	}
	userSvc := &users.Service{Repo: userRepo}
	userHandler := &users.Handler{Service: userSvc, TokenTTL: cfg.TokenTTL}

	var fileRepo files.Repo
	if sqlDB != nil {
		fileRepo = &files.PGRepo{DB: sqlDB}
	} else {
		fileRepo = files.NewMemoryRepo()
	}

	var historyRepo generation.HistoryRepo
	if sqlDB != nil {
		historyRepo = &generation.PGHistoryRepo{DB: sqlDB}
	} else {
		historyRepo = generation.NewMemoryHistoryRepo()
	}

	genSvc := &generation.Service{
		Tabular:       tabular.NewSynthesizer(),
		LLM:           newLLMClient(cfg),
		Files:         fileRepo,
		History:       historyRepo,
		Store:         store,
		Timeout:       cfg.GeneratorTimeout,
		MaxNumSamples: cfg.MaxNumSamples,
	}
	genHandler := generation.NewHandler(genSvc)

	fileSvc := &files.Service{Repo: fileRepo, Store: store, History: genSvc}
	fileHandler := files.NewHandler(fileSvc)

	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userRepo,
		cfg.TokenTTL,
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	userHandler.Register(api)
	googleAuthSvc.RegisterRoutes(api)
	genHandler.RegisterRoutes(api)
	fileHandler.RegisterRoutes(api)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newLLMClient(cfg config.Config) llm.Client {
	if cfg.LLMProvider == "openai" && cfg.LLMAPIKey != "" {
		client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.GeneratorTimeout)
		if err == nil {
			return client
		}
		log.Printf("failed to init openai client, falling back to templates: %v", err)
	}
	return llm.TemplateClient{}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
