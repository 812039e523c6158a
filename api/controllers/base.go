package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/5pponent/diary-server/api/auth"
	"github.com/5pponent/diary-server/api/cache"
	"github.com/5pponent/diary-server/api/config"
	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/mailer"
	"github.com/5pponent/diary-server/api/middlewares"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/seed"
	"github.com/5pponent/diary-server/api/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const codeStoreSize = 4096

type Server struct {
	DB     *gorm.DB
	Router *gin.Engine
	Config *config.Config
	Tokens *auth.TokenIssuer
	Codes  *auth.Codes
	Files  storage.FileStore
	Mailer mailer.Sender
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(cfg *config.Config) {
	ctx := context.Background()
	server.Config = cfg

	db, err := openDatabase(cfg)
	if err != nil {
		logging.Log.Fatalf("Cannot connect to %s: %v", cfg.Database.Driver, err)
	}
	server.DB = db

	if err := models.Migrate(server.DB); err != nil {
		logging.Log.Fatalf("Error migrating database: %v", err)
	}

	if err := seed.LoadOccupations(server.DB); err != nil {
		logging.Log.Fatalf("Error loading occupations: %v", err)
	}
	if cfg.SeedDB {
		if err := seed.Load(server.DB); err != nil {
			logging.Log.WithError(err).Error("error seeding database")
		}
	}

	if cfg.JWT.Secret == "" {
		if cfg.Production() {
			logging.Log.Fatal("API_SECRET must be set in production")
		}
		logging.Log.Warn("API_SECRET not set, using an insecure development secret")
		cfg.JWT.Secret = "diary-development-secret"
	}
	server.Tokens = auth.NewTokenIssuer(cfg.JWT.Secret, cfg.TokenTTL())

	codes, verified := newCodeStores(ctx, cfg.Redis)
	server.Codes = auth.NewCodes(codes, verified)
	server.Mailer = mailer.New(cfg.Mail)
	server.Files = newFileStore(ctx, cfg.AWS)

	server.setupRouter()
}

func (server *Server) setupRouter() {
	if server.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	server.Router = gin.New()
	server.Router.Use(gin.Logger(), gin.Recovery())
	server.Router.Use(middlewares.MetricsMiddleware())
	server.Router.Use(middlewares.CORSMiddleware(server.Config.Server.CORSOrigins))
	if server.Config.Server.RateLimit {
		server.Router.Use(middlewares.RateLimitMiddleware())
	}
	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	logging.Log.Infof("Listening on %s", addr)
	logging.Log.Fatal(http.ListenAndServe(addr, server.Router))
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if logging.Level() >= logrus.DebugLevel {
		level = logger.Info
	}
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(level)}

	switch strings.ToLower(cfg.Database.Driver) {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.SQLitePath+"?_foreign_keys=on"), gormConfig)
	default:
		dsn := cfg.Database.DSN()
		if cfg.Production() && cfg.Database.URL != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return gorm.Open(postgres.Open(dsn), gormConfig)
	}
}

// newCodeStores prefers Redis and falls back to in-process stores.
func newCodeStores(ctx context.Context, cfg config.RedisConfig) (codes, verified cache.Store) {
	if cfg.URL != "" || cfg.Addr != "" {
		client, err := cache.NewClient(ctx, cfg)
		if err == nil {
			return cache.NewRedisStore(client, "auth:code:", auth.CodeTTL),
				cache.NewRedisStore(client, "auth:verified:", auth.VerifiedEmailTTL)
		}
		logging.Log.WithError(err).Warn("could not connect to redis, keeping auth codes in memory")
	}
	return cache.NewMemoryStore(codeStoreSize, auth.CodeTTL),
		cache.NewMemoryStore(codeStoreSize, auth.VerifiedEmailTTL)
}

func newFileStore(ctx context.Context, cfg config.AWSConfig) storage.FileStore {
	bucket := strings.SplitN(cfg.S3Bucket, "/", 2)[0]
	if bucket == "" {
		logging.Log.Warn("S3_BUCKET not set, uploaded images are kept in memory")
		return storage.NewMemoryStore()
	}
	store, err := storage.NewS3Store(ctx, bucket, cfg.Region)
	if err != nil {
		logging.Log.Fatalf("AWS configuration error: %v", err)
	}
	return store
}

// readTx runs fn in one transaction so a page and its figures read the same
// state. Postgres additionally marks it read-only.
func (server *Server) readTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var opts []*sql.TxOptions
	if server.DB.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	return server.DB.WithContext(ctx).Transaction(fn, opts...)
}

func (server *Server) db(ctx context.Context) *gorm.DB {
	return server.DB.WithContext(ctx)
}

// removeStoredFiles deletes the objects behind removed file rows. Failures are
// logged; the rows are already gone.
func (server *Server) removeStoredFiles(ctx context.Context, files []models.File) {
	for _, f := range files {
		if err := server.Files.Delete(ctx, f.Source); err != nil {
			logging.Log.WithError(err).WithField("source", f.Source).Warn("could not delete stored file")
		}
	}
}
