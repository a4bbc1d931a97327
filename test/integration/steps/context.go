//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kakeibo/backend/config"
	"github.com/kakeibo/backend/internal/infra/dependency"
	"github.com/kakeibo/backend/internal/integration/persistence/model"
	"github.com/kakeibo/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite holds the resources shared by every scenario.
type suite struct {
	server *httptest.Server
	db     *mock.Db
	redis  *redis.Client
	clock  *mock.Time
}

var shared *suite

// testContext holds the state of one scenario.
type testContext struct {
	*suite

	client       *http.Client
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
	tokens       map[string]string
	userIDs      map[string]uuid.UUID
	currentUser  string
	lastID       string
	stream       *summaryStream
}

type response struct {
	status  int
	header  http.Header
	body    any
	rawBody []byte
}

// InitializeTestSuite starts one API server backed by in-memory sqlite and miniredis.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

		db := mock.NewDb("kakeibo_bdd", map[string]any{
			"users":          &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"categories":     &model.CategoryModel{},
			"entries":        &model.EntryModel{},
		}, []string{"entries", "categories", "refresh_tokens", "users"})

		redisClient, _ := mock.NewRedis()
		clock := mock.NewTime()

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Log:    config.LogConfig{Level: "warn"},
			Database: config.DatabaseConfig{
				Driver: config.DriverSQLite,
				URL:    "file:kakeibo_bdd?mode=memory&cache=shared",
			},
			Redis: config.RedisConfig{
				Enabled:       true,
				ChannelPrefix: "kakeibo:bdd",
			},
			JWT: config.JWTConfig{
				Secret:             testJWTSecret,
				AccessTokenExpiry:  15 * time.Minute,
				RefreshTokenExpiry: 24 * time.Hour,
			},
			Ledger: config.LedgerConfig{CategoryScheme: "hierarchical"},
		}

		injector, err := dependency.NewInjector(cfg, db.DbConn, dependency.Options{
			Redis:      redisClient,
			BcryptCost: 4,
			Clock:      clock.Now,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}

		shared = &suite{
			server: httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			db:     db,
			redis:  redisClient,
			clock:  clock,
		}
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	t := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		t.reset()
		if err := t.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(t.redis); err != nil {
			return ctx, err
		}
		t.clock.Reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		t.closeStream()
		return ctx, nil
	})

	registerSetupSteps(ctx, t)
	registerAPISteps(ctx, t)
	registerResponseSteps(ctx, t)
	registerDatabaseSteps(ctx, t)
	registerStreamSteps(ctx, t)
}

func (t *testContext) reset() {
	t.suite = shared
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.tokens = make(map[string]string)
	t.userIDs = make(map[string]uuid.UUID)
	t.currentUser = ""
	t.lastID = ""
	t.stream = nil
}
