//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/leaguehq/league-service/internal/auth"
	"github.com/leaguehq/league-service/internal/config"
	"github.com/leaguehq/league-service/internal/database/migrate"
	"github.com/leaguehq/league-service/internal/health"
	leagueRouter "github.com/leaguehq/league-service/internal/league/router"
	userModel "github.com/leaguehq/league-service/internal/user/model"
	userRouter "github.com/leaguehq/league-service/internal/user/router"
)

// E2ETestSuite runs the full router stack against a real PostgreSQL
// container. Requests go through the in-process gin engine.
type E2ETestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	db          *gorm.DB
	router      *gin.Engine
}

// SetupSuite runs once before all tests.
func (s *E2ETestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(s.T(), err, "failed to start PostgreSQL container")
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err, "failed to connect to database")
	s.db = db

	require.NoError(s.T(), os.Setenv("MIGRATIONS_PATH", "../../migrations"))
	require.NoError(s.T(), migrate.Up(db), "failed to run migrations")

	logger := zap.NewNop().Sugar()
	manager := auth.NewManager(&config.AuthConfig{
		Secret:   "e2e-secret-at-least-16-chars",
		TokenTTL: time.Hour,
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := userRouter.RegisterRoutes(r, db, manager, logger)
	leagueRouter.RegisterRoutes(r, db, manager, users, logger)
	r.GET("/health", health.New(db, logger).Check)
	s.router = r
}

// TearDownSuite runs once after all tests.
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

// SetupTest runs before each test.
func (s *E2ETestSuite) SetupTest() {
	s.db.Exec("TRUNCATE TABLE invitations CASCADE")
	s.db.Exec("TRUNCATE TABLE leagues CASCADE")
	s.db.Exec("TRUNCATE TABLE users CASCADE")
}

// do performs an in-process request and returns the recorder.
func (s *E2ETestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account via the API and returns it with a token.
func (s *E2ETestSuite) registerUser(username, email string) *userModel.AuthResponse {
	w := s.do(http.MethodPost, "/users/register", "", userModel.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "correct-horse",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	var resp userModel.AuthResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.T(), resp.Token)
	return &resp
}

// decode unmarshals a response body into out.
func (s *E2ETestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), out),
		"failed to decode response: %s", w.Body.String())
}

// errorCode extracts the code of an error envelope.
func (s *E2ETestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	s.decode(w, &resp)
	return resp.Error.Code
}

func leaguePath(leagueID, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/leagues/%s", leagueID)
	}
	return fmt.Sprintf("/leagues/%s/%s", leagueID, suffix)
}
