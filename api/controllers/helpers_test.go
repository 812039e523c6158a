package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/5pponent/diary-server/api/auth"
	"github.com/5pponent/diary-server/api/cache"
	"github.com/5pponent/diary-server/api/config"
	"github.com/5pponent/diary-server/api/mailer"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/seed"
	"github.com/5pponent/diary-server/api/storage"
	"github.com/5pponent/diary-server/api/utils/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testPassword = "abc123!"

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *recordingMailer) SendAuthCode(_ context.Context, to, code string, _ mailer.Purpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *recordingMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

type testEnv struct {
	server *Server
	mailer *recordingMailer
	files  *storage.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.RateLimit = false
	cfg.JWT.Secret = "test-secret"

	env := &testEnv{
		mailer: &recordingMailer{codes: map[string]string{}},
		files:  storage.NewMemoryStore(),
	}
	db := testdb.Open(t)
	require.NoError(t, seed.LoadOccupations(db))
	env.server = &Server{
		DB:     db,
		Config: cfg,
		Tokens: auth.NewTokenIssuer(cfg.JWT.Secret, time.Hour),
		Codes: auth.NewCodes(
			cache.NewMemoryStore(64, auth.CodeTTL),
			cache.NewMemoryStore(64, auth.VerifiedEmailTTL),
		),
		Files:  env.files,
		Mailer: env.mailer,
	}
	env.server.setupRouter()
	return env
}

// createUser inserts a user whose last known address matches httptest requests.
func (e *testEnv) createUser(t *testing.T, uid string) (*models.User, string) {
	t.Helper()
	user := models.User{UID: uid, Email: uid + "@example.com", Name: uid, Password: testPassword, IP: "192.0.2.1"}
	require.NoError(t, user.HashPassword())
	require.NoError(t, e.server.DB.Create(&user).Error)
	token, err := e.server.Tokens.CreateToken(user.ID)
	require.NoError(t, err)
	return &user, token
}

func (e *testEnv) follow(t *testing.T, from, to *models.User) {
	t.Helper()
	f := models.Follow{UserID: from.ID, TargetID: to.ID}
	_, err := f.SaveFollow(e.server.DB)
	require.NoError(t, err)
}

func (e *testEnv) createFeed(t *testing.T, writer *models.User, scope, content string) *models.Feed {
	t.Helper()
	feed := models.Feed{WriterID: writer.ID, Content: content, ShowScope: scope}
	feed.Prepare()
	saved, err := feed.SaveFeed(e.server.DB)
	require.NoError(t, err)
	return saved
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(req, token)
}

func (e *testEnv) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status   int               `json:"status"`
	Response json.RawMessage   `json:"response"`
	Error    map[string]string `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Response, out), w.Body.String())
	}
	return env
}

func feedIDsOf(page FeedPageDTO) []uint {
	ids := make([]uint, len(page.Feeds))
	for i, f := range page.Feeds {
		ids[i] = f.ID
	}
	return ids
}

func jsonBody(t *testing.T, body interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}
