package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"service_reporting/internal/config"
	"service_reporting/internal/db/dbtest"
	"service_reporting/internal/domain"
	"service_reporting/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// march2025 is "today" for every date rule exercised through the router.
var march2025 = utils.FixedClock{T: time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)}

type testApp struct {
	db      *gorm.DB
	router  *gin.Engine
	finance domain.Department
	plan    domain.Department
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCache(t, nil)
}

// newTestAppWithCache builds the router with rdb as the report cache.
func newTestAppWithCache(t *testing.T, rdb *redis.Client) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := dbtest.New(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, ReportCacheTTL: time.Minute}
	return &testApp{
		db:      gdb,
		router:  NewRouter(Deps{DB: gdb, Redis: rdb, Config: cfg, Clock: march2025}),
		finance: dbtest.Department(t, gdb, "Finance Department"),
		plan:    dbtest.Department(t, gdb, "Planning Department"),
	}
}

// do sends body (marshalled to JSON unless nil) and returns the recorder.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login returns a token for a seeded user (dbtest password "password123").
func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// departmentToken creates a department user in finance and logs in.
func (a *testApp) departmentToken(t *testing.T) (domain.User, string) {
	t.Helper()
	u := dbtest.User(t, a.db, "finance@ag.go.ke", a.finance.ID, domain.RoleDepartmentUser)
	return u, a.login(t, u.Email)
}

// planningToken creates the head of planning and logs in.
func (a *testApp) planningToken(t *testing.T) (domain.User, string) {
	t.Helper()
	u := dbtest.User(t, a.db, "planning@ag.go.ke", a.plan.ID, domain.RoleHeadOfPlanning)
	return u, a.login(t, u.Email)
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}
