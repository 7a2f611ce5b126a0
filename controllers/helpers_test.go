// file: controllers/helpers_test.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-bet-tips/middleware"
	"go-bet-tips/models"
	"go-bet-tips/services"
	"go-bet-tips/store"
)

// stubGenerator feeds the ingestion service in tests.
type stubGenerator struct {
	seeds []models.PredictionSeed
	err   error
}

func (s *stubGenerator) Generate(_ context.Context) ([]models.PredictionSeed, error) {
	return s.seeds, s.err
}

func stubSeeds(n int) []models.PredictionSeed {
	seeds := make([]models.PredictionSeed, n)
	for i := range seeds {
		tipType := models.TipFree
		if i%2 == 1 {
			tipType = models.TipVIP
		}
		seeds[i] = models.PredictionSeed{
			MatchName: fmt.Sprintf("Team %d vs Team %d", i, i+1),
			League:    "Bundesliga",
			Tip:       "Over 2.5 Goals",
			Odds:      "1.75",
			Kickoff:   "2026-09-20T17:30:00Z",
			Type:      tipType,
		}
	}
	return seeds
}

// testEnv bundles the full request path: repositories, session manager,
// ingestion and a router wired exactly like main.go.
type testEnv struct {
	router      *gin.Engine
	users       *store.UserRepo
	predictions *store.PredictionRepo
	comments    *store.CommentRepo
	settings    *store.SettingsRepo
	sessions    *services.SessionManager
	ingestion   *services.IngestionService
	generator   *stubGenerator
}

// setupTestEnv builds the environment over a temp data directory.
func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	env := &testEnv{
		users:       store.NewUserRepo(fs),
		predictions: store.NewPredictionRepo(fs),
		comments:    store.NewCommentRepo(fs),
		settings:    store.NewSettingsRepo(fs),
		generator:   &stubGenerator{seeds: stubSeeds(20)},
	}
	env.sessions = services.NewSessionManager(env.users, env.settings, fs)
	env.ingestion = services.NewIngestionService(env.predictions, env.generator)

	authController := NewAuthController(env.sessions)
	tipsController := NewTipsController(env.predictions, authController, env.ingestion)
	adminController := NewAdminController(env.sessions, env.users, env.predictions, env.comments, env.settings, env.ingestion)
	contactController := NewContactController(env.comments, env.settings)

	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))

	api := router.Group("/api")
	{
		api.POST("/register", authController.Register)
		api.POST("/admin-register", authController.AdminRegister)
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)

		api.GET("/home", tipsController.Home)
		api.GET("/tips/free", tipsController.Free)
		api.GET("/tips/vip", tipsController.Vip)
		api.GET("/tips/history", tipsController.History)

		api.GET("/settings", contactController.PublicSettings)
		api.POST("/contact", contactController.AddComment)
	}
	profile := api.Group("/profile", middleware.AuthRequired)
	{
		profile.GET("", authController.Profile)
		profile.PUT("", authController.UpdateProfile)
	}
	admin := api.Group("/admin", middleware.AuthRequired, middleware.AdminRequired(env.users))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users/:email/toggle-vip", adminController.ToggleVip)
		admin.POST("/users/:email/promote", adminController.PromoteUser)
		admin.POST("/users/:email/demote", adminController.DemoteUser)
		admin.PUT("/users/:email", adminController.UpdateUser)
		admin.DELETE("/users/:email", adminController.DeleteUser)
		admin.POST("/predictions", adminController.AddPrediction)
		admin.PUT("/predictions/:id", adminController.UpdatePrediction)
		admin.DELETE("/predictions/:id", adminController.DeletePrediction)
		admin.GET("/comments", adminController.ListComments)
		admin.DELETE("/comments/:id", adminController.DeleteComment)
		admin.GET("/settings", adminController.GetSettings)
		admin.PUT("/settings", adminController.UpdateSettings)
		admin.POST("/ingestion/retry", adminController.RetryIngestion)
	}

	env.router = router
	return env
}

// bootstrap runs ingestion so the tips routes leave the loading state.
func (env *testEnv) bootstrap(t *testing.T) {
	if err := env.ingestion.Run(context.Background()); err != nil {
		t.Fatalf("Bootstrap ingestion failed: %v", err)
	}
}

// doJSON performs a request with an optional JSON body and session cookies.
func (env *testEnv) doJSON(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin registers an account through the API and returns the
// session cookies the browser would carry afterwards.
func (env *testEnv) registerAndLogin(t *testing.T, email string, adminKey string) []*http.Cookie {
	body := map[string]string{
		"fullName": "Test User",
		"email":    email,
		"password": "secret123",
	}
	path := "/api/register"
	if adminKey != "" {
		body["adminKey"] = adminKey
		path = "/api/admin-register"
	}
	w := env.doJSON(http.MethodPost, path, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Registration of %s failed with status %d: %s", email, w.Code, w.Body.String())
	}
	return readCookies(w)
}

func readCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	res := http.Response{Header: w.Header()}
	return res.Cookies()
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return out
}
