package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	db       *gorm.DB
	catalog  *services.CatalogService
	blog     *services.BlogService
	gallery  *services.GalleryService
	identify *services.IdentifyService
	vision   *services.VisionService
	reviews  *services.ReviewService
	auth     *services.AuthService

	// s3Log returns the method+path of every request the S3 stub received
	s3Log func() []string
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// newTestEnv wires the full route table against an in-memory database, the
// same way cmd/api does against postgres
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertestdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	// Stub S3 endpoint; object writes and deletes get a 200 and are recorded
	var s3Mu sync.Mutex
	var s3Requests []string
	s3Server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s3Mu.Lock()
		s3Requests = append(s3Requests, r.Method+" "+r.URL.Path)
		s3Mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(s3Server.Close)

	cfg := config.New()
	cfg.FailedLoginDelay = 0
	cfg.BcryptCost = 4
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "Nursery1234"
	cfg.VisionBaseURL = "http://vision.test"
	cfg.IdentifyWorkers = 1
	cfg.IdentifyQueueSize = 4
	cfg.MediaS3Endpoint = s3Server.URL
	cfg.MediaS3Region = "us-east-1"
	cfg.MediaS3AccessKeyID = "test"
	cfg.MediaS3SecretAccessKey = "test"
	cfg.MediaS3UsePathStyle = true
	cfg.MediaImagesBucket = "test-images"

	catalogService := services.NewCatalogService(db)
	blogService := services.NewBlogService(db)
	galleryService := services.NewGalleryService(db)
	reviewService := services.NewReviewService(db)
	contactService := services.NewContactService(db)
	newsletterService := services.NewNewsletterService(db)
	teamService := services.NewTeamService(db)
	settingsService := services.NewSettingsService(db)
	authService := services.NewAuthService(db, cfg)
	visionService := services.NewVisionService(cfg)
	identifyService := services.NewIdentifyService(cfg, galleryService, visionService)
	t.Cleanup(identifyService.Shutdown)

	if err := authService.CreateDefaultAdmin(); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		t.Fatalf("storage service: %v", err)
	}

	registry := &Registry{
		Auth:     NewAuthHandler(authService),
		Catalog:  NewCatalogHandler(catalogService),
		Blog:     NewBlogHandler(blogService),
		Gallery:  NewGalleryHandler(galleryService, storageService, identifyService),
		Reviews:  NewReviewHandler(reviewService),
		Contact:  NewContactHandler(contactService, newsletterService),
		Team:     NewTeamHandler(teamService),
		Settings: NewSettingsHandler(settingsService),
	}

	// The tests serve the exact route table cmd/api mounts
	router := gin.New()
	registry.Register(router, cfg)

	return &testEnv{
		router:   router,
		cfg:      cfg,
		db:       db,
		catalog:  catalogService,
		blog:     blogService,
		gallery:  galleryService,
		identify: identifyService,
		vision:   visionService,
		reviews:  reviewService,
		auth:     authService,
		s3Log: func() []string {
			s3Mu.Lock()
			defer s3Mu.Unlock()
			return append([]string(nil), s3Requests...)
		},
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login returns a valid admin access token
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": e.cfg.AdminUsername,
		"password": e.cfg.AdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return resp.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func jsonBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
