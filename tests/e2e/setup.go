//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"perfect-widget/cmd/bootstrap"
	"perfect-widget/cmd/bootstrap/components"
	"perfect-widget/internal/infra/perfectapi"
	"perfect-widget/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

const fakeAPIKey = "e2e-api-key"

// ------------------------------------------------------------
// Perfect APIの代替サーバー
// ------------------------------------------------------------

type CapturedBooking struct {
	ContentType string
	Body        []byte
}

type FakePerfect struct {
	Server  *httptest.Server
	Version string

	mu             sync.Mutex
	bookings       []CapturedBooking
	rejectBooking  bool
	noAvailability bool
}

func NewFakePerfect(t *testing.T, version string) *FakePerfect {
	f := &FakePerfect{Version: version}
	mux := http.NewServeMux()
	mux.HandleFunc("/restaurant/public/auth", f.auth)
	mux.HandleFunc("/restaurant/public/reservations/partySizes", f.partySizes)
	mux.HandleFunc("/restaurant/public/reservations/availableTimes/", f.availableTimes)
	mux.HandleFunc("/restaurant/public/reservations", f.createReservation)
	f.Server = httptest.NewServer(f.checkHeaders(mux))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakePerfect) checkHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(perfectapi.HeaderAPIKey) != fakeAPIKey || r.Header.Get(perfectapi.HeaderAPIVersion) != f.Version {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakePerfect) auth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"id": "r-e2e", "name": "E2E Bistro"})
}

func (f *FakePerfect) partySizes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []int{1, 2, 3, 4, 5, 6, 7, 8})
}

func (f *FakePerfect) availableTimes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	empty := f.noAvailability
	f.mu.Unlock()

	// /reservations/availableTimes/{party}/{y}/{m}/{d}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/restaurant/public/reservations/availableTimes/"), "/")
	if len(parts) != 4 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch {
	case empty:
		writeJSON(w, http.StatusOK, []int{})
	case f.Version == perfectapi.Version150:
		writeJSON(w, http.StatusOK, []string{"18:00", "19:00"})
	default:
		writeJSON(w, http.StatusOK, []int{1080, 1140})
	}
}

func (f *FakePerfect) createReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, CapturedBooking{ContentType: r.Header.Get("Content-Type"), Body: body})
	if f.rejectBooking {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate reservation"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": fmt.Sprintf("e2e-%d", len(f.bookings))})
}

func (f *FakePerfect) Bookings() []CapturedBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CapturedBooking(nil), f.bookings...)
}

func (f *FakePerfect) RejectBookings(reject bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectBooking = reject
}

func (f *FakePerfect) NoAvailability(empty bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noAvailability = empty
}

func (f *FakePerfect) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = nil
	f.rejectBooking = false
	f.noAvailability = false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// ------------------------------------------------------------
func buildE2EApp(perfect *FakePerfect) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			return createTestConfig(perfect)
		}),
		bootstrap.ConfigSections,
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.ClientModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &cfg),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("fxアプリケーションの起動に失敗しました")
	}

	return router, cfg, app
}

func createTestConfig(perfect *FakePerfect) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.Perfect.BaseURL = perfect.Server.URL + "/restaurant/public"
	testConfig.Perfect.APIKey = fakeAPIKey
	testConfig.Perfect.Version = perfect.Version
	return testConfig
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Version string
	Router  *gin.Engine
	Perfect *FakePerfect
	Config  config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s.Perfect = NewFakePerfect(t, s.Version)

	router, cfg, app := buildE2EApp(s.Perfect)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	s.Router = router
	s.Config = cfg
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Perfect.Reset()
}
