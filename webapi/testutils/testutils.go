package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/amirasaad/exrate/infra/cache"
	"github.com/amirasaad/exrate/infra/metrics"
	"github.com/amirasaad/exrate/infra/provider"
	"github.com/amirasaad/exrate/infra/store"
	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
	"github.com/amirasaad/exrate/pkg/testutils"
	"github.com/amirasaad/exrate/webapi"
	"github.com/amirasaad/exrate/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// Tables served by the stub rate provider.
var (
	AllRates = map[string]map[string]float64{
		"KRW": {"CNY": 0.0052, "EUR": 0.00066, "GBP": 0.00057, "JPY": 9.13, "USD": 0.000724},
		"EUR": {"CNY": 7.85, "GBP": 0.86, "JPY": 162.4, "KRW": 1502.3, "USD": 1.09},
	}
	PairRates = map[string]float64{
		"USD:KRW": 1380.25,
		"KRW:USD": 0.000724,
		"EUR:USD": 1.09,
		"JPY:KRW": 9.13,
	}
)

// E2ETestSuite runs the full HTTP stack against a stub rate provider.
type E2ETestSuite struct {
	suite.Suite
	upstream *httptest.Server
	// Calls counts upstream requests.
	Calls atomic.Int32
	// Fail makes the upstream answer 503.
	Fail atomic.Bool

	App     *app.App
	Fiber   *fiber.App
	Metrics *metrics.Metrics
	Store   *store.MemoryStore
}

func (s *E2ETestSuite) SetupTest() {
	s.Calls.Store(0)
	s.Fail.Store(false)
	s.upstream = httptest.NewServer(http.HandlerFunc(s.serveRates))

	cfg := &config.App{
		Env:          "test",
		Version:      "test",
		RateProvider: &config.RateProvider{ApiUrl: s.upstream.URL, ApiKey: "test", HTTPTimeout: 2 * time.Second},
		RateCache:    &config.RateCache{Backend: "memory", TTL: time.Hour},
		Preferences:  &config.Preferences{Backend: "memory"},
		RateLimit:    &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	logger := testutils.DiscardLogger()
	s.Metrics = metrics.New()
	s.Store = store.NewMemoryStore()
	memCache := cache.NewMemoryCache(time.Minute)

	rateSource := exchange.NewCache(
		provider.NewExConvert(cfg.RateProvider, logger),
		memCache,
		exchange.WithTTL(cfg.RateCache.TTL),
		exchange.WithLogger(logger),
		exchange.WithRecorder(s.Metrics),
	)

	a, err := app.New(context.Background(), &app.Deps{
		RateSource:      rateSource,
		PreferenceStore: s.Store,
		Locale:          "ko-KR",
		MetricsHandler:  s.Metrics.Handler(),
		HTTPObserver:    s.Metrics,
		Logger:          logger,
		Closers:         []func() error{memCache.Close},
	}, cfg)
	s.Require().NoError(err)
	s.App = a
	s.Fiber = webapi.SetupApp(a)
}

func (s *E2ETestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.NoError(s.App.Close(ctx))
	s.upstream.Close()
}

func (s *E2ETestSuite) serveRates(w http.ResponseWriter, r *http.Request) {
	s.Calls.Add(1)
	if s.Fail.Load() {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	var result map[string]float64
	switch r.URL.Path {
	case "/fetchOne":
		if rate, ok := PairRates[from+":"+to]; ok {
			result = map[string]float64{to: rate}
		}
	case "/fetchAll":
		result = AllRates[from]
	}
	w.Header().Set("Content-Type", "application/json")
	if result == nil {
		_, _ = fmt.Fprintf(w, `{"error":"no rates for %s"}`, from)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"base": from, "ms": 1, "result": result})
}

// NewRequest builds a test request; a non-empty body is sent as JSON.
func NewRequest(method, path, body string) *http.Request {
	return testutils.NewRequest(method, path, body)
}

// MakeRequest sends a request through the fiber app.
func (s *E2ETestSuite) MakeRequest(method, path, body string) *http.Response {
	return testutils.MakeRequest(s.Fiber, method, path, body)
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// Data decodes a success response and returns its data member.
func Data[T any](s *E2ETestSuite, resp *http.Response) T {
	s.T().Helper()
	return testutils.DecodeJSON[envelope[T]](s.T(), resp).Data
}

// Problem decodes an RFC 9457 error response.
func Problem(s *E2ETestSuite, resp *http.Response) common.ProblemDetails {
	s.T().Helper()
	return testutils.DecodeJSON[common.ProblemDetails](s.T(), resp)
}
