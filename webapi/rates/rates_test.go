package rates_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/amirasaad/exrate/pkg/provider/exchange"
	ratesvc "github.com/amirasaad/exrate/pkg/service/rates"
	"github.com/amirasaad/exrate/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type RatesE2ETestSuite struct {
	testutils.E2ETestSuite
}

func (s *RatesE2ETestSuite) TestBoard() {
	resp := s.MakeRequest(http.MethodGet, "/api/board", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	board := testutils.Data[ratesvc.Board](&s.E2ETestSuite, resp)
	s.Equal("KRW", board.Counter.Code)

	texts := make(map[string]string, len(board.Rows))
	for _, row := range board.Rows {
		s.True(row.Available, row.Code)
		texts[row.Code] = row.Text
	}
	s.Equal("1 USD = 1381.2155 KRW", texts["USD"])
	s.Equal("1 JPY = 0.1095 KRW", texts["JPY"])
	s.Equal("1 KRW = 1.0000 KRW", texts["KRW"])
	s.Equal(int32(1), s.Calls.Load())
}

func (s *RatesE2ETestSuite) TestBoard_SelectedRowAndCache() {
	resp := s.MakeRequest(http.MethodPost, "/api/preferences/base/5/toggle", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	for range 3 {
		resp = s.MakeRequest(http.MethodGet, "/api/board", "")
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	}
	board := testutils.Data[ratesvc.Board](&s.E2ETestSuite, resp)
	last := board.Rows[len(board.Rows)-1]
	s.Equal("USD", last.Code)
	s.True(last.IsSelected)
	s.Equal("0.0007 USD = 1 KRW", last.Text)

	s.Equal(int32(1), s.Calls.Load(), "board is served from the cache")

	resp = s.MakeRequest(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), `exrate_rate_cache_lookups_total{op="FETCH_ALL",result="hit"} 2`)
	s.Contains(string(body), `exrate_http_requests_total{method="GET",route="/api/board",status="200"} 3`)
}

func (s *RatesE2ETestSuite) TestBoard_ProviderDown() {
	s.Fail.Store(true)

	resp := s.MakeRequest(http.MethodGet, "/api/board", "")
	s.Equal(http.StatusBadGateway, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get("Content-Type"))
	pd := testutils.Problem(&s.E2ETestSuite, resp)
	s.Equal("Failed to build rate board", pd.Title)
}

func (s *RatesE2ETestSuite) TestQuote() {
	resp := s.MakeRequest(http.MethodGet, "/api/rates/usd/krw", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	q := testutils.Data[exchange.Quote](&s.E2ETestSuite, resp)
	s.Equal("USD", q.From)
	s.Equal("KRW", q.To)
	s.Equal(1380.25, q.Rate)
	s.True(q.ExpiresAt.After(q.FetchedAt))
}

func (s *RatesE2ETestSuite) TestQuote_Errors() {
	tests := []struct {
		path   string
		status int
	}{
		{path: "/api/rates/USD/XXX", status: http.StatusUnprocessableEntity},
		{path: "/api/rates/GBP/CNY", status: http.StatusBadGateway},
	}
	for _, tt := range tests {
		resp := s.MakeRequest(http.MethodGet, tt.path, "")
		s.Equal(tt.status, resp.StatusCode, tt.path)
	}
}

func (s *RatesE2ETestSuite) TestFetchAll() {
	resp := s.MakeRequest(http.MethodGet, "/api/rates/EUR", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	table := testutils.Data[exchange.Rates](&s.E2ETestSuite, resp)
	s.Equal("EUR", table.Base)
	s.Equal(1.09, table.Result["USD"])
}

func (s *RatesE2ETestSuite) TestConvert() {
	resp := s.MakeRequest(http.MethodPost, "/api/rates/convert", `{"from":"USD","to":"KRW","amount":"18.0000"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	conv := testutils.Data[ratesvc.Conversion](&s.E2ETestSuite, resp)
	s.Equal("24844.5000", conv.Converted)
	s.Equal(1380.25, conv.Rate)
}

func (s *RatesE2ETestSuite) TestConvert_Validation() {
	for _, body := range []string{`{"from":"USD","to":"KRW","amount":"abc"}`, `{"from":"USD"}`, `not json`} {
		resp := s.MakeRequest(http.MethodPost, "/api/rates/convert", body)
		s.Equal(http.StatusBadRequest, resp.StatusCode, body)
		pd := testutils.Problem(&s.E2ETestSuite, resp)
		s.True(strings.HasPrefix(pd.Instance, "/api/rates/convert"))
	}
	s.Zero(s.Calls.Load())
}

func TestRatesE2ETestSuite(t *testing.T) {
	suite.Run(t, new(RatesE2ETestSuite))
}
