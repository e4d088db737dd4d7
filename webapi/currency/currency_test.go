package currency_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type CurrencyE2ETestSuite struct {
	testutils.E2ETestSuite
}

func (s *CurrencyE2ETestSuite) TestList() {
	resp := s.MakeRequest(http.MethodGet, "/api/currencies", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(testutils.Data[[]currency.Currency](&s.E2ETestSuite, resp), len(currency.All()))

	resp = s.MakeRequest(http.MethodGet, "/api/currencies?q=u", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	got := testutils.Data[[]currency.Currency](&s.E2ETestSuite, resp)
	s.Equal([]currency.Currency{{Code: "USD", Flag: "us"}}, got)
}

func (s *CurrencyE2ETestSuite) TestGet() {
	resp := s.MakeRequest(http.MethodGet, "/api/currencies/jpy", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("jp", testutils.Data[currency.Currency](&s.E2ETestSuite, resp).Flag)

	resp = s.MakeRequest(http.MethodGet, "/api/currencies/XYZ", "")
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal("Currency not found", testutils.Problem(&s.E2ETestSuite, resp).Title)
}

func (s *CurrencyE2ETestSuite) TestDefaultsAndCountry() {
	resp := s.MakeRequest(http.MethodGet, "/api/currencies/defaults", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(currency.Defaults(), testutils.Data[[]currency.Watched](&s.E2ETestSuite, resp))

	resp = s.MakeRequest(http.MethodGet, "/api/currencies/country/KR", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("KRW", testutils.Data[currency.Currency](&s.E2ETestSuite, resp).Code)

	resp = s.MakeRequest(http.MethodGet, "/api/currencies/country/fr", "")
	s.Equal("EUR", testutils.Data[currency.Currency](&s.E2ETestSuite, resp).Code)
}

func (s *CurrencyE2ETestSuite) TestHealthAndUnknownRoute() {
	resp := s.MakeRequest(http.MethodGet, "/", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/nope", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestCurrencyE2ETestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyE2ETestSuite))
}
