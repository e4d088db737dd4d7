package calculator_test

import (
	"net/http"
	"testing"

	calcsvc "github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/amirasaad/exrate/webapi/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CalculatorE2ETestSuite struct {
	testutils.E2ETestSuite
}

func (s *CalculatorE2ETestSuite) open(body string) calcsvc.View {
	resp := s.MakeRequest(http.MethodPost, "/api/calculator/sessions", body)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
}

func (s *CalculatorE2ETestSuite) press(id uuid.UUID, keys string) *http.Response {
	return s.MakeRequest(http.MethodPost, "/api/calculator/sessions/"+id.String()+"/keys", keys)
}

func (s *CalculatorE2ETestSuite) TestDefaultPair() {
	view := s.open("")
	s.Equal("CNY", view.Source.Code, "first watched currency")
	s.Equal("KRW", view.Target.Code, "counter currency")
	s.Equal("empty", view.State)
	s.Empty(view.Display)
}

func (s *CalculatorE2ETestSuite) TestComputeAndConvert() {
	view := s.open(`{"source":"USD","target":"KRW"}`)

	resp := s.press(view.ID, `{"keys":["6","×","3"]}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	view = testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
	s.Equal("6×3", view.Display)
	s.Equal("composing", view.State)
	s.Zero(s.Calls.Load())

	resp = s.press(view.ID, `{"keys":["="]}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	view = testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
	s.Equal("18", view.Expression)
	s.Equal("18.0000", view.Result)
	s.Equal("18.0000 USD", view.Display)
	s.Equal("24844.5000", view.Converted)

	resp = s.MakeRequest(http.MethodGet, "/api/calculator/sessions/"+view.ID.String(), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(int32(1), s.Calls.Load(), "second view reuses the cached quote")
}

func (s *CalculatorE2ETestSuite) TestSwitchSwapsPair() {
	view := s.open(`{"source":"USD","target":"KRW"}`)
	resp := s.press(view.ID, `{"keys":["switch"]}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	view = testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
	s.Equal("KRW", view.Source.Code)
	s.Equal("USD", view.Target.Code)
}

func (s *CalculatorE2ETestSuite) TestSetPair() {
	view := s.open(`{"source":"USD","target":"KRW"}`)
	resp := s.MakeRequest(http.MethodPut, "/api/calculator/sessions/"+view.ID.String()+"/pair", `{"source":"JPY"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	view = testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
	s.Equal("JPY", view.Source.Code)
	s.Equal("KRW", view.Target.Code)

	resp = s.MakeRequest(http.MethodPut, "/api/calculator/sessions/"+view.ID.String()+"/pair", `{"target":"QQQ"}`)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *CalculatorE2ETestSuite) TestProviderDownKeepsExpression() {
	view := s.open(`{"source":"USD","target":"KRW"}`)
	s.Fail.Store(true)

	resp := s.press(view.ID, `{"keys":["2","="]}`)
	s.Equal(http.StatusBadGateway, resp.StatusCode)

	s.Fail.Store(false)
	resp = s.MakeRequest(http.MethodGet, "/api/calculator/sessions/"+view.ID.String(), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	view = testutils.Data[calcsvc.View](&s.E2ETestSuite, resp)
	s.Equal("2.0000", view.Result)
	s.Equal("2760.5000", view.Converted)
}

func (s *CalculatorE2ETestSuite) TestErrors() {
	view := s.open("")
	base := "/api/calculator/sessions/"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "unknown key", method: http.MethodPost, path: base + view.ID.String() + "/keys", body: `{"keys":["%"]}`, status: http.StatusBadRequest},
		{name: "no keys", method: http.MethodPost, path: base + view.ID.String() + "/keys", body: `{"keys":[]}`, status: http.StatusBadRequest},
		{name: "bad id", method: http.MethodGet, path: base + "nope", status: http.StatusBadRequest},
		{name: "missing session", method: http.MethodGet, path: base + uuid.NewString(), status: http.StatusNotFound},
		{name: "unsupported currency", method: http.MethodPost, path: base, body: `{"source":"ABC"}`, status: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp := s.MakeRequest(tt.method, tt.path, tt.body)
			s.Equal(tt.status, resp.StatusCode)
		})
	}
}

func (s *CalculatorE2ETestSuite) TestDelete() {
	view := s.open("")
	path := "/api/calculator/sessions/" + view.ID.String()

	resp := s.MakeRequest(http.MethodDelete, path, "")
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.MakeRequest(http.MethodDelete, path, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Zero(s.App.CalculatorService.Len())
}

func TestCalculatorE2ETestSuite(t *testing.T) {
	suite.Run(t, new(CalculatorE2ETestSuite))
}
