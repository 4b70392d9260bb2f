package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/scenariolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type route struct {
	method  string
	handler func(s *Server, ctx *fasthttp.RequestCtx, requestID string)
}

var routes = map[string]route{
	"/healthz":           {fasthttp.MethodGet, (*Server).healthz},
	"/v1/civilian":       {fasthttp.MethodPost, (*Server).civilian},
	"/v1/military":       {fasthttp.MethodPost, (*Server).military},
	"/v1/equity/value":   {fasthttp.MethodPost, (*Server).equityValue},
	"/v1/equity/vesting": {fasthttp.MethodPost, (*Server).equityVesting},
	"/v1/equity/compare": {fasthttp.MethodPost, (*Server).equityCompare},
	"/v1/compare":        {fasthttp.MethodPost, (*Server).compareScenario},
	"/v1/offer/parse":    {fasthttp.MethodPost, (*Server).parseOffer},
	"/v1/stations":       {fasthttp.MethodGet, (*Server).stations},
}

// VestingRequest is the body of /v1/equity/vesting. A nil CliffMonths uses
// the twelve-month default.
type VestingRequest struct {
	Grant       domain.EquityGrant `json:"grant"`
	CliffMonths *int               `json:"cliff_months,omitempty"`
}

// EquityCompareRequest is the body of /v1/equity/compare
type EquityCompareRequest struct {
	OfferA domain.EquityGrant `json:"offer_a"`
	OfferB domain.EquityGrant `json:"offer_b"`
}

// OfferParseRequest is the body of /v1/offer/parse
type OfferParseRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) route(ctx *fasthttp.RequestCtx, requestID string) {
	path := strings.TrimSuffix(string(ctx.Path()), "/")
	if path == "" {
		path = "/"
	}
	r, ok := routes[path]
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, "not found: "+path)
		return
	}
	if string(ctx.Method()) != r.method {
		ctx.Response.Header.Set("Allow", r.method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", ctx.Method()))
		return
	}
	r.handler(s, ctx, requestID)
}

func (s *Server) healthz(ctx *fasthttp.RequestCtx, _ string) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) civilian(ctx *fasthttp.RequestCtx, _ string) {
	var in domain.CompensationInput
	if !decodeBody(ctx, &in) {
		return
	}
	if in.BaseSalary.IsNegative() || in.BonusPct.IsNegative() || in.AnnualRSUValue.IsNegative() {
		writeError(ctx, fasthttp.StatusBadRequest, "amounts cannot be negative")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalcEngine.Civilian.Calculate(in))
}

func (s *Server) military(ctx *fasthttp.RequestCtx, _ string) {
	var in domain.MilitaryInput
	if !decodeBody(ctx, &in) {
		return
	}
	if strings.TrimSpace(in.Rank) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "rank is required")
		return
	}
	if in.YearsOfService < 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "years_of_service cannot be negative")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalcEngine.Military.Calculate(in))
}

func (s *Server) equityValue(ctx *fasthttp.RequestCtx, _ string) {
	var g domain.EquityGrant
	if !decodeBody(ctx, &g) || !validGrant(ctx, &g) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculation.ValueEquityGrant(g))
}

func (s *Server) equityVesting(ctx *fasthttp.RequestCtx, _ string) {
	var req VestingRequest
	if !decodeBody(ctx, &req) || !validGrant(ctx, &req.Grant) {
		return
	}
	cliff := domain.DefaultCliffMonths
	if req.CliffMonths != nil {
		if *req.CliffMonths < 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "cliff_months cannot be negative")
			return
		}
		cliff = *req.CliffMonths
	}
	g := req.Grant
	writeJSON(ctx, fasthttp.StatusOK, calculation.VestingSchedule(g.TotalValue, g.VestingYears, cliff, g.EffectiveStage()))
}

func (s *Server) equityCompare(ctx *fasthttp.RequestCtx, _ string) {
	var req EquityCompareRequest
	if !decodeBody(ctx, &req) || !validGrant(ctx, &req.OfferA) || !validGrant(ctx, &req.OfferB) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculation.CompareOffers(req.OfferA, req.OfferB))
}

func (s *Server) compareScenario(ctx *fasthttp.RequestCtx, requestID string) {
	var sc domain.ComparisonScenario
	if !decodeBody(ctx, &sc) {
		return
	}
	if err := s.validator.ValidateScenario(&sc); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()
	result, err := s.engine.Evaluate(reqCtx, &sc)
	if err != nil {
		s.logger.Error("comparison failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "comparison failed")
		return
	}

	out := result.Outcome
	s.scenarioLog.Submit(scenariolog.FromResults(out.Military, out.Civilian, out.Equity.TotalGrant, ""))
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) parseOffer(ctx *fasthttp.RequestCtx, requestID string) {
	var req OfferParseRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "text is required")
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()
	extraction, err := s.parser.Parse(reqCtx, req.Text)
	if err != nil {
		s.logger.Error("offer parse failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "offer parse failed")
		return
	}
	// Echoing the whole letter back is rarely useful to API clients
	extraction.RawText = ""
	writeJSON(ctx, fasthttp.StatusOK, extraction)
}

type stationSearcher interface {
	Search(query string) []string
}

func (s *Server) stations(ctx *fasthttp.RequestCtx, _ string) {
	housing := s.engine.CalcEngine.Housing
	if housing == nil {
		writeJSON(ctx, fasthttp.StatusOK, []string{})
		return
	}

	names := housing.Stations()
	if q := strings.TrimSpace(string(ctx.QueryArgs().Peek("q"))); q != "" {
		if searcher, ok := housing.(stationSearcher); ok {
			names = searcher.Search(q)
		} else {
			names = filterStations(names, q)
		}
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(ctx, fasthttp.StatusOK, names)
}

func filterStations(names []string, q string) []string {
	q = strings.ToUpper(q)
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToUpper(n), q) {
			out = append(out, n)
		}
	}
	return out
}

// validGrant rejects bad grants and rewrites the stage to its canonical
// form, so "pre-ipo" and "PUBLIC" are accepted the way the CLI accepts them.
func validGrant(ctx *fasthttp.RequestCtx, g *domain.EquityGrant) bool {
	if g.Stage != "" {
		stage, ok := domain.ParseCompanyStage(string(g.Stage))
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown company_stage %q", g.Stage))
			return false
		}
		g.Stage = stage
	}
	switch {
	case g.TotalValue.IsNegative():
		writeError(ctx, fasthttp.StatusBadRequest, "total_value cannot be negative")
		return false
	case g.VestingYears < 0:
		writeError(ctx, fasthttp.StatusBadRequest, "vesting_years cannot be negative")
		return false
	}
	return true
}

func decodeBody(ctx *fasthttp.RequestCtx, v interface{}) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON: "+syntaxErr.Error())
		} else {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Error: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
