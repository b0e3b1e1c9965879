// Package server exposes the returns and tax calculations over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/internal/navstore"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/iwvelando/mf-returns/pkg/finance"
	"github.com/iwvelando/mf-returns/pkg/irr"
	"github.com/iwvelando/mf-returns/pkg/navseries"
	"github.com/iwvelando/mf-returns/pkg/output"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Services are the components the handler calls into.
type Services struct {
	Store      *navstore.Store
	Calculator *finance.Calculator
	Analyzer   *analysis.Analyzer
}

type handler struct {
	logger      *zap.Logger
	services    Services
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the returns API.
func NewHandler(logger *zap.Logger, services Services, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if services.Calculator == nil {
		services.Calculator = finance.NewCalculator(logger, irr.Options{})
	}
	if services.Analyzer == nil {
		services.Analyzer = analysis.NewAnalyzer(logger, services.Calculator, 0)
	}

	h := &handler{logger: logger, services: services, maxBodySize: maxBodySize, version: trimmedVersion}

	r := mux.NewRouter()
	r.Use(h.requestID)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sip", h.handleSIP).Methods(http.MethodPost)
	api.HandleFunc("/lumpsum", h.handleLumpsum).Methods(http.MethodPost)
	api.HandleFunc("/tax", h.handleTax).Methods(http.MethodPost)
	api.HandleFunc("/analyze", h.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/schemes/{code}/nav", h.handleSchemeNAV).Methods(http.MethodGet)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	return r
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		h.logger.Debug("request served",
			zap.String("op", "server.requestID"),
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type sipRequest struct {
	SchemeCode       string             `json:"schemeCode"`
	Records          []navseries.Record `json:"records"`
	MonthlySIP       float64            `json:"monthlySip"`
	InvestmentMonths int                `json:"investmentMonths"`
	CurrentNAV       float64            `json:"currentNav"`
}

type sipResponse struct {
	SchemeCode string `json:"schemeCode,omitempty"`
	SchemeName string `json:"schemeName,omitempty"`
	output.SIPView
}

func (h *handler) handleSIP(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSIP"

	var req sipRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	meta, series, err := h.resolveSeries(req.SchemeCode, req.Records)
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}

	result, err := h.services.Calculator.SIPReturns(finance.SIPInput{
		Series:           series,
		MonthlySIP:       req.MonthlySIP,
		InvestmentMonths: req.InvestmentMonths,
		CurrentNAV:       req.CurrentNAV,
	})
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, sipResponse{
		SchemeCode: meta.SchemeCode,
		SchemeName: meta.SchemeName,
		SIPView:    output.NewSIPView(result),
	})
}

type lumpsumRequest struct {
	PurchaseNAV      float64 `json:"purchaseNav"`
	CurrentNAV       float64 `json:"currentNav"`
	InvestmentAmount float64 `json:"investmentAmount"`
	HoldingYears     float64 `json:"holdingYears"`
}

func (h *handler) handleLumpsum(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLumpsum"

	var req lumpsumRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	result, err := h.services.Calculator.LumpsumReturns(finance.LumpsumInput(req))
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, output.NewLumpsumView(result))
}

type taxRequest struct {
	GainAmount    float64 `json:"gainAmount"`
	HoldingMonths int     `json:"holdingMonths"`
	FundType      string  `json:"fundType"`
}

func (h *handler) handleTax(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTax"

	var req taxRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	result, err := h.services.Calculator.CapitalGainsTax(finance.TaxInput(req))
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, output.NewTaxView(result))
}

type analyzeItem struct {
	SchemeCode       string             `json:"schemeCode"`
	SchemeName       string             `json:"schemeName"`
	Records          []navseries.Record `json:"records"`
	MonthlySIP       float64            `json:"monthlySip"`
	InvestmentMonths int                `json:"investmentMonths"`
	HoldingMonths    int                `json:"holdingMonths"`
	LumpsumAmount    float64            `json:"lumpsumAmount"`
	PurchaseNAV      float64            `json:"purchaseNav"`
	CurrentNAV       float64            `json:"currentNav"`
	HoldingYears     float64            `json:"holdingYears"`
	FundType         string             `json:"fundType"`
}

type analyzeRequest struct {
	Requests []analyzeItem `json:"requests"`
}

type analyzeResponse struct {
	Reports  []output.ReportView `json:"reports"`
	CSV      string              `json:"csv"`
	Duration string              `json:"duration"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnalyze"
	start := time.Now()

	var req analyzeRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if len(req.Requests) == 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "at least one request is required", op)
		return
	}

	reqs := make([]analysis.Request, 0, len(req.Requests))
	for i, item := range req.Requests {
		var series *navseries.MonthlySeries
		name := item.SchemeName
		if item.SchemeCode != "" || len(item.Records) > 0 {
			meta, s, err := h.resolveSeries(item.SchemeCode, item.Records)
			if err != nil {
				h.respondFailure(w, r, fmt.Errorf("request %d: %w", i, err), op)
				return
			}
			series = s
			if name == "" {
				name = meta.SchemeName
			}
		}
		reqs = append(reqs, analysis.Request{
			SchemeCode:       item.SchemeCode,
			SchemeName:       name,
			Series:           series,
			MonthlySIP:       item.MonthlySIP,
			InvestmentMonths: item.InvestmentMonths,
			HoldingMonths:    item.HoldingMonths,
			LumpsumAmount:    item.LumpsumAmount,
			PurchaseNAV:      item.PurchaseNAV,
			CurrentNAV:       item.CurrentNAV,
			HoldingYears:     item.HoldingYears,
			FundType:         item.FundType,
		})
	}

	reports, err := h.services.Analyzer.AnalyzeAll(r.Context(), reqs)
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, reports); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		Reports:  output.NewReportViews(reports),
		CSV:      csvBuf.String(),
		Duration: time.Since(start).String(),
	})
}

type navHistoryResponse struct {
	Meta navseries.SchemeMeta `json:"meta"`
	Data []navseries.Record   `json:"data"`
}

func (h *handler) handleSchemeNAV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchemeNAV"

	days := constants.DefaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("days must be a positive integer, got %q", raw), op)
			return
		}
		days = parsed
	}

	if h.services.Store == nil {
		h.respondErrorWithOp(w, r, http.StatusNotFound, "no NAV data directory configured", op)
		return
	}
	history, err := h.services.Store.History(mux.Vars(r)["code"])
	if err != nil {
		h.respondFailure(w, r, err, op)
		return
	}

	data := history.Recent(days)
	if data == nil {
		data = []navseries.Record{}
	}
	h.writeJSON(w, http.StatusOK, navHistoryResponse{Meta: history.Meta, Data: data})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// resolveSeries aggregates inline records when present, otherwise loads the
// scheme's history from the store.
func (h *handler) resolveSeries(code string, records []navseries.Record) (navseries.SchemeMeta, *navseries.MonthlySeries, error) {
	if len(records) > 0 {
		series, err := navseries.Aggregate(records)
		return navseries.SchemeMeta{SchemeCode: code}, series, err
	}
	if code == "" {
		return navseries.SchemeMeta{}, nil, errMissingSeries
	}
	if h.services.Store == nil {
		return navseries.SchemeMeta{}, nil, fmt.Errorf("%w: %s", navstore.ErrSchemeNotFound, code)
	}
	entry, err := h.services.Store.Monthly(code)
	if err != nil {
		return navseries.SchemeMeta{}, nil, err
	}
	return entry.Meta, entry.Series, nil
}

var errMissingSeries = errors.New("either schemeCode or records is required")

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// statusFor maps calculation errors onto HTTP statuses.
func statusFor(err error) int {
	var (
		inputErr   *finance.InvalidInputError
		historyErr *finance.InsufficientHistoryError
		irrErr     *irr.InvalidInputError
		dateErr    *navseries.MalformedDateError
	)
	switch {
	case errors.Is(err, navstore.ErrSchemeNotFound):
		return http.StatusNotFound
	case errors.Is(err, navstore.ErrInvalidSchemeCode),
		errors.Is(err, errMissingSeries),
		errors.As(err, &inputErr),
		errors.As(err, &historyErr),
		errors.As(err, &irrErr),
		errors.As(err, &dateErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) respondFailure(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	log := h.logger.Warn
	if status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("request failed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
