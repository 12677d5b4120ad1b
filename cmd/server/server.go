package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/suite-emprende/internal/catalog"
	"github.com/Simplici0/suite-emprende/internal/password"
	"github.com/Simplici0/suite-emprende/internal/presets"
	"github.com/Simplici0/suite-emprende/internal/pricing"
	"github.com/Simplici0/suite-emprende/internal/quote"
	"github.com/Simplici0/suite-emprende/internal/whatsapp"
)

type server struct {
	log      zerolog.Logger
	store    *presets.Store
	resolver atomic.Pointer[pricing.Resolver]
	taxRate  atomic.Pointer[decimal.Decimal]
	now      func() time.Time
}

func newServer(log zerolog.Logger, store *presets.Store) *server {
	s := &server{log: log, store: store, now: time.Now}
	s.resolver.Store(pricing.NewResolver(nil))
	rate := decimal.NewFromInt(quote.DefaultTaxRate)
	s.taxRate.Store(&rate)
	return s
}

func (s *server) routes(r chi.Router) {
	r.Get("/", s.handleCatalog)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresetsList)
		r.Put("/presets/{mode}", s.handlePresetsUpdate)

		r.Post("/margin", s.handleMargin)
		r.Post("/markup", s.handleMarkup)
		r.Post("/discount", s.handleDiscount)
		r.Post("/breakeven", s.handleBreakEven)
		r.Post("/pricing/{mode}", s.handlePricing)

		r.Post("/quote", s.handleQuote)
		r.Post("/quote/text", s.handleQuoteText)

		r.Get("/password", s.handlePassword)
		r.Post("/whatsapp", s.handleWhatsApp)
		r.Get("/whatsapp/templates", s.handleWhatsAppTemplates)
	})
}

// reloadPresets swaps in a resolver and tax rate built from the store.
func (s *server) reloadPresets(ctx context.Context) error {
	stored, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}
	rate, err := s.store.TaxRate(ctx)
	if err != nil {
		return fmt.Errorf("load tax rate: %w", err)
	}

	s.resolver.Store(pricing.NewResolver(stored))
	s.taxRate.Store(&rate)
	return nil
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"tools": catalog.Tools()})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

type presetsResponse struct {
	Modes   pricing.Presets `json:"modes"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

func (s *server) handlePresetsList(w http.ResponseWriter, r *http.Request) {
	resolver := s.resolver.Load()
	modes := make(pricing.Presets)
	for _, mode := range []pricing.Mode{pricing.ModeManufacturer, pricing.ModeReseller} {
		if b, ok := resolver.Bounds(mode); ok {
			modes[mode] = b
		}
	}
	s.writeJSON(w, http.StatusOK, presetsResponse{Modes: modes, TaxRate: *s.taxRate.Load()})
}

func (s *server) handlePresetsUpdate(w http.ResponseWriter, r *http.Request) {
	mode, err := pricing.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	b := pricing.Bounds{}
	if b.MinMargin, err = parseRequiredFloat(r.FormValue("min_margin"), "min_margin"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.MaxMargin, err = parseRequiredFloat(r.FormValue("max_margin"), "max_margin"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.DefaultMargin, err = parseRequiredFloat(r.FormValue("default_margin"), "default_margin"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := b.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Update(r.Context(), mode, b); err != nil {
		if errors.Is(err, presets.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error().Err(err).Str("mode", string(mode)).Msg("update preset")
		http.Error(w, "failed to save preset", http.StatusInternalServerError)
		return
	}
	if err := s.reloadPresets(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("reload presets")
		http.Error(w, "failed to reload presets", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, b)
}

func (s *server) handleMargin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, pricing.ResolveMargin(pricing.MarginInput{
		Cost:          parseNumber(r.FormValue("cost")),
		MarginPercent: parseNumber(r.FormValue("margin")),
	}))
}

func (s *server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, pricing.ResolveMarkup(pricing.MarkupInput{
		Cost:          parseNumber(r.FormValue("cost")),
		MarkupPercent: parseNumber(r.FormValue("markup")),
	}))
}

func (s *server) handleDiscount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, pricing.ResolveDiscount(pricing.DiscountInput{
		OriginalPrice:   parseNumber(r.FormValue("original_price")),
		ProductCost:     parseNumber(r.FormValue("cost")),
		DiscountPercent: math.Min(math.Max(parseNumber(r.FormValue("discount")), 0), 100),
	}))
}

type breakEvenResponse struct {
	pricing.BreakEvenResult
	Scenarios []pricing.Scenario `json:"scenarios"`
}

func (s *server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	result := pricing.ResolveBreakEven(pricing.BreakEvenInput{
		FixedCosts:          parseNumber(r.FormValue("fixed_costs")),
		VariableCostPerUnit: parseNumber(r.FormValue("variable_cost")),
		PricePerUnit:        parseNumber(r.FormValue("price")),
	})
	s.writeJSON(w, http.StatusOK, breakEvenResponse{BreakEvenResult: result, Scenarios: result.Scenarios()})
}

type pricingResponse struct {
	pricing.PricingResult
	LowMargin  bool                    `json:"low_margin"`
	Projection []pricing.ProjectionRow `json:"projection"`
}

func (s *server) handlePricing(w http.ResponseWriter, r *http.Request) {
	mode, err := pricing.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	resolver := s.resolver.Load()
	margin := parseNumber(r.FormValue("margin"))
	if strings.TrimSpace(r.FormValue("margin")) == "" {
		if b, ok := resolver.Bounds(mode); ok {
			margin = b.DefaultMargin
		}
	}

	result := resolver.ResolvePricing(mode, pricing.CostComponents{
		ProductionCost: parseNumber(r.FormValue("production_cost")),
		OperatingCosts: parseNumber(r.FormValue("operating_costs")),
		PurchasePrice:  parseNumber(r.FormValue("purchase_price")),
		ShippingCost:   parseNumber(r.FormValue("shipping_cost")),
	}, margin)

	s.writeJSON(w, http.StatusOK, pricingResponse{
		PricingResult: result,
		LowMargin:     result.LowMargin(),
		Projection:    result.Projection(),
	})
}

const maxQuoteBody = 1 << 20

type quoteRequest struct {
	BusinessName string           `json:"business_name"`
	ClientName   string           `json:"client_name"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	Items        []struct {
		Description string          `json:"description"`
		Quantity    int64           `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
	} `json:"items"`
}

type quoteResponse struct {
	Quote  *quote.Quote `json:"quote"`
	Totals quote.Totals `json:"totals"`
}

func (s *server) decodeQuote(w http.ResponseWriter, r *http.Request) (*quote.Quote, error) {
	var req quoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuoteBody)).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid quote payload: %w", err)
	}

	rate := *s.taxRate.Load()
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("tax_rate debe estar entre 0 y 100")
	}

	q := &quote.Quote{BusinessName: strings.TrimSpace(req.BusinessName), ClientName: strings.TrimSpace(req.ClientName), TaxRate: rate}
	for i, item := range req.Items {
		if item.Quantity < 0 || item.Price.IsNegative() {
			return nil, fmt.Errorf("item %d: cantidad y precio deben ser mayores o iguales a 0", i+1)
		}
		q.UpdateItem(q.AddItem(), strings.TrimSpace(item.Description), item.Quantity, item.Price)
	}
	if len(q.Items) == 0 {
		q.AddItem()
	}
	return q, nil
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.decodeQuote(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Totals: q.Totals()})
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, err := s.decodeQuote(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(quote.RenderText(q, s.now())))
}

func (s *server) handlePassword(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	length, _ := strconv.Atoi(query.Get("length"))

	opts := password.Options{
		Length:    password.ClampLength(length),
		Uppercase: parseFlag(query.Get("uppercase")),
		Numbers:   parseFlag(query.Get("numbers")),
		Symbols:   parseFlag(query.Get("symbols")),
	}

	generated, err := password.Generate(opts)
	if err != nil {
		s.log.Error().Err(err).Msg("generate password")
		http.Error(w, "failed to generate password", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"password": generated, "length": opts.Length})
}

func (s *server) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	message := r.FormValue("message")
	if id := r.FormValue("template"); id != "" && message == "" {
		t, ok := whatsapp.TemplateByID(id)
		if !ok {
			http.Error(w, "template desconocido", http.StatusBadRequest)
			return
		}
		message = t.Text
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"link":    whatsapp.BuildLink(strings.TrimSpace(r.FormValue("phone")), message),
		"message": message,
	})
}

func (s *server) handleWhatsAppTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"templates": whatsapp.Templates()})
}

// parseNumber reads a form value the way the calculators do: anything that
// is not a finite number counts as 0.
func parseNumber(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func parseRequiredFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s debe ser numérico", field)
	}
	return value, nil
}

// parseFlag treats a missing value as enabled.
func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

// writeJSON encodes v before writing the header; encoding failures are
// answered with 500.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
