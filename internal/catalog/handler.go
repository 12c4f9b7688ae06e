package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/affiliate"
)

// DealView is a Product prepared for display: the outbound link carries the
// affiliate tag, an empty image link is replaced with the placeholder, and
// the freshness timestamp is humanized.
type DealView struct {
	Product
	AffiliateLink string `json:"affiliate_link"`
	UpdatedAgo    string `json:"updated_ago"`
}

// DealsResponse is the response for GET /api/v1/catalog/{region}/deals.
type DealsResponse struct {
	Region      string     `json:"region"`
	Items       []DealView `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalPages  int        `json:"total_pages"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	StartIndex  int        `json:"start_index"`
	EndIndex    int        `json:"end_index"`
	PageNumbers []int      `json:"page_numbers"`
}

// HandlerConfig carries the render-time settings and collaborators the
// catalog handler needs beyond the engines themselves.
type HandlerConfig struct {
	AffiliateTag     string
	PlaceholderImage string
	Categories       []CategoryDescriptor

	// Reload re-ingests a region's source directory and returns the fresh
	// product list. Nil disables the reload endpoint.
	Reload func(region string) []Product
}

// Handler serves the catalog query API: one engine per region, all regions
// sharing the same pipeline.
type Handler struct {
	engines map[string]*Engine
	cfg     HandlerConfig
	logger  *zap.Logger
}

// NewHandler creates a catalog API handler over the given region engines.
func NewHandler(engines map[string]*Engine, cfg HandlerConfig, logger *zap.Logger) *Handler {
	if cfg.AffiliateTag == "" {
		cfg.AffiliateTag = affiliate.DefaultTag
	}
	return &Handler{engines: engines, cfg: cfg, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/catalog/{region}/deals", h.handleDeals)
	mux.HandleFunc("GET /api/v1/catalog/{region}/stats", h.handleStats)
	mux.HandleFunc("POST /api/v1/catalog/{region}/reload", h.handleReload)
}

// handleDeals runs the search/filter/sort/paginate pipeline for one region.
//
//	@Summary		Query deals
//	@Description	Returns one page of deals matching the search text and filters, with affiliate links applied.
//	@Tags			catalog
//	@Produce		json
//	@Param			region path string true "Catalog region (us, ca)"
//	@Param			q query string false "Fuzzy search over product names"
//	@Param			min_price query number false "Minimum final price" default(0)
//	@Param			max_price query number false "Maximum final price" default(9999)
//	@Param			min_discount query int false "Minimum savings percent (0 disables)"
//	@Param			categories query string false "Comma-separated category labels"
//	@Param			coupon query bool false "Only deals with a clippable coupon"
//	@Param			promo_code query bool false "Only deals with a promo code"
//	@Param			lightning_deals query bool false "Only lightning deals"
//	@Param			extra_offer query bool false "Only deals with an extra offer"
//	@Param			sort query string false "newest | rating | reviews | price-asc | price-desc | discount" default(newest)
//	@Param			page query int false "1-based page number" default(1)
//	@Param			page_size query int false "Page size (12, 24, 48, 96)" default(12)
//	@Success		200 {object} DealsResponse
//	@Failure		400 {object} map[string]any
//	@Failure		404 {object} map[string]any
//	@Router			/catalog/{region}/deals [get]
func (h *Handler) handleDeals(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	engine, ok := h.engines[region]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown region: "+region)
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := engine.Query(query)

	now := time.Now().UTC()
	items := make([]DealView, len(result.Items))
	for i, p := range result.Items {
		items[i] = h.dealView(p, now)
	}

	writeJSON(w, http.StatusOK, DealsResponse{
		Region:      region,
		Items:       items,
		TotalItems:  result.TotalItems,
		TotalPages:  result.TotalPages,
		Page:        result.Page,
		PageSize:    result.PageSize,
		StartIndex:  result.StartIndex,
		EndIndex:    result.EndIndex,
		PageNumbers: result.PageNumbers,
	})
}

// handleStats returns totals and per-category counts for one region.
//
//	@Summary		Catalog statistics
//	@Tags			catalog
//	@Produce		json
//	@Param			region path string true "Catalog region (us, ca)"
//	@Success		200 {object} Stats
//	@Failure		404 {object} map[string]any
//	@Router			/catalog/{region}/stats [get]
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	engine, ok := h.engines[region]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown region: "+region)
		return
	}
	writeJSON(w, http.StatusOK, engine.Stats())
}

// handleReload re-ingests a region's source files and rebuilds its index.
//
//	@Summary		Reload a region's catalog
//	@Tags			catalog
//	@Produce		json
//	@Param			region path string true "Catalog region (us, ca)"
//	@Success		200 {object} Stats
//	@Failure		404 {object} map[string]any
//	@Failure		503 {object} map[string]any
//	@Router			/catalog/{region}/reload [post]
func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	engine, ok := h.engines[region]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown region: "+region)
		return
	}
	if h.cfg.Reload == nil {
		writeError(w, http.StatusServiceUnavailable, "reload not available")
		return
	}

	products := h.cfg.Reload(region)
	engine.SetProducts(products)
	h.logger.Info("catalog reloaded",
		zap.String("region", region),
		zap.Int("products", len(products)),
	)

	writeJSON(w, http.StatusOK, engine.Stats())
}

// handleCategories returns the category descriptors the grid renders as
// filter chips.
//
//	@Summary		List category descriptors
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {array} CategoryDescriptor
//	@Router			/catalog/categories [get]
func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories := h.cfg.Categories
	if categories == nil {
		categories = []CategoryDescriptor{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// dealView applies the render-time transforms to one product.
func (h *Handler) dealView(p Product, now time.Time) DealView {
	link, err := affiliate.Link(p.Hyperlink, h.cfg.AffiliateTag)
	if err != nil {
		// Ingestion validates hyperlinks, so this indicates a broken
		// ingest contract. Fall back to the raw link rather than drop
		// the deal from an already-computed page.
		h.logger.Warn("invalid hyperlink escaped ingestion",
			zap.String("asin", p.ASIN), zap.Error(err))
		link = p.Hyperlink
	}
	if p.ImageLink == "" {
		p.ImageLink = h.cfg.PlaceholderImage
	}
	return DealView{
		Product:       p,
		AffiliateLink: link,
		UpdatedAgo:    RelativeAge(p.LastUpdated, now),
	}
}

// parseQuery builds a pipeline Query from request parameters. Absent
// parameters fall back to the unrestrictive defaults.
func parseQuery(r *http.Request) (Query, error) {
	params := r.URL.Query()
	filters := DefaultFilterState()

	if v := params.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Query{}, errBadParam("min_price", v)
		}
		filters.PriceRange[0] = f
	}
	if v := params.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Query{}, errBadParam("max_price", v)
		}
		filters.PriceRange[1] = f
	}
	if v := params.Get("min_discount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return Query{}, errBadParam("min_discount", v)
		}
		filters.MinDiscount = n
	}
	if v := params.Get("categories"); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filters.Categories = append(filters.Categories, c)
			}
		}
	}

	flags := []struct {
		name   string
		target *bool
	}{
		{"coupon", &filters.SpecialOffers.Coupon},
		{"promo_code", &filters.SpecialOffers.PromoCode},
		{"lightning_deals", &filters.SpecialOffers.LightningDeals},
		{"extra_offer", &filters.SpecialOffers.ExtraOffer},
	}
	for _, f := range flags {
		if v := params.Get(f.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Query{}, errBadParam(f.name, v)
			}
			*f.target = b
		}
	}

	if v := params.Get("sort"); v != "" {
		filters.SortBy = v
	}

	page := 1
	if v := params.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Query{}, errBadParam("page", v)
		}
		page = n
	}
	pageSize := DefaultPageSize
	if v := params.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Query{}, errBadParam("page_size", v)
		}
		pageSize = NormalizePageSize(n)
	}

	return Query{
		Search:   params.Get("q"),
		Filters:  filters,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

type paramError struct{ name, value string }

func (e paramError) Error() string { return "invalid " + e.name + ": " + e.value }

func errBadParam(name, value string) error { return paramError{name: name, value: value} }

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://ohcanadadeals.com/problems/catalog-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
