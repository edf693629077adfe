package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"resalepulse/internal/analytics"
	apierrors "resalepulse/internal/errors"
	"resalepulse/internal/services"
	"resalepulse/pkg/contracts/domain"
)

// AnalyticsHandler serves the aggregate endpoints backed by the current
// snapshot, with RFC 7807 error responses.
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalyticsHandler creates the analytics handler.
func NewAnalyticsHandler(service AnalyticsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/boxplot", h.GetBoxPlot)
	r.Get("/domains", h.GetDomains)
	r.Get("/summary", h.GetSummary)
	r.Get("/timeseries", h.GetTimeSeries)
	r.Get("/categories", h.GetCategories)
	r.Get("/lease/parse", h.ParseLease)
	r.Post("/refresh", h.Refresh)

	return r
}

// analyticsQuery carries the query parameters shared by the aggregate
// endpoints. Month bounds use the datastore's YYYY-MM layout.
type analyticsQuery struct {
	Metric    string `validate:"omitempty,oneof=price price_per_sqft price_per_lease_year"`
	FromMonth string `validate:"omitempty,datetime=2006-01"`
	ToMonth   string `validate:"omitempty,datetime=2006-01"`
	Towns     []string
	FlatTypes []string
	LeaseMin  *float64 `validate:"omitempty"`
	LeaseMax  *float64 `validate:"omitempty"`
}

func (h *AnalyticsHandler) parseQuery(r *http.Request) (analyticsQuery, error) {
	q := r.URL.Query()
	parsed := analyticsQuery{
		Metric:    q.Get("metric"),
		FromMonth: q.Get("from"),
		ToMonth:   q.Get("to"),
		Towns:     multiValue(q["town"]),
		FlatTypes: multiValue(q["flat_type"]),
	}
	if parsed.Metric == "" {
		parsed.Metric = string(domain.MetricPrice)
	}

	for _, bound := range []struct {
		param string
		dst   **float64
	}{
		{"lease_min", &parsed.LeaseMin},
		{"lease_max", &parsed.LeaseMax},
	} {
		raw := q.Get(bound.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return parsed, apierrors.ErrValidation(bound.param, "must be a non-negative number")
		}
		*bound.dst = &v
	}
	if parsed.LeaseMin != nil && parsed.LeaseMax != nil && *parsed.LeaseMin > *parsed.LeaseMax {
		return parsed, apierrors.ErrValidation("lease_min", "must not exceed lease_max")
	}

	if err := h.validate.Struct(parsed); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return parsed, apierrors.ErrValidation(field, fmt.Sprintf("failed %s validation", verrs[0].Tag()))
		}
		return parsed, apierrors.ErrValidation("query", err.Error())
	}
	return parsed, nil
}

func (q analyticsQuery) filter() analytics.Filter {
	return analytics.Filter{
		Towns:         q.Towns,
		FlatTypes:     q.FlatTypes,
		FromMonth:     q.FromMonth,
		ToMonth:       q.ToMonth,
		MinLeaseYears: q.LeaseMin,
		MaxLeaseYears: q.LeaseMax,
	}
}

// multiValue flattens repeated query parameters, additionally splitting each
// on commas so ?town=A&town=B and ?town=A,B are equivalent.
func multiValue(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// GetBoxPlot handles GET /api/analytics/boxplot.
func (h *AnalyticsHandler) GetBoxPlot(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	series, err := h.service.BoxPlot(r.Context(), query.filter(), domain.Metric(query.Metric))
	if err != nil {
		h.handleServiceError(w, r, "boxplot", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"metric": query.Metric,
		"data":   series,
		"count":  len(series),
	})
}

// GetDomains handles GET /api/analytics/domains. Domains are computed over
// the whole snapshot, so filter parameters other than metric are ignored.
func (h *AnalyticsHandler) GetDomains(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	domains, err := h.service.Domains(r.Context(), domain.Metric(query.Metric))
	if err != nil {
		h.handleServiceError(w, r, "domains", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"metric": query.Metric,
		"data":   domains,
	})
}

// GetSummary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	stats, err := h.service.Summary(r.Context(), query.filter())
	if err != nil {
		h.handleServiceError(w, r, "summary", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// GetTimeSeries handles GET /api/analytics/timeseries.
func (h *AnalyticsHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	series, err := h.service.TimeSeries(r.Context(), query.filter())
	if err != nil {
		h.handleServiceError(w, r, "timeseries", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
		"count":  len(series.Points),
	})
}

// GetCategories handles GET /api/analytics/categories. mode=count (default)
// returns raw band counts; mode=percent adds the percentage presentation.
func (h *AnalyticsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "count"
	}
	if mode != "count" && mode != "percent" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mode", "must be count or percent"))
		return
	}

	result, err := h.service.Categories(r.Context(), query.filter(), mode == "percent")
	if err != nil {
		h.handleServiceError(w, r, "categories", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"mode":   mode,
		"data":   result,
		"count":  len(result.Counts),
	})
}

// ParseLease handles GET /api/analytics/lease/parse. It exposes the lease
// text parser so clients can validate free-form lease input.
func (h *AnalyticsHandler) ParseLease(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("text", "lease text is required"))
		return
	}

	years, ok := analytics.ParseLeaseYears(text)
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"UNPARSEABLE_LEASE",
			"Lease text does not contain a recognizable year count",
			map[string]interface{}{"text": text},
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"text":  text,
			"years": years,
		},
	})
}

// Refresh handles POST /api/analytics/refresh.
func (h *AnalyticsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "refresh requested",
		slog.String("request_id", reqID))

	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "refresh failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.errorHandler.HandleError(w, r, apierrors.UpstreamFetchError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"snapshot_id":  snapshot.ID.String(),
			"fetched_at":   snapshot.FetchedAt,
			"months":       snapshot.Months,
			"record_count": len(snapshot.Records),
		},
	})
}

// handleServiceError maps service sentinels to API errors; everything else
// is passed through to the central error handler.
func (h *AnalyticsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "analytics request failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.String("request_id", reqID))

	switch {
	case errors.Is(err, services.ErrNoSnapshot):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"NO_SNAPSHOT",
			"No snapshot loaded yet; POST /api/analytics/refresh first",
		))
	case errors.Is(err, services.ErrSnapshotEmpty):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"DATA_NOT_FOUND",
			"The current snapshot contains no data",
		))
	case errors.Is(err, services.ErrInvalidMetric):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("metric", err.Error()))
	case errors.Is(err, services.ErrInvalidWindow):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("from", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
