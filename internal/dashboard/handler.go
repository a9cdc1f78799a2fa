package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/coverage-dashboard/internal/charts"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
	"github.com/lueurxax/coverage-dashboard/internal/platform/config"
)

const (
	rateLimitWindow = time.Minute

	// Limiters idle for limiterIdleTTL are dropped.
	limiterIdleTTL     = 10 * time.Minute
	limiterCleanupTick = time.Minute
)

// Log field constants.
const (
	logFieldRenderID = "render_id"
	logFieldRoute    = "route"
	logFieldChart    = "chart"
)

// HTTP header constants.
const (
	headerContentType        = "Content-Type"
	headerContentDisposition = "Content-Disposition"

	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WorkbookWriter writes a view model as an XLSX workbook.
type WorkbookWriter func(w io.Writer, vm *ViewModel) error

// Handler serves the dashboard page, its chart images, the JSON view and the XLSX export.
type Handler struct {
	cfg      *config.Config
	table    *dataset.Table
	renderer *Renderer
	charts   *charts.Renderer
	workbook WorkbookWriter
	logger   *zerolog.Logger
	router   *mux.Router

	// IP-based rate limiting
	limiters *cache.Cache
}

// NewHandler creates a dashboard handler over a loaded table.
func NewHandler(cfg *config.Config, table *dataset.Table, workbook WorkbookWriter, logger *zerolog.Logger) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		cfg:      cfg,
		table:    table,
		renderer: renderer,
		charts:   charts.NewRenderer(cfg.Chart.Width, cfg.Chart.Height),
		workbook: workbook,
		logger:   logger,
		limiters: cache.New(limiterIdleTTL, limiterCleanupTick),
	}

	api := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	r := mux.NewRouter()
	r.Use(h.limit)
	r.Handle("/", h.instrument(RoutePage, h.servePage)).Methods(http.MethodGet)
	r.Handle("/charts/{name:[a-z-]+}.{format:[a-z]+}", h.instrument(RouteChart, h.serveChart)).Methods(http.MethodGet)
	r.Handle("/api/view", api.Handler(h.instrument(RouteAPI, h.serveAPI))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/export.xlsx", h.instrument(RouteExport, h.serveExport)).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h.renderError(w, http.StatusNotFound, "Not Found", "This page does not exist.")
	})

	h.router = r

	return h, nil
}

// ServeHTTP dispatches to the dashboard routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type routeFunc func(w http.ResponseWriter, r *http.Request, renderID string)

// instrument records latency, hits and a log line per request, tagged with a render ID.
func (h *Handler) instrument(route string, fn routeFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		renderID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		fn(rec, r, renderID)

		took := time.Since(start)
		LatencyHistogram.WithLabelValues(route).Observe(took.Seconds())
		HitsTotal.WithLabelValues(route, statusLabel(rec.status)).Inc()

		h.logger.Debug().
			Str(logFieldRenderID, renderID).
			Str(logFieldRoute, route).
			Str("query", r.URL.RawQuery).
			Int("status", rec.status).
			Dur("took", took).
			Msg("Dashboard request served")
	})
}

func (h *Handler) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.allowRequest(getClientIP(r, h.cfg.HTTP.TrustProxyHeaders)) {
			HitsTotal.WithLabelValues(routeOf(r), StatusLimited).Inc()
			h.renderError(w, http.StatusTooManyRequests, "Too Many Requests", "Please wait before trying again.")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func routeOf(r *http.Request) string {
	switch {
	case strings.HasPrefix(r.URL.Path, "/charts/"):
		return RouteChart
	case r.URL.Path == "/api/view":
		return RouteAPI
	case r.URL.Path == "/export.xlsx":
		return RouteExport
	default:
		return RoutePage
	}
}

// view parses the request selection and renders its view model.
func (h *Handler) view(r *http.Request) (*ViewModel, error) {
	sel, err := SelectionFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	vm, err := Render(h.table, sel)
	if err != nil {
		return nil, err
	}

	vm.Title = h.cfg.DashboardTitle

	if vm.Empty {
		EmptyResultsTotal.Inc()
	}

	return vm, nil
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, renderID string) {
	w.Header().Set(headerContentType, contentTypeHTML)

	vm, err := h.view(r)
	if err != nil {
		h.handleViewError(w, err, renderID)

		return
	}

	if err := h.renderer.RenderPage(w, NewPageData(vm, renderID)); err != nil {
		h.logger.Error().Err(err).Str(logFieldRenderID, renderID).Msg("Failed to render dashboard page")
		ErrorsTotal.WithLabelValues(ErrorTypeRender).Inc()
	}
}

func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request, renderID string) {
	vars := mux.Vars(r)

	format, err := charts.ParseFormat(vars["format"])
	if err != nil {
		h.handleViewError(w, err, renderID)

		return
	}

	vm, err := h.view(r)
	if err != nil {
		h.handleViewError(w, err, renderID)

		return
	}

	spec, err := vm.Chart(vars["name"])
	if err != nil {
		h.handleViewError(w, err, renderID)

		return
	}

	w.Header().Set(headerContentType, format.ContentType())
	w.Header().Set("Cache-Control", "private, max-age=60")

	switch s := spec.(type) {
	case charts.BarSpec:
		err = h.charts.Bar(w, s, format)
	case charts.PieSpec:
		err = h.charts.Pie(w, s, format)
	case charts.MapSpec:
		err = h.charts.Map(w, s, format)
	}

	if err != nil {
		// Headers are already out; the client sees a truncated image.
		h.logger.Error().Err(err).Str(logFieldRenderID, renderID).Str(logFieldChart, vars["name"]).Msg("Failed to render chart")
		ErrorsTotal.WithLabelValues(ErrorTypeRender).Inc()
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (h *Handler) serveAPI(w http.ResponseWriter, r *http.Request, renderID string) {
	w.Header().Set(headerContentType, contentTypeJSON)

	vm, err := h.view(r)
	if err != nil {
		code := statusFor(err)
		h.countError(err)
		w.WriteHeader(code)
		h.writeJSON(w, apiError{Error: err.Error()}, renderID)

		return
	}

	h.writeJSON(w, vm, renderID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any, renderID string) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Str(logFieldRenderID, renderID).Msg("Failed to encode view")
		ErrorsTotal.WithLabelValues(ErrorTypeRender).Inc()
	}
}

func (h *Handler) serveExport(w http.ResponseWriter, r *http.Request, renderID string) {
	vm, err := h.view(r)
	if err != nil {
		w.Header().Set(headerContentType, contentTypeHTML)
		h.handleViewError(w, err, renderID)

		return
	}

	w.Header().Set(headerContentType, contentTypeXLSX)
	w.Header().Set(headerContentDisposition, `attachment; filename="coverage-`+string(vm.Selection.Page)+`.xlsx"`)

	if err := h.workbook(w, vm); err != nil {
		h.logger.Error().Err(err).Str(logFieldRenderID, renderID).Msg("Failed to write workbook")
		ErrorsTotal.WithLabelValues(ErrorTypeExport).Inc()
	}
}

func (h *Handler) handleViewError(w http.ResponseWriter, err error, renderID string) {
	code := statusFor(err)
	h.countError(err)

	if code == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str(logFieldRenderID, renderID).Msg("Failed to render view")
		h.renderError(w, code, "Error", "Failed to compute the dashboard.")

		return
	}

	w.Header().Set(headerContentType, contentTypeHTML)
	h.renderError(w, code, http.StatusText(code), err.Error())
}

func (h *Handler) countError(err error) {
	if statusFor(err) == http.StatusInternalServerError {
		ErrorsTotal.WithLabelValues(ErrorTypeAggregate).Inc()
		return
	}

	ErrorsTotal.WithLabelValues(ErrorTypeSelection).Inc()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnknownPage),
		errors.Is(err, apperrors.ErrUnknownMapVariable),
		errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnknownChart):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusLabel(code int) string {
	switch code {
	case http.StatusOK:
		return StatusOK
	case http.StatusBadRequest:
		return StatusBadRequest
	case http.StatusNotFound:
		return StatusNotFound
	case http.StatusTooManyRequests:
		return StatusLimited
	default:
		return StatusError
	}
}

func (h *Handler) renderError(w http.ResponseWriter, code int, title, message string) {
	w.Header().Set(headerContentType, contentTypeHTML)
	w.WriteHeader(code)

	if err := h.renderer.RenderError(w, &ErrorData{
		Code:    code,
		Title:   title,
		Message: message,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render error page")
	}
}

func (h *Handler) allowRequest(ip string) bool {
	limiter := rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(h.cfg.HTTP.RateLimitRPM)), h.cfg.HTTP.RateLimitBurst)
	if err := h.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		if existing, ok := h.limiters.Get(ip); ok {
			limiter = existing.(*rate.Limiter)
		}
	}

	// Refresh the idle deadline on every request.
	h.limiters.Set(ip, limiter, cache.DefaultExpiration)

	return limiter.Allow()
}

// getClientIP returns the request's client address. Forwarding headers are only
// honoured when trustProxy is set.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// RemoteAddr without the ephemeral port
	if i := strings.LastIndexByte(r.RemoteAddr, ':'); i > 0 {
		return r.RemoteAddr[:i]
	}

	return r.RemoteAddr
}
