package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	appjournal "github.com/Zhima-Mochi/minishop-market/internal/application/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/application/owner"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Handler serves the read-only ops endpoints next to the interactive menu.
type Handler struct {
	products application.UseCase[owner.ListProductsInput, *owner.ListProductsResult]
	journal  application.UseCase[appjournal.ListEntriesInput, []journal.Entry]
	gatherer prometheus.Gatherer
	log      observability.Logger
	tel      observability.Observability
}

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
)

func NewHandler(
	products application.UseCase[owner.ListProductsInput, *owner.ListProductsResult],
	journalUC application.UseCase[appjournal.ListEntriesInput, []journal.Entry],
	gatherer prometheus.Gatherer,
	logger observability.Logger,
	tel observability.Observability,
) *Handler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = observability.NopLogger()
	}
	return &Handler{
		products: products,
		journal:  journalUC,
		gatherer: gatherer,
		log:      baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:      tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	if h.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	// Trace → request logger + metrics → access log → handler
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)
	h.muxHandle(mux, http.MethodGet, "/products", h.handleProducts)
	h.muxHandle(mux, http.MethodGet, "/journal", h.handleJournal)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := contextWithRoute(r.Context(), route)
		r = r.WithContext(ctx)

		wrapped := h.withTrace(
			ObservabilityMiddleware(
				logctx.FromOr(ctx, h.log),
				func(r *http.Request) string {
					return r.Header.Get(headerRequestID)
				},
				h.tel,
			)(
				h.withAccessLog(http.HandlerFunc(handler)),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type productResponse struct {
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	SellPrice string `json:"sell_price"`
}

type productsResponse struct {
	MarketBalance string            `json:"market_balance"`
	Margin        string            `json:"margin"`
	Products      []productResponse `json:"products"`
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.products.Execute(r.Context(), owner.ListProductsInput{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	body := productsResponse{
		MarketBalance: res.MarketBalance.StringFixed(2),
		Margin:        res.Margin.String(),
		Products:      make([]productResponse, 0, res.Count),
	}
	for p := range res.Products {
		body.Products = append(body.Products, productResponse{
			Name:      p.Name,
			Stock:     p.Stock,
			SellPrice: p.SellPrice.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, body)
}

type journalEntryResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	ProductName   string    `json:"product_name,omitempty"`
	CustomerID    string    `json:"customer_id,omitempty"`
	Quantity      int       `json:"quantity"`
	Amount        string    `json:"amount"`
	MarketBalance string    `json:"market_balance,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (h *Handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = n
	}

	entries, err := h.journal.Execute(r.Context(), appjournal.ListEntriesInput{Limit: limit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	body := make([]journalEntryResponse, 0, len(entries))
	for _, e := range entries {
		row := journalEntryResponse{
			ID:          e.ID,
			Kind:        string(e.Kind),
			ProductName: e.ProductName,
			CustomerID:  e.CustomerID,
			Quantity:    e.Quantity,
			Amount:      e.Amount.StringFixed(2),
			OccurredAt:  e.OccurredAt,
		}
		if e.Kind == journal.KindMarginChange {
			row.Amount = e.Margin.String()
		}
		if !e.MarketBalance.IsZero() {
			row.MarketBalance = e.MarketBalance.StringFixed(2)
		}
		body = append(body, row)
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("minishop.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		ctxWithSpan, span := tracer.Start(parentCtx,
			r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type routeKey struct{}

// contextWithRoute stores the route template so metrics and logs keep
// low-cardinality labels.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
