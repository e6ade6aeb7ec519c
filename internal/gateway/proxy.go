package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/graphql-go/graphql"

	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
)

// Router is the single public entrypoint. GraphQL requests are executed
// against the aggregated schema; plain REST paths are proxied unchanged to
// the owning service.
type Router struct {
	schema graphql.Schema
}

// NewRouter creates the gateway router
func NewRouter(schema graphql.Schema) *Router {
	return &Router{schema: schema}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQL handles POST /graphql
func (rt *Router) GraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid GraphQL request body"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         rt.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	writeJSON(w, http.StatusOK, result)
}

// SetupRoutes wires the GraphQL endpoint, the REST proxies and the JSON 404
// fallback into a single handler.
func (rt *Router) SetupRoutes(userURL, carURL, reservationURL, paymentURL string) (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /graphql", rt.GraphQL)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "gateway"})
	})

	routes := map[string]string{
		"/users":        userURL,
		"/cars":         carURL,
		"/reservations": reservationURL,
		"/payments":     paymentURL,
	}
	for prefix, target := range routes {
		proxy, err := newServiceProxy(target)
		if err != nil {
			return nil, err
		}
		mux.Handle(prefix, proxy)
		mux.Handle(prefix+"/", proxy)
	}

	// Anything unrouted gets a JSON 404 instead of the default text page
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "route not found",
			"method": r.Method,
			"path":   r.URL.Path,
		})
	})

	return mux, nil
}

// newServiceProxy builds a reverse proxy that forwards the request path
// untouched to the target service.
func newServiceProxy(target string) (http.Handler, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(parsed)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger := observability.LoggerFromContext(r.Context())
		logger.Error().
			Err(err).
			Str("target", target).
			Str("path", r.URL.Path).
			Msg("Proxy request failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
	}
	return proxy, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
