package intake

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/clientip"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/requestid"
)

// Mountable is anything that serves a route subtree.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the root router.
type RouterOptions struct {
	// AllowedOrigins is the FRONTEND_URL list used for CORS.
	AllowedOrigins []string
	// Middlewares run after request ID, client IP and CORS.
	Middlewares []func(http.Handler) http.Handler
	// API is mounted at /api.
	API Mountable
}

// Router creates the root router.
//
//	svc := intake.NewService(dispatcher, log)
//	r := intake.Router(intake.RouterOptions{
//		AllowedOrigins: cfg.FrontendURL,
//		API:            svc,
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, CORS(opts.AllowedOrigins))
	r.Use(opts.Middlewares...)
	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	if opts.API != nil {
		r.Mount("/api", opts.API.Handle())
	}
	return r
}
