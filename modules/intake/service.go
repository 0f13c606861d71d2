package intake

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Meciahacks/mindful-reach-clinic-01260/handler"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/binder"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/clientip"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/httpserver"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/logger"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/ratelimiter"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/requestid"
)

// ChannelStatus is the public view of one Outcome.
type ChannelStatus struct {
	Channel ChannelID `json:"channel"`
	OK      bool      `json:"ok"`
}

// SubmissionResponse is the 200 body of the submission endpoints.
type SubmissionResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	ID           string          `json:"id,omitempty"`
	RowsAppended int             `json:"rowsAppended,omitempty"`
	Channels     []ChannelStatus `json:"channels"`
}

// TestEmailRequest is the body of POST /send-test-email.
type TestEmailRequest struct {
	TestEmail string `json:"testEmail"`
}

// TestEmailResponse is the 200 body of POST /send-test-email.
type TestEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Service exposes a Dispatcher over HTTP.
type Service struct {
	dispatcher   *Dispatcher
	log          *slog.Logger
	errorHandler handler.ErrorHandler
	limiter      *ratelimiter.Limiter
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRateLimiter throttles the POST routes per client IP.
func WithRateLimiter(l *ratelimiter.Limiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// NewService creates the HTTP boundary for d.
func NewService(d *Dispatcher, log *slog.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		dispatcher:   d,
		log:          log,
		errorHandler: handler.NewErrorHandler(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the routes, relative to the mount point.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	submit := handler.Wrap(s.submit,
		handler.WithBinder[map[string]any](bindJSON),
		handler.WithErrorHandler[map[string]any](s.errorHandler),
	)
	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter, clientKey, http.HandlerFunc(s.tooManyRequests)))
		}

		// /send-email and /submit-to-sheets are the paths older front-end builds post to.
		r.Post("/contact", submit)
		r.Post("/send-email", submit)
		r.Post("/submit-to-sheets", submit)

		r.Post("/send-test-email", handler.Wrap(s.sendTestEmail,
			handler.WithBinder[TestEmailRequest](bindJSON),
			handler.WithErrorHandler[TestEmailRequest](s.errorHandler),
		))
	})

	r.Get("/health", httpserver.HealthCheckHandler(s.log))
	r.Get("/ready", httpserver.HealthCheckHandler(s.log, s.dispatcher.Ready))

	return r
}

func (s *Service) submit(ctx handler.Context, raw map[string]any) handler.Response {
	res, err := s.dispatcher.Dispatch(ctx, raw)
	switch {
	case errors.Is(err, ErrMissingFields):
		return handler.JSONError(http.StatusBadRequest, "Missing required fields", "")
	case errors.Is(err, ErrInvalidEmail):
		return handler.JSONError(http.StatusBadRequest, "Invalid email address", "")
	case err != nil:
		var agg *AggregateFailure
		if !errors.As(err, &agg) {
			s.log.LogAttrs(ctx, slog.LevelError, "dispatch failed",
				logger.RequestID(requestid.FromContext(ctx)),
				logger.Error(err),
				logger.Component("intake"),
			)
		}
		return handler.JSONError(http.StatusInternalServerError, "Failed to process submission", publicMessage(err))
	}

	resp := SubmissionResponse{
		Success:      true,
		Message:      successMessage(res.Primary),
		ID:           res.MessageID(),
		RowsAppended: res.RowsAppended(),
		Channels:     make([]ChannelStatus, len(res.Outcomes)),
	}
	for i, o := range res.Outcomes {
		resp.Channels[i] = ChannelStatus{Channel: o.Channel, OK: o.OK}
	}
	return handler.JSON(resp)
}

func (s *Service) sendTestEmail(ctx handler.Context, req TestEmailRequest) handler.Response {
	to := strings.TrimSpace(req.TestEmail)
	if to == "" {
		return handler.JSONError(http.StatusBadRequest, "Test email address required", "")
	}

	receipt, err := s.dispatcher.SendTestEmail(ctx, to)
	if errors.Is(err, ErrInvalidEmail) {
		return handler.JSONError(http.StatusBadRequest, "Invalid email address", "")
	}
	if errors.Is(err, ErrNoEmailChannel) {
		return handler.JSONError(http.StatusInternalServerError, "Failed to send test email", "No email channel is enabled")
	}
	if err != nil {
		return handler.JSONError(http.StatusInternalServerError, "Failed to send test email", publicMessage(err))
	}

	return handler.JSON(TestEmailResponse{
		Success: true,
		Message: "Test email sent successfully",
		ID:      receipt.MessageID,
	})
}

func successMessage(primary ChannelID) string {
	if primary == ChannelSheets {
		return "Form submitted successfully"
	}
	return "Form submission email sent successfully"
}

// publicMessage is the client-facing summary of a dispatch failure. Provider
// bodies stay in the logs.
func publicMessage(err error) string {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return fmt.Sprintf("%s channel is not configured", cfgErr.Channel)
	}
	var trErr *TransportError
	if errors.As(err, &trErr) {
		var apiErr *email.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("%s delivery failed: %s", trErr.Channel, apiErr.Error())
		}
		return fmt.Sprintf("%s delivery failed", trErr.Channel)
	}
	return "Internal server error"
}

func bindJSON(r *http.Request, v any) error {
	if err := binder.JSON(binder.WithUnknownFields())(r, v); err != nil {
		return handler.NewHTTPError(http.StatusBadRequest, "Invalid request body", err)
	}
	return nil
}

func clientKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.FromRequest(r)
}

func (s *Service) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	s.log.LogAttrs(r.Context(), slog.LevelWarn, "submission rate limited",
		logger.RequestID(requestid.FromContext(r.Context())),
		slog.String("client_ip", clientKey(r)),
		slog.String("path", r.URL.Path),
		logger.Component("intake"),
	)
	_ = handler.JSONError(http.StatusTooManyRequests, "Too many requests", "Please wait before submitting again.").Render(w, r)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(http.StatusMethodNotAllowed, "Method not allowed. Use POST.", "").Render(w, r)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(http.StatusNotFound, "Not found", "").Render(w, r)
}
