// Package mockapi is an in-memory stand-in for the console backend. It speaks
// the same envelope, error schema and paths as the real server, and is used
// by the package tests and by `counselctl mock`.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/InsulaLabs/counsel/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const timeLayout = "2006-01-02 15:04:05"

// Request is what the server saw of one call.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	ContentType   string
	Body          []byte
}

type Server struct {
	logger *slog.Logger
	token  string
	now    func() time.Time

	mu         sync.Mutex
	requests   []Request
	throttle   int
	retryAfter time.Duration

	admin          models.AdminProfile
	counselors     *collection[models.Counselor]
	durations      *collection[models.CounselingDuration]
	companies      *collection[models.Company]
	recharges      *collection[models.Recharge]
	users          *collection[models.User]
	activities     *collection[models.Activity]
	evaluations    *collection[models.Evaluation]
	evaluationData *collection[models.EvaluationDatum]
	questionnaires *collection[models.Questionnaire]
	faqs           *collection[models.FAQ]
	orders         *collection[models.ConsultationOrder]
	feedback       *collection[models.Feedback]
	menus          *collection[models.Menu]
	industries     *collection[models.Industry]
	cities         []models.City
}

type Option func(*Server)

// WithToken makes every route require "Authorization: Bearer <token>".
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithGroup("mockapi")
	s.seed()
	return s
}

// Throttle answers the next n requests with 429 and the given Retry-After.
func (s *Server) Throttle(n int, retryAfter time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.throttle = n
	s.retryAfter = retryAfter
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request to path.
func (s *Server) LastRequest(path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Path == path {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Mock backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.limit)
	r.Use(s.authenticate)

	r.Post("/admin/detail", s.adminDetail)

	r.Route("/counselors", func(r chi.Router) {
		r.Post("/list", s.listCounselors)
		r.Post("/create", s.createCounselor)
		r.Post("/edit", s.editCounselor)
		r.Post("/delete", s.deleteCounselor)
		r.Post("/toggle-status", s.toggleCounselor)
		r.Post("/duration/list", s.listDurations)
		r.Post("/duration/create", s.createDuration)
		r.Post("/duration/audit", s.auditDuration)
		r.Get("/cities", s.searchCities)
		r.Post("/import-excel", s.importCounselors)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Post("/list", s.listCompanies)
		r.Post("/create", s.createCompany)
		r.Post("/edit", s.editCompany)
		r.Post("/delete", s.deleteCompany)
		r.Post("/recharge/list", s.listRecharges)
		r.Post("/recharge/create", s.createRecharge)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/list", s.listUsers)
		r.Post("/enable", s.setUserStatus(models.UserActive))
		r.Post("/disable", s.setUserStatus(models.UserInactive))
		r.Post("/export", s.exportUsers)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Post("/list", s.listActivities)
		r.Post("/create", s.createActivity)
		r.Post("/edit", s.editActivity)
		r.Post("/enable", s.setActivityEnabled(true))
		r.Post("/disable", s.setActivityEnabled(false))
		r.Post("/delete", s.deleteActivity)
	})

	r.Route("/evaluations", func(r chi.Router) {
		r.Post("/list", s.listEvaluations)
		r.Post("/data/list", s.listEvaluationData)
		r.Post("/create", s.createEvaluation)
	})

	r.Post("/questionnaires/list", s.listQuestionnaires)
	r.Post("/questionnaires/delete", s.deleteQuestionnaire)

	r.Route("/faqs", func(r chi.Router) {
		r.Post("/list", s.listFAQs)
		r.Post("/create", s.createFAQ)
		r.Post("/edit", s.editFAQ)
		r.Post("/toggle-status", s.toggleFAQ)
		r.Post("/delete", s.deleteFAQ)
	})

	r.Post("/orders/consultation/list", s.listOrders)
	r.Post("/feedback/list", s.listFeedback)

	r.Route("/menu", func(r chi.Router) {
		r.Post("/tree", s.menuTree)
		r.Post("/list", s.listMenus)
		r.Post("/create", s.createMenu)
		r.Post("/edit", s.editMenu)
		r.Post("/delete", s.deleteMenu)
	})
	r.Post("/industry/list", s.listIndustries)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "no such endpoint", requestID(r))
	})
	return r
}

type ridKey struct{}

func requestID(r *http.Request) string {
	if rid, ok := r.Context().Value(ridKey{}).(string); ok {
		return rid
	}
	return ""
}

// record keeps a copy of the request and assigns the server side request id.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		s.mu.Unlock()

		rid := uuid.NewString()
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "rid", rid, "client_request_id", r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ridKey{}, rid)))
	})
}

func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		throttled := s.throttle > 0
		if throttled {
			s.throttle--
		}
		retryAfter := s.retryAfter
		s.mu.Unlock()

		if throttled {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			w.Header().Set("X-RateLimit-Limit", "10")
			w.Header().Set("X-RateLimit-Burst", "5")
			writeError(w, http.StatusTooManyRequests, http.StatusTooManyRequests, "too many requests", requestID(r))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, http.StatusUnauthorized, "unauthorized", requestID(r))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	RID     string `json:"rid"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "success", RID: requestID(r), Data: data})
}

func writeOK(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: message, RID: requestID(r)})
}

func writeError(w http.ResponseWriter, status, code int, message, rid string) {
	writeJSON(w, status, envelope{Code: code, Message: message, RID: rid})
}

// decode reads the JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, _ := io.ReadAll(r.Body)
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, http.StatusBadRequest, "malformed request body: "+err.Error(), requestID(r))
		return false
	}
	return true
}

func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(name)), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, http.StatusBadRequest, "missing or invalid "+name, requestID(r))
		return 0, false
	}
	return id, true
}

func (s *Server) stamp() (string, int64) {
	t := s.now()
	return t.Format(timeLayout), t.Unix()
}
