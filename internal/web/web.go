package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mktcal/internal/calendar"
	"mktcal/internal/config"
	"mktcal/internal/ics"
	appLog "mktcal/internal/log"
	"mktcal/internal/model"
	"mktcal/internal/store"
)

// SuccessMessage is shown after an accepted submission.
const SuccessMessage = "Event Added to Calendar - Remember to Brief for Marketing Input"

// Server serves the dashboard page and its JSON API.
type Server struct {
	cfg     *config.Config
	session *calendar.Session
	mux     *http.ServeMux

	// now is the clock used for the default date window and ICS stamps.
	now func() time.Time
}

//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a new Server over an already loaded session.
func NewServer(cfg *config.Config, session *calendar.Session) *Server {
	s := &Server{
		cfg:     cfg,
		session: session,
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the full handler chain: request IDs and access logging,
// then basic auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		h = s.basicAuthMiddleware(h)
	}
	return requestLogger(h)
}

func (s *Server) basicAuthEnabled() bool {
	// 빈 사용자명 또는 비밀번호는 비활성화로 취급한다.
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health 는 항상 무인증으로 노출한다.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="mktcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer serves on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config, session *calendar.Session) error {
	s := NewServer(cfg, session)
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen, "basic_auth", s.basicAuthEnabled())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// ctx 가 cancel 되면 진행 중인 요청을 최대 10초 기다린 뒤 종료한다.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/meta", s.handleMeta)
	s.mux.HandleFunc("GET /api/timeline", s.handleTimeline)
	s.mux.HandleFunc("POST /api/events", s.handleSubmit)
	s.mux.HandleFunc("GET /api/events.ics", s.handleExport)
	s.mux.HandleFunc("POST /api/reload", s.handleReload)
	s.mux.Handle("GET /", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// staticFileServer serves the embedded dashboard page.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "dashboard not available", http.StatusServiceUnavailable)
		})
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /api/* 요청은 정적 UI에서 서빙하지 않는다 (HTML 대신 404).
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// metaResponse describes what the page needs to build its controls.
type metaResponse struct {
	Categories        []string                 `json:"categories"`
	AllowedCategories []string                 `json:"allowed_categories"`
	Colors            []calendar.CategoryColor `json:"colors"`
	DefaultRange      model.DateRange          `json:"default_range"`
	Bounds            *model.DateRange         `json:"bounds,omitempty"`
	EventCount        int                      `json:"event_count"`
	LoadedAt          time.Time                `json:"loaded_at"`
	Warning           string                   `json:"warning,omitempty"`
	BriefURL          string                   `json:"brief_url,omitempty"`
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	resp := metaResponse{
		Categories:        s.session.Categories(),
		AllowedCategories: s.session.AllowedCategories(),
		Colors:            calendar.Palette(),
		DefaultRange:      calendar.DefaultRange(s.now().In(s.cfg.Location()), s.cfg.WindowDays),
		Bounds:            s.session.Bounds(),
		EventCount:        s.session.Table().Len(),
		LoadedAt:          s.session.LoadedAt(),
		BriefURL:          s.cfg.BriefURL,
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if warn := s.session.Warning(); warn != nil {
		resp.Warning = warn.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// timelineResponse is the projection plus a ready-made chart title.
type timelineResponse struct {
	Title string `json:"title"`
	calendar.Timeline
}

// handleTimeline filters and projects the session table.
//
// GET /api/timeline?q=sale&category=Social&category=Eblast&start=2024-05-01&end=2024-07-01
//   - category absent: every category present in the data
//   - category present but blank: no category, so nothing matches
//   - start/end: applied only when both are given
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	spec, err := s.filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tl := s.session.Timeline(spec, s.cfg.LabelMax)
	title := "Marketing Calendar"
	if spec.Interval != nil {
		title = fmt.Sprintf("%s (%s to %s)", title, spec.Interval.From, spec.Interval.To)
	}

	appLog.Debug("timeline", "query", spec.Query, "categories", len(spec.Categories), "spans", len(tl.Spans))
	writeJSON(w, http.StatusOK, timelineResponse{Title: title, Timeline: tl})
}

func (s *Server) filterFromQuery(q url.Values) (calendar.FilterSpec, error) {
	spec := calendar.FilterSpec{Query: strings.TrimSpace(q.Get("q"))}

	if values, ok := q["category"]; ok {
		spec.Categories = calendar.NewCategorySet()
		for _, v := range values {
			if v != "" {
				spec.Categories[v] = struct{}{}
			}
		}
	} else {
		spec.Categories = calendar.NewCategorySet(s.session.Categories()...)
	}

	interval, err := parseInterval(q.Get("start"), q.Get("end"))
	if err != nil {
		return spec, err
	}
	spec.Interval = interval
	return spec, nil
}

// parseInterval needs both ends; with only one the date filter is skipped.
func parseInterval(start, end string) (*model.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, nil
	}
	from := calendar.ParseDate(start)
	if !from.Valid {
		return nil, fmt.Errorf("invalid start date %q", start)
	}
	to := calendar.ParseDate(end)
	if !to.Valid {
		return nil, fmt.Errorf("invalid end date %q", end)
	}
	if to.Before(from) {
		return nil, errors.New("start date is after end date")
	}
	return &model.DateRange{From: from, To: to}, nil
}

type submitResponse struct {
	Status   calendar.Status `json:"status"`
	Reason   string          `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
	BriefURL string          `json:"brief_url,omitempty"`
	Event    *calendar.Span  `json:"event,omitempty"`
}

// handleSubmit accepts a JSON body or a form post. JSON dates must be
// YYYY-MM-DD (what the page's date inputs send); form dates are read leniently.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.session.Submit(sub)
	var pe *store.PersistError
	switch {
	case errors.As(err, &pe):
		writeError(w, http.StatusInternalServerError, "failed to save event: "+pe.Err.Error())
		return
	case errors.Is(err, calendar.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		appLog.Error("submission failed", err)
		writeError(w, http.StatusInternalServerError, "failed to save event")
		return
	}

	if !out.Accepted() {
		writeJSON(w, http.StatusUnprocessableEntity, submitResponse{Status: out.Status, Reason: out.Reason})
		return
	}

	resp := submitResponse{
		Status:   out.Status,
		Message:  SuccessMessage,
		BriefURL: s.cfg.BriefURL,
	}
	if out.Event != nil {
		tl := calendar.Project([]model.Event{*out.Event}, calendar.ProjectOptions{LabelMax: s.cfg.LabelMax})
		resp.Event = &tl.Spans[0]
	}
	writeJSON(w, http.StatusCreated, resp)
}

func decodeSubmit(r *http.Request) (calendar.Submission, error) {
	var sub calendar.Submission
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			return sub, fmt.Errorf("invalid JSON body: %w", err)
		}
		return sub, nil
	}

	if err := r.ParseForm(); err != nil {
		return sub, errors.New("invalid form body")
	}
	sub.Name = r.PostForm.Get("name")
	sub.Category = r.PostForm.Get("category")

	var err error
	if sub.Start, err = formDate(r.PostForm, "start_date"); err != nil {
		return sub, err
	}
	if sub.End, err = formDate(r.PostForm, "end_date"); err != nil {
		return sub, err
	}
	return sub, nil
}

// formDate reads an optional date field; blank is a null date.
func formDate(form url.Values, key string) (model.NullDate, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return model.NullDate{}, nil
	}
	d := calendar.ParseDate(v)
	if !d.Valid {
		return d, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

// handleExport returns the filtered events as an .ics download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	spec, err := s.filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events := s.session.Filter(spec)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="marketing-calendar.ics"`)
	if err := ics.Write(w, events, s.now()); err != nil {
		appLog.Error("ics export write failed", err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "reloaded",
		"event_count": s.session.Table().Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
