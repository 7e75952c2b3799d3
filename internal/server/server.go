// Package server is a small HTTP front end for trying widgets in a browser or
// with curl. Every visitor gets a session holding its own Controller built
// from the same source page.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/agiangrant/esthetic"
	"github.com/agiangrant/esthetic/internal/logging"
	"github.com/agiangrant/esthetic/source"
)

// ErrUnknownSession is returned for a session id that was never issued or has
// been deleted.
var ErrUnknownSession = errors.New("server: unknown session")

// Server serves enhanced copies of one page.
type Server struct {
	page   []byte
	config esthetic.Config

	mu       sync.Mutex
	sessions map[string]*session

	engine *gin.Engine
	log    *slog.Logger
}

type session struct {
	ctl *esthetic.Controller
	doc *html.Node
}

// New checks that page can be enhanced with config and sets up the routes.
func New(page []byte, config esthetic.Config) (*Server, error) {
	s := &Server{
		page:     page,
		config:   config,
		sessions: make(map[string]*session),
		log:      logging.Logger().With("component", "server"),
	}
	if _, err := s.newSession(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handleCreate)
	r.GET("/s/:sid", s.handlePage)
	r.POST("/s/:sid/events", s.handleEvent)
	r.POST("/s/:sid/close", s.handleClose)
	r.GET("/s/:sid/form", s.handleForm)
	r.DELETE("/s/:sid", s.handleDelete)

	s.engine = r
	return s, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run serves on addr until ctx is cancelled, then shuts down and tears every
// session down.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.ctl.Teardown()
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	return err
}

func (s *Server) newSession() (*session, error) {
	doc, err := source.Parse(bytes.NewReader(s.page))
	if err != nil {
		return nil, err
	}
	ctl, err := esthetic.NewController(s.config)
	if err != nil {
		return nil, err
	}
	if _, err := ctl.Enhance(doc); err != nil {
		return nil, err
	}
	return &session{ctl: ctl, doc: doc}, nil
}

func (s *Server) lookup(sid string) (*session, error) {
	if _, err := uuid.Parse(sid); err != nil {
		return nil, ErrUnknownSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, ErrUnknownSession
	}
	return sess, nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleCreate(c *gin.Context) {
	sess, err := s.newSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sid := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = sess
	s.mu.Unlock()

	s.log.Info("session created", "sid", sid, "widgets", len(sess.ctl.Widgets()))
	c.Redirect(http.StatusSeeOther, "/s/"+sid)
}

func (s *Server) handlePage(c *gin.Context) {
	sess, err := s.lookup(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := sess.ctl.Write(&buf, sess.doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// EventRequest is the body of POST /s/:sid/events.
type EventRequest struct {
	Widget uint64 `json:"widget" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Target string `json:"target"`
	Value  string `json:"value"`
}

// WidgetState is one widget as reported after an event.
type WidgetState struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
	Value   string `json:"value"`
	List    string `json:"list"`
}

// EventResponse reports whether the event was handled and every widget's
// state afterwards.
type EventResponse struct {
	Handled bool          `json:"handled"`
	Widgets []WidgetState `json:"widgets"`
}

func (s *Server) handleEvent(c *gin.Context) {
	sess, err := s.lookup(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e := &esthetic.Event{
		Type:   req.Type,
		Target: esthetic.Target{Kind: esthetic.ParseTargetKind(req.Target), Value: req.Value},
	}
	handled, err := sess.ctl.Dispatch(esthetic.ID(req.Widget), e)
	if errors.Is(err, esthetic.ErrUnknownWidget) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, EventResponse{Handled: handled, Widgets: states(sess.ctl)})
}

func (s *Server) handleClose(c *gin.Context) {
	sess, err := s.lookup(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	sess.ctl.CloseAll()
	c.JSON(http.StatusOK, EventResponse{Widgets: states(sess.ctl)})
}

func (s *Server) handleForm(c *gin.Context) {
	sess, err := s.lookup(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"values":  sess.ctl.Form().Values(),
		"encoded": sess.ctl.Form().Encode(),
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	sid := c.Param("sid")
	sess, err := s.lookup(sid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	sess.ctl.Teardown()

	s.log.Info("session deleted", "sid", sid)
	c.Status(http.StatusNoContent)
}

func states(ctl *esthetic.Controller) []WidgetState {
	widgets := ctl.Widgets()
	out := make([]WidgetState, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, WidgetState{
			ID:      uint64(w.ID()),
			Name:    w.Name(),
			Visible: w.Visible(),
			Text:    w.Text(),
			Value:   w.Value(),
			List:    w.ListMarkup(),
		})
	}
	return out
}
