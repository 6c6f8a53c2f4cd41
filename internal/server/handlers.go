package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/placeholder"
	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/templates"
)

var mimeTypes = map[string]string{
	"css":   "text/css",
	"csv":   "text/csv",
	"html":  "text/html",
	"js":    "application/javascript",
	"json":  "application/json",
	"xhtml": "application/xhtml+xml",
	"jpeg":  "image/jpeg",
	"jpg":   "image/jpeg",
	"png":   "image/png",
	"svg":   "image/svg+xml",
	"webp":  "image/webp",
}

const fallbackMIMEType = "application/text"

// MIMEType maps a file extension, with or without the leading dot, to the
// content type served for it.
func MIMEType(ext string) string {
	if t, ok := mimeTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return t
	}
	return fallbackMIMEType
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context(), document.SourceFromFS(s.templates, templates.IndexName))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	page := doc.Substitute(
		placeholder.With(placeholder.TokenChoices, ""),
		placeholder.With(placeholder.TokenThemeStyle, s.themeStyle),
	)
	writeHTML(w, http.StatusOK, page.Bytes())
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if strings.Contains(name, "..") {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if name == "" || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	data, err := fs.ReadFile(s.static, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("read static asset", zap.String("path", name), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", MIMEType(path.Ext(name)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSubmitSetup(w http.ResponseWriter, r *http.Request) {
	data, err := payload(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	setup, err := session.ParseSetup(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.SaveSetup(r.Context(), session.DefaultID, setup); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("setup stored",
		zap.Int("alternatives", len(setup.Alternatives)),
		zap.Int("criteria", len(setup.Criteria)),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	data, err := payload(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	responses, err := session.ParseResponses(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	current, err := s.store.Load(r.Context(), session.DefaultID)
	if err != nil {
		s.failStore(w, r, err)
		return
	}
	if _, err := session.Evaluate(current.Setup, responses); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.SaveResponses(r.Context(), session.DefaultID, current.Setup, responses); err != nil {
		s.failStore(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	eval, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	table, err := s.renderer.Render(r.Context(), eval, render.RenderOptions{})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	winner, _ := eval.Winner()
	doc, err := s.composer.Compose(r.Context(), compose.Request{
		Choice1: winner.Name,
		Choice2: s.choice2,
		Choices: string(table),
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, http.StatusOK, doc.Bytes())
}

// handleAPIResults renders the evaluation in the format named by ?format=,
// else the one matching the Accept header, else JSON.
func (s *Server) handleAPIResults(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.apiRenderer(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	options, err := renderOptions(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	eval, ok := s.evaluate(w, r)
	if !ok {
		return
	}
	body, err := renderer.Render(r.Context(), eval, options)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) apiRenderer(r *http.Request) (render.Renderer, error) {
	if format := r.URL.Query().Get("format"); format != "" {
		return s.registry.Get(format)
	}
	if renderer, ok := s.registry.Negotiate(r.Header.Get("Accept")); ok {
		return renderer, nil
	}
	return s.registry.Get(apiFormat)
}

func renderOptions(r *http.Request) (render.RenderOptions, error) {
	raw := r.URL.Query().Get("precision")
	if raw == "" {
		return render.RenderOptions{}, nil
	}
	precision, err := strconv.Atoi(raw)
	if err != nil || precision < 0 || precision > 12 {
		return render.RenderOptions{}, fmt.Errorf("precision must be an integer between 0 and 12, got %q", raw)
	}
	return render.RenderOptions{Precision: precision}, nil
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := compose.Request{Choice1: s.choice1, Choice2: s.choice2}
	if query.Has("choice1") {
		req.Choice1 = query.Get("choice1")
	}
	if query.Has("choice2") {
		req.Choice2 = query.Get("choice2")
	}

	doc, err := s.composer.Compose(r.Context(), req)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, http.StatusOK, doc.Bytes())
}

// evaluate writes the error response itself and reports false when the
// session cannot be ranked yet.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) (session.Evaluation, bool) {
	current, err := s.store.Load(r.Context(), session.DefaultID)
	if err != nil {
		s.failStore(w, r, err)
		return session.Evaluation{}, false
	}
	if !current.Complete() {
		s.fail(w, r, http.StatusConflict, errors.New("no responses submitted"))
		return session.Evaluation{}, false
	}
	eval, err := session.Evaluate(current.Setup, *current.Responses)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrInvalidResponses) || errors.Is(err, session.ErrInvalidSetup) {
			status = http.StatusConflict
		}
		s.fail(w, r, status, err)
		return session.Evaluation{}, false
	}
	return eval, true
}

func (s *Server) failStore(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		s.fail(w, r, http.StatusConflict, errors.New("no setup submitted"))
	case errors.Is(err, session.ErrSetupChanged):
		s.fail(w, r, http.StatusConflict, errors.New("setup changed while the responses were submitted"))
	case errors.Is(err, context.Canceled):
		s.fail(w, r, http.StatusServiceUnavailable, err)
	default:
		s.fail(w, r, http.StatusInternalServerError, err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// payload reads the data query parameter, falling back to the body of a POST.
func payload(r *http.Request) ([]byte, error) {
	if data := r.URL.Query().Get("data"); data != "" {
		return []byte(data), nil
	}
	if r.Method == http.MethodPost && r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(string(data))) > 0 {
			return data, nil
		}
	}
	return nil, errors.New("missing data parameter")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
