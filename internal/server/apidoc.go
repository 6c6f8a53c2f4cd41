package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"go.uber.org/zap"
)

//go:embed openapi.yaml
var apiDoc []byte

// route is one documented operation.
type route struct {
	ID     string
	Method string
	Path   string
}

// apiSpec is the validated API description and the router used to check
// incoming requests against it.
type apiSpec struct {
	doc    *openapi3.T
	router routers.Router
	yaml   []byte
	json   []byte
}

func loadAPISpec(ctx context.Context, data []byte) (*apiSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apidoc: document does not contain any paths")
	}
	router, err := legacy.NewRouter(doc, openapi3.DisableExamplesValidation())
	if err != nil {
		return nil, fmt.Errorf("apidoc: %w", err)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode json: %w", err)
	}
	return &apiSpec{doc: doc, router: router, yaml: data, json: encoded}, nil
}

// routes lists the documented operations sorted by path then method.
func (a *apiSpec) routes() []route {
	var out []route
	for path, item := range a.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, route{ID: id, Method: method, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// validateRequests rejects requests to documented operations whose
// parameters do not match the API description. Undocumented routes and
// methods pass through to the mux.
func (s *Server) validateRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match, pathParams, err := s.api.router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      match,
			Options: &openapi3filter.Options{
				ExcludeRequestBody:  true,
				SkipSettingDefaults: true,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Debug("request does not match api document",
				zap.String("operation", match.Operation.OperationID),
				zap.Error(err),
			)
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAPIDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.api.yaml)
}

func (s *Server) handleAPIDocJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.api.json)
}
