package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/flowtower/pkg/buildinfo"
	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/graph"
	flowio "github.com/matzehuels/flowtower/pkg/io"
	"github.com/matzehuels/flowtower/pkg/pipeline"
)

// contentTypes maps artifact formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	doc, err := s.runner.Parse(ctx, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setCacheHeader(w, res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// requestOptions reads the document body and applies query overrides on
// top of the server defaults.
func (s *Server) requestOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Logger = s.logger

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	opts.Data = body
	opts.Format = flowio.FormatJSON
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/toml" {
		opts.Format = flowio.FormatTOML
	}

	q := r.URL.Query()
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("style"); v != "" {
		if err := pipeline.ValidateStyle(v); err != nil {
			return opts, err
		}
		opts.Style = v
	}
	for name, dst := range map[string]*bool{
		"nodelink":   &opts.Nodelink,
		"clusters":   &opts.Clusters,
		"root_edges": &opts.RootEdges,
		"refresh":    &opts.Refresh,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter seed: %q is not an unsigned integer", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter scale: %q is not a positive number", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.IsInputError(err) {
		status = http.StatusBadRequest
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
		return
	}
	w.Header().Set("X-Cache", "miss")
}
