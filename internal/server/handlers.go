package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"math/rand/v2"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/typescatter/pkg/buildinfo"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
	"github.com/matzehuels/typescatter/pkg/scatter/sink"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 1 << 20

// maxSeed keeps seeds exactly representable as JavaScript numbers.
const maxSeed = 1<<53 - 1

var indexTemplate = template.Must(template.ParseFS(static, "static/index.html"))

type renderRequest struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
	Seed  uint64  `json:"seed"`

	// Templates pins whether shapes are drawn. A print request echoes the
	// value of its render response so a library that finished loading in
	// between does not change the layout.
	Templates *bool `json:"templates,omitempty"`
}

// layoutResult is one computed composition and how it was drawn.
type layoutResult struct {
	comp      *scatter.Composition
	seed      uint64
	templates bool
}

// fixedLibrary pins one library snapshot for a single layout.
type fixedLibrary struct{ lib *shapes.Library }

func (f fixedLibrary) Library() *shapes.Library { return f.lib }

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		DebounceMS     int64
		BlockedMessage string
	}{s.debounce.Milliseconds(), printer.BlockedMessage}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	templates := 0
	if s.shapes != nil {
		templates = s.shapes.Library().Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   buildinfo.Version,
		"templates": templates,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.layout(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := sink.RenderJSON(res.comp,
		sink.WithJSONSeed(res.seed),
		sink.WithJSONTemplates(res.templates),
		sink.WithJSONMarkup(),
	)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode composition"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := renderRequest{Text: q.Get("text")}
	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidWidth, "width %q is not a number", v))
			return
		}
		req.Width = width
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed %q is not an unsigned integer", v))
			return
		}
		req.Seed = seed
	}

	res, err := s.layout(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(sink.RenderSVG(res.comp, sink.WithBackground("#fff")))
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.layout(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc := printer.Document(sink.RenderHTML(res.comp), printer.WithAutoPrint(s.printDelay))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(doc)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (renderRequest, error) {
	var req renderRequest
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return req, errors.New(errors.ErrCodeUnsupported, "content type %q: want application/json", ct)
		}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	return req, nil
}

// layout validates req and computes its composition. A zero seed draws a
// fresh one; the seed used is returned.
func (s *Server) layout(req renderRequest) (layoutResult, error) {
	if err := errors.ValidateText(req.Text); err != nil {
		return layoutResult{}, err
	}
	width := req.Width
	if width == 0 {
		width = s.defaultWidth
	}
	if err := errors.ValidateWidth(width); err != nil {
		return layoutResult{}, err
	}
	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64N(maxSeed) + 1
	}

	var lib *shapes.Library
	if s.shapes != nil && (req.Templates == nil || *req.Templates) {
		lib = s.shapes.Library()
	}

	opts := append([]scatter.Option{}, s.renderOpts...)
	opts = append(opts,
		scatter.WithShapes(fixedLibrary{lib}),
		scatter.WithSeed(seed),
		scatter.WithLogger(s.logger),
	)
	return layoutResult{
		comp:      scatter.New(opts...).Layout(req.Text, width),
		seed:      seed,
		templates: lib.Len() > 0,
	}, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidWidth:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
