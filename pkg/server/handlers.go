package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// tripleJSON is the wire form of a triple.
type tripleJSON struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"char"`
}

type triplesResponse struct {
	URL     string       `json:"url"`
	Count   int          `json:"count"`
	Triples []tripleJSON `json:"triples"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch opts.Format {
	case pipeline.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("X-Grid-Size", strconv.Itoa(result.Stats.Width)+"x"+strconv.Itoa(result.Stats.Height))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

func (s *Server) handleTriples(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	triples, err := s.runner.Extract(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := triplesResponse{URL: opts.URL, Count: len(triples), Triples: make([]tripleJSON, len(triples))}
	for i, t := range triples {
		resp.Triples[i] = tripleJSON{X: t.X, Y: t.Y, Char: string(t.Char)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// optionsFromQuery reads pipeline options from the query string.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		URL:     q.Get("url"),
		Fill:    q.Get("fill"),
		Columns: q.Get("columns"),
		Format:  q.Get("format"),
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		opts.Refresh = refresh
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
