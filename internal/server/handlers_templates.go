package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-studio/internal/composer"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
)

// maxBodyBytes bounds request bodies; resumes with rich text stay well below.
const maxBodyBytes = 1 << 20

// TemplateInfo describes one template variant.
type TemplateInfo struct {
	Variant  string      `json:"variant"`
	Title    string      `json:"title"`
	Grouped  bool        `json:"grouped"`
	Sections []string    `json:"sections"`
	Groups   []GroupInfo `json:"groups,omitempty"`
	MinScale int         `json:"minScale"`
	MaxScale int         `json:"maxScale"`
}

// GroupInfo is one independently ordered column.
type GroupInfo struct {
	Name     string   `json:"name"`
	Sections []string `json:"sections"`
}

// ReorderRequest is the body of a drop event.
type ReorderRequest struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
}

// ReorderResponse reports whether the drop changed the order.
type ReorderResponse struct {
	Moved  bool                 `json:"moved"`
	Config types.TemplateConfig `json:"config"`
}

// handleListTemplates lists every variant with its sections and groups.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	var out []TemplateInfo
	for _, v := range registry.Variants() {
		def, err := registry.Lookup(v)
		if err != nil {
			s.failure(w, err)
			return
		}
		info := TemplateInfo{
			Variant:  string(v),
			Title:    def.Title,
			Grouped:  def.Grouped(),
			Sections: def.Order,
			MinScale: def.MinScale,
			MaxScale: def.MaxScale,
		}
		for _, g := range def.Groups {
			info.Groups = append(info.Groups, GroupInfo{Name: g.Name, Sections: g.Sections})
		}
		out = append(out, info)
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// composerFor resolves the variant path value and the caller's store into a
// composer. It writes the error response itself and returns nil on failure.
func (s *Server) composerFor(w http.ResponseWriter, r *http.Request) *composer.Composer {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}
	v, err := registry.ParseVariant(r.PathValue("variant"))
	if err != nil {
		s.failure(w, err)
		return nil
	}
	c, err := composer.New(v, s.stores.For(userID))
	if err != nil {
		s.failure(w, err)
		return nil
	}
	if _, err := c.Mount(r.Context()); err != nil {
		s.failure(w, err)
		return nil
	}
	return c
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &ErrValidation{Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &ErrValidation{Message: "request body too large"}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ErrValidation{Message: "request body is empty"}
	}
	return body, nil
}

// handleGetConfig returns the caller's configuration of a variant.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	cfg, err := c.Config(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handlePatchConfig merges the fields present in the body into the
// configuration. Nested heading colors and skill colors merge per key.
func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := schemas.ValidateTemplateConfig(body); err != nil {
		s.failure(w, err)
		return
	}
	var fields types.TemplateConfig
	if err := json.Unmarshal(body, &fields); err != nil {
		s.failure(w, &ErrValidation{Message: err.Error()})
		return
	}

	cfg, err := c.Apply(r.Context(), func(prev types.TemplateConfig) types.TemplateConfig {
		_ = json.Unmarshal(body, &prev)
		return prev
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handleReorder applies a drop of activeId over overId. Rejected moves
// answer 200 with moved=false and the unchanged configuration.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	var req ReorderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.failure(w, &ErrValidation{Message: fmt.Sprintf("invalid reorder request: %v", err)})
		return
	}
	if req.ActiveID == "" {
		s.failure(w, &ErrValidation{Field: "activeId", Message: "is required"})
		return
	}

	moved, err := c.Reorder().Apply(r.Context(), req.ActiveID, req.OverID)
	if err != nil {
		s.failure(w, err)
		return
	}
	cfg, err := c.Config(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ReorderResponse{Moved: moved, Config: cfg})
}

// handleToggleSection flips a section's visibility.
func (s *Server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	cfg, err := c.ToggleSection(r.Context(), r.PathValue("section"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handleReset restores the template defaults.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	cfg, err := c.Reset(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

func decodeResume(r *http.Request) (*types.ResumeData, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateResumeData(body); err != nil {
		return nil, err
	}
	var resume types.ResumeData
	if err := json.Unmarshal(body, &resume); err != nil {
		return nil, &ErrValidation{Message: err.Error()}
	}
	return resume.Normalize(), nil
}

// handleRender renders the resume in the body as an HTML page.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	resume, err := decodeResume(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	html, err := c.RenderHTML(r.Context(), resume)
	if err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// handleExport prints the resume in the body to PDF.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "pdf export is not configured")
		return
	}
	c := s.composerFor(w, r)
	if c == nil {
		return
	}
	resume, err := decodeResume(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	pdf, err := c.Export(r.Context(), resume, s.printer)
	if err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="resume-%s.pdf"`, c.Variant()))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if doc, err := export.Inspect(pdf); err == nil {
		w.Header().Set("X-Page-Count", strconv.Itoa(doc.Pages))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
