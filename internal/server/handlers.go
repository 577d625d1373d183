package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

// maxRequestBytes bounds request bodies; uploads carry inline images.
const maxRequestBytes = 16 << 20

type generateRepoRequest struct {
	Repo  string `json:"repo"`
	Style string `json:"style"`
}

type generateArticleRequest struct {
	URL   string `json:"url"`
	Style string `json:"style"`
}

type styleTransferRequest struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Image    []byte `json:"image"` // base64 in JSON
	Style    string `json:"style"`
}

type uiCodeRequest struct {
	Description string `json:"description"`
	MIMEType    string `json:"mime_type"`
	Image       []byte `json:"image"`
}

type createTaskRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type updateTaskRequest struct {
	Status string `json:"status"`
}

// generationSummary is the listing shape: everything but the payload.
type generationSummary struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	SourceRef    string `json:"source_ref"`
	StyleID      string `json:"style_id,omitempty"`
	MIMEType     string `json:"mime_type,omitempty"`
	Summary      string `json:"summary,omitempty"`
	PayloadBytes int    `json:"payload_bytes"`
	CreatedAt    string `json:"created_at"`
}

type generationDetail struct {
	generationSummary
	Payload []byte `json:"payload"`
}

func toSummary(gen domainstudio.Generation) generationSummary {
	return generationSummary{
		ID:           gen.ID,
		Kind:         string(gen.Kind),
		SourceRef:    gen.SourceRef,
		StyleID:      gen.StyleID,
		MIMEType:     gen.MIMEType,
		Summary:      gen.Summary,
		PayloadBytes: len(gen.Payload),
		CreatedAt:    gen.CreatedAt,
	}
}

func toDetail(gen domainstudio.Generation) generationDetail {
	return generationDetail{generationSummary: toSummary(gen), Payload: gen.Payload}
}

type taskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toTaskResponse(task domainstudio.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Notes:     task.Notes,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func (s *Server) handleGenerateRepo(w http.ResponseWriter, r *http.Request) {
	var req generateRepoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gen, err := s.studio.GenerateFromRepo(r.Context(), studio.RepoInput{RepoRef: req.Repo, StyleID: req.Style})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetail(gen))
}

func (s *Server) handleGenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req generateArticleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gen, err := s.studio.GenerateFromArticle(r.Context(), studio.ArticleInput{URL: req.URL, StyleID: req.Style})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetail(gen))
}

func (s *Server) handleStyleTransfer(w http.ResponseWriter, r *http.Request) {
	var req styleTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gen, err := s.studio.StyleTransfer(r.Context(), studio.StyleTransferInput{
		Name:     req.Name,
		MIMEType: req.MIMEType,
		Image:    req.Image,
		StyleID:  req.Style,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetail(gen))
}

func (s *Server) handleGenerateUICode(w http.ResponseWriter, r *http.Request) {
	var req uiCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gen, err := s.studio.GenerateUICode(r.Context(), studio.UICodeInput{
		Description: req.Description,
		MIMEType:    req.MIMEType,
		Image:       req.Image,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetail(gen))
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	filter := studio.HistoryFilter{Kind: r.URL.Query().Get("kind")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	gens, err := s.studio.ListGenerations(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	items := make([]generationSummary, 0, len(gens))
	for _, gen := range gens {
		items = append(items, toSummary(gen))
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": items})
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	gen, err := s.studio.GetGeneration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetail(gen))
}

// handleGetArtifact serves the stored payload raw, with its original
// content type, so a browser can render the image directly.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	gen, err := s.studio.GetGeneration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	contentType := gen.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gen.Payload)
}

func (s *Server) handleDeleteGeneration(w http.ResponseWriter, r *http.Request) {
	if err := s.studio.DeleteGeneration(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearGenerations(w http.ResponseWriter, r *http.Request) {
	if err := s.studio.ClearGenerations(r.Context()); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := s.studio.CreateTask(r.Context(), studio.CreateTaskInput{Title: req.Title, Notes: req.Notes})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := s.studio.UpdateTaskStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.studio.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := studio.TaskListInput{
		Status:      q.Get("status"),
		Query:       q.Get("q"),
		IncludeDone: q.Get("all") == "true" || q.Get("all") == "1",
	}

	tasks, err := s.studio.ListTasks(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": items})
}

func (s *Server) handleListStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"styles": s.styles.List()})
}
