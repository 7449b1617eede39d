package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"blogward/database"
	"blogward/errs"
	"blogward/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newBlogHandler(db database.Database) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

type addPostRequest struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	Content          string   `json:"content"`
	Status           string   `json:"status"`
	Tags             []string `json:"tags"`
}

// addPost creates a blog post with its tags
// @Summary Add blog post
// @Description Creates a blog owned by the caller; tags are upserted and linked in one transaction
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body addPostRequest true "Blog data"
// @Success 201 {object} map[string]any "Success message with blog id"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/add_post [post]
func (h blogHandler) addPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := ctxGetUserID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		var req addPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		switch {
		case req.Title == "":
			h.responder.WriteValidationError(w, "title", "title is required")
			return
		case req.Content == "":
			h.responder.WriteValidationError(w, "content", "content is required")
			return
		case req.ShortDescription == "":
			h.responder.WriteValidationError(w, "short_description", "short_description is required")
			return
		}

		status := req.Status
		if status == "" {
			status = models.StatusPublished
		}
		if !models.ValidStatus(status) {
			h.responder.WriteValidationError(w, "status",
				fmt.Sprintf("use %q or %q", models.StatusDraft, models.StatusPublished))
			return
		}

		blog := models.Blog{
			Title:            req.Title,
			AuthorID:         callerID,
			ShortDescription: req.ShortDescription,
			Content:          req.Content,
			Status:           status,
		}
		if err := h.db.BlogRepo().Insert(&blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.db.AttachTags(blog.ID, req.Tags); err != nil {
			h.logger.Error().Err(err).Uint("blogId", blog.ID).Msg("Failed to attach tags")
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("blog %d created successfully", blog.ID),
			"blog_id": blog.ID,
		})
	}
}

// getBlog returns full info about one blog
// @Summary Get blog
// @Description Returns a blog with its author and tags; drafts are visible only to their author
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} models.Blog "Blog with author and tags"
// @Failure 404 {object} ErrorResponse "Not Found - Missing or inaccessible blog"
// @Router /api/get_blog/{blogID} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseID(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		var callerID *uint
		if id, ok := ctxGetUserID(r.Context()); ok {
			callerID = &id
		}

		blog, err := h.db.BlogRepo().GetFullInfo(blogID, callerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// deleteBlog deletes a blog owned by the caller
// @Summary Delete blog
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Missing or inaccessible blog"
// @Router /api/delete_blog/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := ctxGetUserID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		blogID, err := parseID(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		if err := h.db.BlogRepo().Delete(blogID, callerID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": fmt.Sprintf("blog %d deleted successfully", blogID),
		})
	}
}

// changeBlogStatus flips a blog between draft and published
// @Summary Change blog status
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Param new_status query string true "New status (draft or published)"
// @Success 200 {object} database.StatusChange "Status change result"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid status value"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the author"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/change_blog_status/{blogID} [patch]
func (h blogHandler) changeBlogStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := ctxGetUserID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		blogID, err := parseID(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		newStatus := r.URL.Query().Get("new_status")
		result, err := h.db.BlogRepo().ChangeStatus(blogID, newStatus, callerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// listBlogs returns a page of published blogs
// @Summary List published blogs
// @Description Filters to published blogs, optionally by author and tag substring
// @Tags Blogs
// @Produce json
// @Param author_id query int false "Exact author filter"
// @Param tag query string false "Case-insensitive tag substring"
// @Param page query int false "Page, 1-based" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} database.BlogPage "One page of blogs"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid paging parameters"
// @Router /api/blogs [get]
func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var authorID *uint
		if raw := query.Get("author_id"); raw != "" {
			id, err := parseID(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid author_id"))
				return
			}
			authorID = &id
		}

		page := 1
		if raw := query.Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid page"))
				return
			}
			page = parsed
		}

		pageSize := 10
		if raw := query.Get("page_size"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid page_size"))
				return
			}
			pageSize = parsed
		}

		result, err := h.db.BlogRepo().ListPublished(authorID, query.Get("tag"), page, pageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
