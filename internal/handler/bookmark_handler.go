package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mmark/internal/middleware"
	"github.com/xxxsen/mmark/internal/model"
	"github.com/xxxsen/mmark/internal/pkg/response"
	"github.com/xxxsen/mmark/internal/service"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

type createBookmarkRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	URL         string  `json:"url" binding:"required,url"`
}

type updateBookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url" binding:"omitempty,url"`
}

func (h *BookmarkHandler) List(c *gin.Context) {
	items, err := h.bookmarks.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

// Get answers 200 with a null body when the bookmark is not visible to the caller.
func (h *BookmarkHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.bookmarks.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	var req createBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.bookmarks.Create(c.Request.Context(), middleware.CurrentUserID(c), service.BookmarkCreateInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *BookmarkHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.bookmarks.Update(c.Request.Context(), middleware.CurrentUserID(c), id, model.BookmarkUpdate{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.bookmarks.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
