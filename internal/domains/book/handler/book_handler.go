package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcircle-backend/internal/domains/book/model"
	"bookcircle-backend/internal/domains/book/service"
	"bookcircle-backend/internal/shared/middleware"
	"bookcircle-backend/internal/shared/response"
)

// =====================================================
// BOOK HANDLER
// =====================================================

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func mapBookError(err error) (int, string) {
	if errors.Is(err, model.ErrBookNotFound) {
		return http.StatusNotFound, model.ErrCodeBookNotFound
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// CreateBook adds a book to the caller's shelf
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// CreateReview reviews a book
// POST /api/v1/books/:id/reviews
func (h *BookHandler) CreateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.bookService.CreateReview(c.Request.Context(), userID, bookID, req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// LikeBook likes a book
// POST /api/v1/books/:id/like
func (h *BookHandler) LikeBook(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.bookService.LikeBook(c.Request.Context(), userID, bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
