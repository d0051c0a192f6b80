package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/service"
)

// LessonHandler handles lesson requests
type LessonHandler struct {
	lessonService service.LessonService
}

func NewLessonHandler(lessonService service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// ListByCourse handles GET /lessons/course/:courseId
func (h *LessonHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	lessons, err := h.lessonService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// Create handles POST /lessons/course/:courseId
func (h *LessonHandler) Create(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/lessons/course/%s", courseID))
	c.JSON(http.StatusCreated, lesson)
}

// Update handles PUT /lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, service.ErrLessonNotFound)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Delete handles DELETE /lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.lessonService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, service.ErrLessonNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Lesson deleted successfully"})
}

// Reorder handles POST /lessons/course/:courseId/reorder
func (h *LessonHandler) Reorder(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.lessonService.Reorder(c.Request.Context(), courseID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Lessons reordered successfully"})
}
