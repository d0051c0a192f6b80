package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/service"
)

// CourseHandler handles course requests
type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Search handles GET /courses/search
// @Summary Search courses
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param q query string false "Title substring"
// @Param status query string false "Draft or Published"
// @Param page query int false "Page, starting at 1"
// @Param pageSize query int false "Page size, at most 100"
// @Success 200 {object} dto.CourseSearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses/search [get]
func (h *CourseHandler) Search(c *gin.Context) {
	var req dto.CourseSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	response, err := h.courseService.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSummary handles GET /courses/:id/summary
// @Summary Course detail
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CourseDetail
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/summary [get]
func (h *CourseHandler) GetSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.courseService.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, service.ErrCourseNotFound)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create handles POST /courses
// @Summary Create a course in Draft status
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.CourseSummary
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	summary, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/courses/%s/summary", summary.ID))
	c.JSON(http.StatusCreated, summary)
}

// Update handles PUT /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	summary, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, service.ErrCourseNotFound)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Delete handles DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, service.ErrCourseNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Course deleted successfully"})
}

// Publish handles PATCH /courses/:id/publish
func (h *CourseHandler) Publish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Publish(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Course published successfully"})
}

// Unpublish handles PATCH /courses/:id/unpublish
func (h *CourseHandler) Unpublish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Unpublish(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Course unpublished successfully"})
}
