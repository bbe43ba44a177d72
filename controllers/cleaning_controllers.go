package controllers

import (
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type CleaningController struct {
	Cleaning *services.CleaningService
}

func NewCleaningController(cleaning *services.CleaningService) CleaningController {
	return CleaningController{Cleaning: cleaning}
}

func (h CleaningController) GetTasks(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var q dto.CleaningListQuery
	if !bindQuery(c, &q) {
		return
	}
	tasks, total, err := h.Cleaning.List(c.Request.Context(), current, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, tasks, q.PageQuery, total)
}

func (h CleaningController) GetTaskByID(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	respondTask(c)(h.Cleaning.Get(c.Request.Context(), current, id))
}

func (h CleaningController) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.AssignCleaningRequest
	if !bindJSON(c, &in) {
		return
	}
	respondTask(c)(h.Cleaning.Assign(c.Request.Context(), id, in.UserID))
}

func (h CleaningController) Start(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	respondTask(c)(h.Cleaning.Start(c.Request.Context(), current, id))
}

func (h CleaningController) Complete(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.CompleteCleaningRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	respondTask(c)(h.Cleaning.Complete(c.Request.Context(), current, id, in))
}

// AddPhoto nhận ảnh multipart (field "file") và gắn vào task
func (h CleaningController) AddPhoto(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Thiếu file ảnh")
		return
	}
	defer file.Close()

	photo, err := h.Cleaning.AddPhoto(c.Request.Context(), current, id, header.Size, file)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, photo)
}

func (h CleaningController) Fail(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.FailCleaningRequest
	if !bindJSON(c, &in) {
		return
	}
	respondTask(c)(h.Cleaning.Fail(c.Request.Context(), current, id, in.Reason))
}

func respondTask(c *gin.Context) func(*models.CleaningTask, error) {
	return func(task *models.CleaningTask, err error) {
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, task)
	}
}
