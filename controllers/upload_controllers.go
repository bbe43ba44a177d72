package controllers

import (
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	Uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) UploadController {
	return UploadController{Uploads: uploads}
}

// Upload lưu một file (field "file") vào thư mục ?folder=deposits|cleaning
func (u UploadController) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Thiếu file tải lên")
		return
	}
	defer file.Close()

	res, err := u.Uploads.Upload(c.Request.Context(), c.Query("folder"), header.Size, file)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, res)
}
