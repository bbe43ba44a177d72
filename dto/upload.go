package dto

type UploadResponse struct {
	URL      string `json:"url"`
	Folder   string `json:"folder"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
