package dto

// UploadResponse - результат загрузки файла
type UploadResponse struct {
	Message  string `json:"message"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// CleanupResponse - итог очистки неиспользуемых файлов
type CleanupResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TotalBlobs     int    `json:"totalBlobs"`
	UsedBlobs      int    `json:"usedBlobs"`
	UnusedBlobs    int    `json:"unusedBlobs"`
	DeletedSuccess int    `json:"deletedSuccess"`
	DeletedFailed  int    `json:"deletedFailed"`
}
