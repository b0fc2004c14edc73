package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	ResumeHandler   *ResumeHandler
	TemplateHandler *TemplateHandler
	AdminHandler    *AdminHandler
	HealthHandler   *HealthHandler
	FileHandler     *FileHandler
}
