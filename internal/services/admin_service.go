package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultUsersPage  = 1
	defaultUsersLimit = 10

	defaultStatsMonths = 6
	maxStatsMonths     = 24
)

// ============================================
// ADMIN SERVICE
// ============================================

type AdminService interface {
	ListUsers(ctx context.Context, db *gorm.DB, query dto.UserListQuery) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, db *gorm.DB, actorID, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	// DeleteUser удаляет пользователя с его резюме и освобождает связанные файлы
	DeleteUser(ctx context.Context, db *gorm.DB, actorID, userID string) error
	Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardStats, error)
	// MonthlyStats - новые пользователи и резюме за последние months месяцев, включая текущий
	MonthlyStats(ctx context.Context, db *gorm.DB, months int) (*dto.MonthlyStats, error)
	// EnsureAdmin создает первого администратора, если email еще свободен
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type adminService struct {
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
	blobs      storage.BlobGateway
	config     *UploadConfig
	now        func() time.Time
}

func NewAdminService(
	userRepo repositories.UserRepository,
	resumeRepo repositories.ResumeRepository,
	blobs storage.BlobGateway,
	config *UploadConfig,
) AdminService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &adminService{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		blobs:      blobs,
		config:     config,
		now:        time.Now,
	}
}

func (s *adminService) ListUsers(ctx context.Context, db *gorm.DB, query dto.UserListQuery) (*dto.UserListResponse, error) {
	if query.Page < 1 {
		query.Page = defaultUsersPage
	}
	if query.Limit < 1 {
		query.Limit = defaultUsersLimit
	}

	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := s.resumeRepo.CountByUsers(db, ids)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		resp := dto.NewUserResponse(&users[i])
		count := counts[users[i].ID]
		resp.ResumeCount = &count
		items = append(items, resp)
	}

	return &dto.UserListResponse{
		Users:      items,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

func (s *adminService) CreateUser(ctx context.Context, db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, mapUserError(err)
	}

	logger.CtxInfo(ctx, "user created by admin", "user_id", user.ID, "role", role)
	return dto.NewUserResponse(user), nil
}

func (s *adminService) UpdateUser(ctx context.Context, db *gorm.DB, actorID, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}

	fields := map[string]interface{}{}

	if req.Role != nil && *req.Role != user.Role {
		// Администратор не может снять роль с самого себя
		if actorID == userID && *req.Role != models.UserRoleAdmin {
			return nil, apperrors.ErrCannotModifySelf
		}
		fields["role"] = *req.Role
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(db, email)
			switch {
			case err == nil && existing.ID != userID:
				return nil, apperrors.ErrEmailAlreadyExists
			case err != nil && !apperrors.Is(err, repositories.ErrUserNotFound):
				return nil, apperrors.DatabaseError(err)
			}
			fields["email"] = email
		}
	}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}

	if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
		return nil, mapUserError(err)
	}

	updated, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return dto.NewUserResponse(updated), nil
}

func (s *adminService) DeleteUser(ctx context.Context, db *gorm.DB, actorID, userID string) error {
	if actorID == userID {
		return apperrors.ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapUserError(err)
	}

	resumes, err := s.resumeRepo.ListIDsByUser(db, userID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	// Дочерние записи удаляем явно: внешние ключи SQLite могут быть выключены
	for i := range resumes {
		if url := resumes[i].PhotoURL; url != nil && *url != "" {
			s.blobs.DeleteWithRetry(ctx, *url, s.config.RetryAttempts)
		}
		if err := s.resumeRepo.Delete(db, &resumes[i]); err != nil {
			return mapResumeError(err)
		}
	}

	if user.AvatarURL != nil && *user.AvatarURL != "" {
		s.blobs.DeleteWithRetry(ctx, *user.AvatarURL, s.config.AvatarRetryAttempts)
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		return mapUserError(err)
	}

	logger.CtxInfo(ctx, "user deleted by admin", "user_id", userID, "resumes", len(resumes))
	return nil
}

func (s *adminService) Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardStats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	stats := &dto.DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(db); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.UsersByRole, err = s.userRepo.CountByRole(db); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.TotalResumes, err = s.resumeRepo.CountAll(db); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.ResumesByTemplate, err = s.resumeRepo.CountByTemplate(db); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if stats.NewUsersMonth, err = s.userRepo.CountCreatedBetween(db, monthStart, nextMonthStart); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	prevUsers, err := s.userRepo.CountCreatedBetween(db, prevMonthStart, monthStart)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if stats.NewResumesMonth, err = s.resumeRepo.CountCreatedBetween(db, monthStart, nextMonthStart); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	prevResumes, err := s.resumeRepo.CountCreatedBetween(db, prevMonthStart, monthStart)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats.UserGrowthPct = growthPercent(stats.NewUsersMonth, prevUsers)
	stats.ResumeGrowthPct = growthPercent(stats.NewResumesMonth, prevResumes)
	return stats, nil
}

func (s *adminService) MonthlyStats(ctx context.Context, db *gorm.DB, months int) (*dto.MonthlyStats, error) {
	if months < 1 {
		months = defaultStatsMonths
	}
	if months > maxStatsMonths {
		months = maxStatsMonths
	}

	now := s.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &dto.MonthlyStats{MonthlyData: make([]dto.MonthlyPoint, 0, months)}
	for i := months - 1; i >= 0; i-- {
		from := current.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)

		users, err := s.userRepo.CountCreatedBetween(db, from, to)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		resumes, err := s.resumeRepo.CountCreatedBetween(db, from, to)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		stats.MonthlyData = append(stats.MonthlyData, dto.MonthlyPoint{
			Month:   from.Format("2006-01"),
			Users:   users,
			Resumes: resumes,
		})
	}

	byTemplate, err := s.resumeRepo.CountByTemplate(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	stats.TemplateUsage = make([]dto.TemplateUsage, 0, len(byTemplate))
	for name, count := range byTemplate {
		stats.TemplateUsage = append(stats.TemplateUsage, dto.TemplateUsage{Name: name, Value: count})
	}
	sort.Slice(stats.TemplateUsage, func(i, j int) bool {
		return stats.TemplateUsage[i].Name < stats.TemplateUsage[j].Name
	})
	return stats, nil
}

// growthPercent - рост к прошлому месяцу в процентах, округленный до десятых.
// При нулевом прошлом месяце рост 100% (или 0%, если и сейчас ноль).
func growthPercent(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	pct := float64(current-previous) / float64(previous) * 100
	return math.Round(pct*10) / 10
}

func (s *adminService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.FindByEmail(db, email)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.DatabaseError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	admin := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		FirstName:    "Admin",
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		return mapUserError(err)
	}

	logger.CtxInfo(ctx, "first admin created", "email", admin.Email)
	return nil
}
