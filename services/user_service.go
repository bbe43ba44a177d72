package services

import (
	"context"
	"strings"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"
	"homestay/validator"
)

type UserService struct {
	store  repositories.Store
	logger logger.Logger
}

func NewUserService(opts Options) *UserService {
	opts.withDefaults()
	return &UserService{store: opts.Store, logger: opts.Logger}
}

func (s *UserService) List(ctx context.Context, q dto.UserListQuery) ([]models.User, int64, error) {
	p := q.Normalize()
	return s.store.Users().List(ctx, repositories.UserFilter{
		Page:   repositories.Page{Page: p.Page, Limit: p.Limit},
		Role:   q.Role,
		Active: q.Active,
		Query:  strings.TrimSpace(q.Query),
	})
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in dto.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	if err := validator.ValidateRole(in.Role); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Password:    hashed,
		PhoneNumber: in.PhoneNumber,
		Role:        in.Role,
		IsActive:    true,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("tạo user %d (%s)", user.ID, user.Role)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id uint, in dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.PhoneNumber != nil {
		if err := validator.ValidatePhone(*in.PhoneNumber); err != nil {
			return nil, err
		}
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil {
		if err := validator.ValidateRole(*in.Role); err != nil {
			return nil, err
		}
		if actor.ID == user.ID && *in.Role != constants.RoleAdmin {
			return nil, errors.Validation(errors.ErrCodeInvalidRole, "Không thể tự hạ quyền của chính mình")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if actor.ID == user.ID && !*in.IsActive {
			return nil, errors.Validation(errors.ErrCodeInvalidStatus, "Không thể tự vô hiệu hóa tài khoản của mình")
		}
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if err := validator.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if err := s.store.Users().Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate vô hiệu hóa tài khoản, không xóa dữ liệu
func (s *UserService) Deactivate(ctx context.Context, actor Actor, id uint) (*models.User, error) {
	inactive := false
	return s.Update(ctx, actor, id, dto.UpdateUserRequest{IsActive: &inactive})
}

// EnsureAdmin tạo tài khoản ADMIN đầu tiên khi hệ thống chưa có user nào
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	total, err := s.store.Users().Count(ctx)
	if err != nil {
		return false, err
	}
	if total > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, dto.CreateUserRequest{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     constants.RoleAdmin,
	}); err != nil {
		return false, err
	}
	s.logger.Info("đã tạo tài khoản admin mặc định %s", email)
	return true, nil
}
