package services

import (
	"context"
	"strings"
	"time"

	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store   repositories.Store
	revoker TokenRevoker
	logger  logger.Logger
	secret  []byte
	expiry  time.Duration
	now     func() time.Time
}

func NewAuthService(opts Options) *AuthService {
	opts.withDefaults()
	return &AuthService{
		store:   opts.Store,
		revoker: opts.Revoker,
		logger:  opts.Logger,
		secret:  opts.JWTSecret,
		expiry:  opts.TokenExpiry,
		now:     opts.Now,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Unexpected(err)
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Login xác thực email/mật khẩu và cấp access token
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.LoginResponse, error) {
	user, err := s.store.Users().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.Password, in.Password) {
		return nil, errors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.ErrUserInactive
	}

	token, claims, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user %d (%s) đăng nhập", user.ID, user.Role)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Unix(claims.ExpiresAt, 0),
		User:        user,
	}, nil
}

// IssueToken cấp token cho user mà không kiểm tra mật khẩu
func (s *AuthService) IssueToken(user *models.User) (string, *Claims, error) {
	token, claims, err := GenerateToken(s.secret, UserInfo{UserId: user.ID, Role: user.Role}, s.expiry, s.now())
	if err != nil {
		return "", nil, errors.Unexpected(err)
	}
	return token, claims, nil
}

// Authenticate xác minh token và trả về actor; role lấy từ DB để thay đổi quyền có hiệu lực ngay
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (Actor, error) {
	claims, err := ParseToken(s.secret, tokenString, s.now())
	if err != nil {
		return Actor{}, err
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.Id)
	if err != nil {
		return Actor{}, errors.Unexpected(err)
	}
	if revoked {
		return Actor{}, errors.ErrInvalidToken
	}

	user, err := s.store.Users().FindByID(ctx, claims.UserInfo.UserId)
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return Actor{}, errors.ErrInvalidToken
		}
		return Actor{}, err
	}
	if !user.IsActive {
		return Actor{}, errors.ErrUserInactive
	}
	return Actor{ID: user.ID, Role: user.Role}, nil
}

// Logout thu hồi token đến khi hết hạn
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := ParseToken(s.secret, tokenString, s.now())
	if err != nil {
		return err
	}
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if err := s.revoker.Revoke(ctx, claims.Id, ttl); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	return s.store.Users().FindByID(ctx, actor.ID)
}
