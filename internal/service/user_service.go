package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/pkg/security"
	"TaylorDAM/internal/repository"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserService interface {
	Login(ctx context.Context, dto *dto.LoginDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetCurrentUser(ctx context.Context, id string) (*dto.UserDTO, error)
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, id string, dto *dto.ChangePasswordDTO) error
	CreateAdmin(ctx context.Context, email, name, password string) (*dto.UserDTO, error)
	ResetPassword(ctx context.Context, email, password string) error
}

type UserServiceImpl struct {
	userRepo       repository.UserRepo
	invitationRepo repository.InvitationRepo
	kv             KVStore
	now            func() time.Time
}

func NewUserService(userRepo repository.UserRepo, invitationRepo repository.InvitationRepo, kv KVStore) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		kv:             kv,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login 邮箱不存在与密码错误返回同一个错误
func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.LoginResultDTO, error) {
	email := normalizeEmail(loginDTO.Email)
	failKey := consts.LoginFailureKey + email

	failures, err := s.kv.Get(ctx, failKey)
	if err != nil {
		return nil, err
	}
	if n, _ := strconv.Atoi(failures); n >= consts.LoginMaxFailures {
		return nil, ErrTooManyLoginAttempts
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || security.CheckPasswordHash(loginDTO.Password, user.PasswordHash) != nil {
		_, _ = s.kv.Incr(ctx, failKey, consts.LoginFailureWindow*time.Minute)
		return nil, ErrInvalidCredentials
	}
	_ = s.kv.Del(ctx, failKey)

	token, expiresAt, err := security.GenerateToken(security.SessionUser{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userDTO,
	}, nil
}

// Logout 将签名加入黑名单，保留到 token 自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrUnauthorized
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}

	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.kv.SetEX(ctx, consts.TokenBlacklistKey+signature, "1", ttl)
}

func (s *UserServiceImpl) GetCurrentUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

// Register 校验邀请后在同一事务中创建用户并消费邀请
func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	invitation, err := s.checkInvitation(ctx, regDTO.Token)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(regDTO.Email)
	if !strings.EqualFold(email, strings.TrimSpace(invitation.Email)) {
		return nil, ErrInvitationEmail
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(regDTO.Name),
		PasswordHash: passwordHash,
		Role:         invitation.Role,
	}

	err = s.invitationRepo.AcceptInvitation(ctx, invitation.ID, user, s.now())
	switch {
	case errors.Is(err, repository.ErrInvitationConsumed):
		return nil, ErrInvitationUsed
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrUserExist
	case err != nil:
		return nil, err
	}
	return toUserDTO(user)
}

func (s *UserServiceImpl) checkInvitation(ctx context.Context, token string) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.GetInvitationByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if err = validateInvitation(invitation, s.now()); err != nil {
		return nil, err
	}
	return invitation, nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, id string, pwdDTO *dto.ChangePasswordDTO) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrUnauthorized
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if security.CheckPasswordHash(pwdDTO.CurrentPassword, user.PasswordHash) != nil {
		return ErrPasswordIncorrect
	}

	passwordHash, err := security.HashPassword(pwdDTO.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
	return err
}

// CreateAdmin 运维命令使用，直接创建管理员
func (s *UserServiceImpl) CreateAdmin(ctx context.Context, email, name, password string) (*dto.UserDTO, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < consts.MinPasswordLength {
		return nil, ErrParamInvalid
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return toUserDTO(user)
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, email, password string) error {
	if len(password) < consts.MinPasswordLength {
		return ErrParamInvalid
	}
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
	return err
}
