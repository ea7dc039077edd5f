package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 用户相关错误
var (
	ErrUserIDEmpty       = errors.New("用户 ID 不能为空")
	ErrUsernameEmpty     = errors.New("用户名不能为空")
	ErrUsernameInvalid   = errors.New("用户名只能包含字母、数字和下划线")
	ErrUsernameTooShort  = errors.New("用户名长度不能少于 3 个字符")
	ErrNicknameEmpty     = errors.New("昵称不能为空")
	ErrEmailEmpty        = errors.New("邮箱不能为空")
	ErrEmailInvalid      = errors.New("邮箱格式无效")
	ErrPasswordEmpty     = errors.New("密码不能为空")
	ErrPasswordTooShort  = errors.New("密码长度不能少于 8 个字符")
	ErrRoleInvalid       = errors.New("角色无效")
	ErrUserStatusInvalid = errors.New("状态无效")
	ErrUserDisabled      = errors.New("用户已被禁用")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrDeleteSelf        = errors.New("不能删除当前登录用户")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// UserService 用户服务接口
type UserService interface {
	Create(ctx context.Context, user *model.User, password string) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, operatorID, id uint) error
	List(ctx context.Context, filter *repository.UserFilter, page *repository.Pagination) ([]*model.User, int64, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	SetStatus(ctx context.Context, id uint, status string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, user *model.User, password string) error {
	if err := s.validateUser(user); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return errors.New("密码加密失败")
	}
	if user.Status == "" {
		user.Status = model.UserEnabled
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.userRepo.Create(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrUserIDEmpty
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, user *model.User) error {
	if user.ID == 0 {
		return ErrUserIDEmpty
	}
	if err := s.validateUser(user); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// Delete 软删除用户，禁止删除自己
func (s *userService) Delete(ctx context.Context, operatorID, id uint) error {
	if id == 0 {
		return ErrUserIDEmpty
	}
	if operatorID == id {
		return ErrDeleteSelf
	}
	return s.userRepo.SoftDelete(ctx, id)
}

func (s *userService) List(ctx context.Context, filter *repository.UserFilter, page *repository.Pagination) ([]*model.User, int64, error) {
	return s.userRepo.List(ctx, filter, page)
}

// Authenticate 校验用户名密码
// 禁用的用户不允许登录，同样的错误返回给调用方记录登录日志。
func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrUsernameEmpty
	}
	if password == "" {
		return nil, ErrPasswordEmpty
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(password) {
		return nil, ErrPasswordIncorrect
	}
	if !user.IsEnabled() {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if userID == 0 {
		return ErrUserIDEmpty
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(oldPassword) {
		return ErrPasswordIncorrect
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("密码加密失败")
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) SetStatus(ctx context.Context, id uint, status string) error {
	if id == 0 {
		return ErrUserIDEmpty
	}
	if status != model.UserEnabled && status != model.UserDisabled {
		return ErrUserStatusInvalid
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Status = status
	return s.userRepo.Update(ctx, user)
}

func (s *userService) validateUser(user *model.User) error {
	if user.Username == "" {
		return ErrUsernameEmpty
	}
	if len(user.Username) < 3 {
		return ErrUsernameTooShort
	}
	if !usernameRegex.MatchString(user.Username) {
		return ErrUsernameInvalid
	}
	if user.Nickname == "" {
		return ErrNicknameEmpty
	}
	if user.Email == "" {
		return ErrEmailEmpty
	}
	if !emailRegex.MatchString(user.Email) {
		return ErrEmailInvalid
	}
	if user.Role != "" && user.Role != model.RoleAdmin && user.Role != model.RoleUser {
		return ErrRoleInvalid
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}
