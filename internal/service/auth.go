package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/pkg/logger"
)

// LoginInput 一次登录请求的上下文信息
type LoginInput struct {
	Username  string
	Password  string
	IP        string
	Location  string
	Longitude float64
	Latitude  float64
	UserAgent string
}

// LoginResult 登录成功后的返回内容
type LoginResult struct {
	User   *model.User `json:"user"`
	Tokens *TokenPair  `json:"tokens"`
}

// AuthService 认证服务接口
type AuthService interface {
	// Login 校验凭据并签发令牌，无论成败都写登录记录
	Login(ctx context.Context, input *LoginInput) (*LoginResult, error)
	// Refresh 刷新令牌对
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	userService   UserService
	tokenService  TokenService
	recordService LoginRecordService
}

// NewAuthService 创建认证服务
func NewAuthService(userService UserService, tokenService TokenService, recordService LoginRecordService) AuthService {
	return &authService{userService: userService, tokenService: tokenService, recordService: recordService}
}

func (s *authService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	user, err := s.userService.Authenticate(ctx, input.Username, input.Password)

	record := &model.LoginRecord{
		Username:  input.Username,
		IP:        input.IP,
		Location:  input.Location,
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
		UserAgent: input.UserAgent,
		Success:   err == nil,
	}
	if user != nil {
		record.UserID = user.ID
	}
	// 记录失败不阻断登录流程
	if recordErr := s.recordService.Record(ctx, record); recordErr != nil {
		logger.Warn("写入登录记录失败", zap.Error(recordErr))
	}

	if err != nil {
		return nil, err
	}
	tokens, err := s.tokenService.GeneratePair(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	// 返回体不携带密码散列
	user.PasswordHash = ""
	return &LoginResult{User: user, Tokens: tokens}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return s.tokenService.Refresh(ctx, refreshToken)
}
