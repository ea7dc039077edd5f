// Package service 业务逻辑层
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yunwei-iot/ams-backend/internal/config"
)

// 令牌相关错误
var (
	ErrInvalidToken     = errors.New("无效的令牌")
	ErrTokenExpired     = errors.New("令牌已过期")
	ErrInvalidSignature = errors.New("签名验证失败")
	ErrInvalidIssuer    = errors.New("无效的签发者")
	ErrNotRefreshToken  = errors.New("不是刷新令牌")
)

// 令牌类型
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims JWT 声明
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"uid,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Type     string `json:"type,omitempty"` // access, refresh
}

// TokenPair 一次签发的访问令牌和刷新令牌
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // 访问令牌有效期（秒）
}

// TokenService 令牌服务接口
type TokenService interface {
	// GeneratePair 为用户签发访问令牌和刷新令牌
	GeneratePair(ctx context.Context, userID uint, username, role string) (*TokenPair, error)
	// ValidateToken 验证令牌并返回声明
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	// Refresh 用刷新令牌换取新的令牌对
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type tokenService struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg *config.JWTConfig) TokenService {
	return &tokenService{
		secret:        []byte(cfg.Secret),
		issuer:        cfg.Issuer,
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
	}
}

func (s *tokenService) GeneratePair(ctx context.Context, userID uint, username, role string) (*TokenPair, error) {
	access, err := s.sign(userID, username, role, TokenTypeAccess, s.accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, username, role, TokenTypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpiry.Seconds()),
	}, nil
}

func (s *tokenService) sign(userID uint, username, role, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidIssuer
	}
	return claims, nil
}

func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh {
		return nil, ErrNotRefreshToken
	}
	return s.GeneratePair(ctx, claims.UserID, claims.Username, claims.Role)
}
