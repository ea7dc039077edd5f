package service

import (
	"context"
	"errors"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 文章相关错误
var (
	ErrArticleIDEmpty     = errors.New("文章 ID 不能为空")
	ErrArticleTitleEmpty  = errors.New("文章标题不能为空")
	ErrArticleContentMiss = errors.New("文章内容不能为空")
	ErrAuditStatusInvalid = errors.New("审核状态无效")
	ErrArticleNotApproved = errors.New("文章未通过审核")
)

// ArticleService 文章服务接口
type ArticleService interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	// GetPublic 公开读取，未审核通过视为不存在；每次读取累加浏览量
	GetPublic(ctx context.Context, id uint) (*model.Article, error)
	Update(ctx context.Context, article *model.Article) error
	// Audit 更新审核状态
	Audit(ctx context.Context, id uint, status int) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *repository.ArticleFilter, page *repository.Pagination) ([]*model.Article, int64, error)
	ListPublic(ctx context.Context, page *repository.Pagination) ([]*model.Article, int64, error)
}

type articleService struct {
	articleRepo repository.ArticleRepository
}

// NewArticleService 创建文章服务
func NewArticleService(articleRepo repository.ArticleRepository) ArticleService {
	return &articleService{articleRepo: articleRepo}
}

// Create 新建文章，初始为待审核
func (s *articleService) Create(ctx context.Context, article *model.Article) error {
	if article.Title == "" {
		return ErrArticleTitleEmpty
	}
	if article.Content == "" {
		return ErrArticleContentMiss
	}
	article.AuditStatus = model.AuditPending
	return s.articleRepo.Create(ctx, article)
}

func (s *articleService) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	if id == 0 {
		return nil, ErrArticleIDEmpty
	}
	return s.articleRepo.GetByID(ctx, id)
}

func (s *articleService) GetPublic(ctx context.Context, id uint) (*model.Article, error) {
	if id == 0 {
		return nil, ErrArticleIDEmpty
	}
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.IsApproved() {
		return nil, repository.ErrArticleNotFound
	}
	if err := s.articleRepo.IncrViewCount(ctx, id); err != nil {
		return nil, err
	}
	article.ViewCount++
	return article, nil
}

// Update 修改内容后回到待审核状态
func (s *articleService) Update(ctx context.Context, article *model.Article) error {
	if article.ID == 0 {
		return ErrArticleIDEmpty
	}
	if article.Title == "" {
		return ErrArticleTitleEmpty
	}
	if article.Content == "" {
		return ErrArticleContentMiss
	}
	article.AuditStatus = model.AuditPending
	return s.articleRepo.Update(ctx, article)
}

func (s *articleService) Audit(ctx context.Context, id uint, status int) error {
	if id == 0 {
		return ErrArticleIDEmpty
	}
	switch status {
	case model.AuditPending, model.AuditApproved, model.AuditRejected:
	default:
		return ErrAuditStatusInvalid
	}
	return s.articleRepo.UpdateAuditStatus(ctx, id, status)
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrArticleIDEmpty
	}
	return s.articleRepo.SoftDelete(ctx, id)
}

func (s *articleService) List(ctx context.Context, filter *repository.ArticleFilter, page *repository.Pagination) ([]*model.Article, int64, error) {
	return s.articleRepo.List(ctx, filter, page)
}

func (s *articleService) ListPublic(ctx context.Context, page *repository.Pagination) ([]*model.Article, int64, error) {
	return s.articleRepo.ListPublic(ctx, page)
}
