package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

type mockArticleRepository struct {
	articles map[uint]*model.Article
	nextID   uint
}

func newMockArticleRepository() *mockArticleRepository {
	return &mockArticleRepository{articles: make(map[uint]*model.Article), nextID: 1}
}

func (m *mockArticleRepository) Create(ctx context.Context, article *model.Article) error {
	article.ID = m.nextID
	m.nextID++
	m.articles[article.ID] = article
	return nil
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	if a, ok := m.articles[id]; ok && a.IsDeleted == model.NotDeleted {
		return a, nil
	}
	return nil, repository.ErrArticleNotFound
}

func (m *mockArticleRepository) GetAnyByID(ctx context.Context, id uint) (*model.Article, error) {
	if a, ok := m.articles[id]; ok {
		return a, nil
	}
	return nil, repository.ErrArticleNotFound
}

func (m *mockArticleRepository) Update(ctx context.Context, article *model.Article) error {
	if existing, ok := m.articles[article.ID]; !ok || existing.IsDeleted == model.Deleted {
		return repository.ErrArticleNotFound
	}
	m.articles[article.ID] = article
	return nil
}

func (m *mockArticleRepository) UpdateAuditStatus(ctx context.Context, id uint, status int) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.AuditStatus = status
	return nil
}

func (m *mockArticleRepository) IncrViewCount(ctx context.Context, id uint) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.ViewCount++
	return nil
}

func (m *mockArticleRepository) SoftDelete(ctx context.Context, id uint) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.IsDeleted = model.Deleted
	return nil
}

func (m *mockArticleRepository) List(ctx context.Context, filter *repository.ArticleFilter, page *repository.Pagination) ([]*model.Article, int64, error) {
	var result []*model.Article
	for _, a := range m.articles {
		if a.IsDeleted == model.Deleted {
			continue
		}
		if filter != nil && filter.AuditStatus != nil && a.AuditStatus != *filter.AuditStatus {
			continue
		}
		result = append(result, a)
	}
	return result, int64(len(result)), nil
}

func (m *mockArticleRepository) ListPublic(ctx context.Context, page *repository.Pagination) ([]*model.Article, int64, error) {
	approved := model.AuditApproved
	return m.List(ctx, &repository.ArticleFilter{AuditStatus: &approved}, page)
}

func TestArticleServiceCreate(t *testing.T) {
	svc := NewArticleService(newMockArticleRepository())
	ctx := context.Background()

	article := &model.Article{Title: "操作手册", Content: "正文", AuthorID: 1, AuditStatus: model.AuditApproved}
	if err := svc.Create(ctx, article); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	// 无论传入什么审核状态，新文章都是待审核
	if article.AuditStatus != model.AuditPending {
		t.Errorf("新文章应为待审核, 实际 %d", article.AuditStatus)
	}

	if err := svc.Create(ctx, &model.Article{Content: "x"}); !errors.Is(err, ErrArticleTitleEmpty) {
		t.Errorf("期望 ErrArticleTitleEmpty, 实际 %v", err)
	}
	if err := svc.Create(ctx, &model.Article{Title: "x"}); !errors.Is(err, ErrArticleContentMiss) {
		t.Errorf("期望 ErrArticleContentMiss, 实际 %v", err)
	}
}

// 公开读取只对已审核文章开放，读取即累加浏览量
func TestArticleServiceGetPublic(t *testing.T) {
	svc := NewArticleService(newMockArticleRepository())
	ctx := context.Background()

	article := &model.Article{Title: "指南", Content: "正文", AuthorID: 1}
	if err := svc.Create(ctx, article); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 待审核不可公开读取
	if _, err := svc.GetPublic(ctx, article.ID); !errors.Is(err, repository.ErrArticleNotFound) {
		t.Errorf("期望 ErrArticleNotFound, 实际 %v", err)
	}

	if err := svc.Audit(ctx, article.ID, model.AuditApproved); err != nil {
		t.Fatalf("审核失败: %v", err)
	}
	got, err := svc.GetPublic(ctx, article.ID)
	if err != nil {
		t.Fatalf("公开读取失败: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("浏览量期望 1, 实际 %d", got.ViewCount)
	}

	// 管理读取不加浏览量
	if _, err := svc.GetByID(ctx, article.ID); err != nil {
		t.Fatalf("管理读取失败: %v", err)
	}
	got, _ = svc.GetByID(ctx, article.ID)
	if got.ViewCount != 1 {
		t.Errorf("管理读取不应累加浏览量, 实际 %d", got.ViewCount)
	}
}

// 修改内容后文章回到待审核状态
func TestArticleServiceUpdateResetsAudit(t *testing.T) {
	svc := NewArticleService(newMockArticleRepository())
	ctx := context.Background()

	article := &model.Article{Title: "旧标题", Content: "正文", AuthorID: 1}
	if err := svc.Create(ctx, article); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if err := svc.Audit(ctx, article.ID, model.AuditApproved); err != nil {
		t.Fatalf("审核失败: %v", err)
	}

	article.Title = "新标题"
	if err := svc.Update(ctx, article); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	got, _ := svc.GetByID(ctx, article.ID)
	if got.AuditStatus != model.AuditPending {
		t.Errorf("更新后应回到待审核, 实际 %d", got.AuditStatus)
	}
}

func TestArticleServiceAuditValidation(t *testing.T) {
	svc := NewArticleService(newMockArticleRepository())
	ctx := context.Background()

	if err := svc.Audit(ctx, 1, 9); !errors.Is(err, ErrAuditStatusInvalid) {
		t.Errorf("期望 ErrAuditStatusInvalid, 实际 %v", err)
	}
	if err := svc.Audit(ctx, 0, model.AuditApproved); !errors.Is(err, ErrArticleIDEmpty) {
		t.Errorf("期望 ErrArticleIDEmpty, 实际 %v", err)
	}
}
