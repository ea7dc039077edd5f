package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-iot/ams-backend/internal/config"
	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 文件相关错误
var (
	ErrFileIDEmpty         = errors.New("文件 ID 不能为空")
	ErrFileNameEmpty       = errors.New("文件名不能为空")
	ErrCategoryIDEmpty     = errors.New("分类 ID 不能为空")
	ErrCategoryNameEmpty   = errors.New("分类名称不能为空")
	ErrUploadExtensionMiss = errors.New("文件名缺少扩展名")
)

// UploadPolicy 客户端直传 OSS 所需的签名凭据
type UploadPolicy struct {
	AccessKeyID string `json:"access_key_id"`
	Host        string `json:"host"`
	Policy      string `json:"policy"`
	Signature   string `json:"signature"`
	ObjectKey   string `json:"object_key"`
	ExpireAt    int64  `json:"expire_at"`
}

// FileService 文件服务接口
type FileService interface {
	// BuildUploadPolicy 为一次上传生成直传凭据
	BuildUploadPolicy(ctx context.Context, filename string) (*UploadPolicy, error)
	// SaveFileInfo 上传完成后登记文件元数据
	SaveFileInfo(ctx context.Context, file *model.FileInfo) error
	GetByID(ctx context.Context, id uint) (*model.FileInfo, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *repository.FileFilter, page *repository.Pagination) ([]*model.FileInfo, int64, error)

	CreateCategory(ctx context.Context, category *model.FileCategory) error
	UpdateCategory(ctx context.Context, category *model.FileCategory) error
	DeleteCategory(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]*model.FileCategory, error)
}

type fileService struct {
	fileRepo repository.FileInfoRepository
	catRepo  repository.FileCategoryRepository
	oss      *config.OSSConfig
}

// NewFileService 创建文件服务
func NewFileService(fileRepo repository.FileInfoRepository, catRepo repository.FileCategoryRepository, oss *config.OSSConfig) FileService {
	return &fileService{fileRepo: fileRepo, catRepo: catRepo, oss: oss}
}

// BuildUploadPolicy 生成 PostObject 直传策略
// 对象键按日期分目录并用 UUID 防止覆盖，签名用 HMAC-SHA1。
func (s *fileService) BuildUploadPolicy(ctx context.Context, filename string) (*UploadPolicy, error) {
	if filename == "" {
		return nil, ErrFileNameEmpty
	}
	ext := path.Ext(filename)
	if ext == "" {
		return nil, ErrUploadExtensionMiss
	}
	now := time.Now()
	expireAt := now.Add(s.oss.PolicyExpiry)
	objectKey := fmt.Sprintf("uploads/%s/%s%s", now.Format("2006/01/02"), uuid.NewString(), ext)

	policyDoc := map[string]interface{}{
		"expiration": expireAt.UTC().Format("2006-01-02T15:04:05Z"),
		"conditions": []interface{}{
			map[string]string{"bucket": s.oss.Bucket},
			[]interface{}{"starts-with", "$key", "uploads/"},
		},
	}
	raw, err := json.Marshal(policyDoc)
	if err != nil {
		return nil, err
	}
	policy := base64.StdEncoding.EncodeToString(raw)

	mac := hmac.New(sha1.New, []byte(s.oss.AccessKeySecret))
	mac.Write([]byte(policy))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return &UploadPolicy{
		AccessKeyID: s.oss.AccessKeyID,
		Host:        s.oss.Host,
		Policy:      policy,
		Signature:   signature,
		ObjectKey:   objectKey,
		ExpireAt:    expireAt.Unix(),
	}, nil
}

func (s *fileService) SaveFileInfo(ctx context.Context, file *model.FileInfo) error {
	if file.Name == "" {
		return ErrFileNameEmpty
	}
	if file.CategoryID != 0 {
		if _, err := s.catRepo.GetByID(ctx, file.CategoryID); err != nil {
			return err
		}
	}
	if file.URL == "" && file.ObjectKey != "" {
		file.URL = s.oss.Host + "/" + file.ObjectKey
	}
	return s.fileRepo.Create(ctx, file)
}

func (s *fileService) GetByID(ctx context.Context, id uint) (*model.FileInfo, error) {
	if id == 0 {
		return nil, ErrFileIDEmpty
	}
	return s.fileRepo.GetByID(ctx, id)
}

func (s *fileService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrFileIDEmpty
	}
	return s.fileRepo.SoftDelete(ctx, id)
}

func (s *fileService) List(ctx context.Context, filter *repository.FileFilter, page *repository.Pagination) ([]*model.FileInfo, int64, error) {
	return s.fileRepo.List(ctx, filter, page)
}

func (s *fileService) CreateCategory(ctx context.Context, category *model.FileCategory) error {
	if category.Name == "" {
		return ErrCategoryNameEmpty
	}
	return s.catRepo.Create(ctx, category)
}

func (s *fileService) UpdateCategory(ctx context.Context, category *model.FileCategory) error {
	if category.ID == 0 {
		return ErrCategoryIDEmpty
	}
	if category.Name == "" {
		return ErrCategoryNameEmpty
	}
	return s.catRepo.Update(ctx, category)
}

// DeleteCategory 删除分类，仍被文件引用的分类不能删
func (s *fileService) DeleteCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrCategoryIDEmpty
	}
	count, err := s.fileRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrCategoryInUse
	}
	return s.catRepo.SoftDelete(ctx, id)
}

func (s *fileService) ListCategories(ctx context.Context) ([]*model.FileCategory, error) {
	return s.catRepo.List(ctx)
}
