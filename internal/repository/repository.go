// Package repository 数据访问层
//
// 所有资源遵循统一的软删除约定：删除只翻转 is_deleted 标记，
// 常规读路径一律过滤 is_deleted = 0，被软删除的行对读路径而言
// 与不存在的行不可区分；审计查询使用带 Any 前缀的方法。
package repository

import (
	"gorm.io/gorm"
)

// Pagination 分页参数
type Pagination struct {
	Page     int // 页码，从 1 开始
	PageSize int // 每页数量
}

// NotDeleted 过滤软删除行的查询范围
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", 0)
	}
}

// paginate 应用分页参数
func paginate(query *gorm.DB, page *Pagination) *gorm.DB {
	if page != nil && page.Page > 0 && page.PageSize > 0 {
		offset := (page.Page - 1) * page.PageSize
		query = query.Offset(offset).Limit(page.PageSize)
	}
	return query
}
