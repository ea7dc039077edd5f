// Package handler HTTP 处理器
package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, response.CodeInvalidValue)
		return 0, false
	}
	return uint(id), true
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) *repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &repository.Pagination{Page: page, PageSize: pageSize}
}

// notFoundCodes 资源不存在错误对应的业务码
var notFoundCodes = map[error]int{
	repository.ErrUserNotFound:      response.CodeUserNotFound,
	repository.ErrDeviceNotFound:    response.CodeDeviceNotFound,
	repository.ErrAlertNotFound:     response.CodeAlertNotFound,
	repository.ErrWorkOrderNotFound: response.CodeWorkOrderNotFound,
	repository.ErrFileNotFound:      response.CodeFileNotFound,
	repository.ErrCategoryNotFound:  response.CodeCategoryNotFound,
	repository.ErrArticleNotFound:   response.CodeArticleNotFound,
	repository.ErrMessageNotFound:   response.CodeMessageNotFound,
	repository.ErrSettingNotFound:   response.CodeSettingNotFound,
}

// conflictCodes 冲突错误对应的业务码
var conflictCodes = map[error]int{
	repository.ErrUserUsernameExists: response.CodeUserExists,
	repository.ErrDeviceSNExists:     response.CodeDeviceSNExists,
	repository.ErrCategoryExists:     response.CodeCategoryExists,
}

// fail 将业务错误转换为标准错误响应
// 已知的领域错误映射到对应业务码，校验类错误按参数错误返回，
// 其余按服务器错误处理。
func fail(c *gin.Context, err error) {
	for sentinel, code := range notFoundCodes {
		if errors.Is(err, sentinel) {
			response.Error(c, code)
			return
		}
	}
	for sentinel, code := range conflictCodes {
		if errors.Is(err, sentinel) {
			response.ErrorWithMsg(c, code, err.Error())
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrPasswordIncorrect):
		response.Error(c, response.CodeInvalidCredentials)
	case errors.Is(err, service.ErrUserDisabled):
		response.Error(c, response.CodeAccountDisabled)
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrInvalidIssuer),
		errors.Is(err, service.ErrNotRefreshToken):
		response.Error(c, response.CodeInvalidToken)
	case isValidationError(err):
		response.ErrorWithMsg(c, response.CodeInvalidRequest, err.Error())
	default:
		response.ErrorWithMsg(c, response.CodeServerError, err.Error())
	}
}

// isValidationError 判断是否为输入校验类错误
func isValidationError(err error) bool {
	validationErrors := []error{
		service.ErrUserIDEmpty, service.ErrUsernameEmpty, service.ErrUsernameInvalid,
		service.ErrUsernameTooShort, service.ErrNicknameEmpty, service.ErrEmailEmpty,
		service.ErrEmailInvalid, service.ErrPasswordEmpty, service.ErrPasswordTooShort,
		service.ErrRoleInvalid, service.ErrUserStatusInvalid, service.ErrDeleteSelf,
		service.ErrDeviceIDEmpty, service.ErrDeviceNameEmpty, service.ErrDeviceSNEmpty,
		service.ErrDeviceStatusInvalid,
		service.ErrAlertIDEmpty, service.ErrAlertTitleEmpty, service.ErrAlertLevelInvalid,
		service.ErrOrderIDEmpty, service.ErrOrderTitleEmpty, service.ErrOrderAssigneeEmpty,
		service.ErrOrderStatusInvalid, service.ErrOrderAlreadyFinished, service.ErrOrderTransitionDenied,
		service.ErrFileIDEmpty, service.ErrFileNameEmpty, service.ErrCategoryIDEmpty,
		service.ErrCategoryNameEmpty, service.ErrUploadExtensionMiss,
		service.ErrArticleIDEmpty, service.ErrArticleTitleEmpty, service.ErrArticleContentMiss,
		service.ErrAuditStatusInvalid,
		service.ErrMessageIDEmpty, service.ErrMessageTitleEmpty, service.ErrMessageTypeBad,
		service.ErrSettingKeyUnknown, service.ErrSettingValueBool, service.ErrSettingValueInt,
		service.ErrSettingBatchEmpty, service.ErrSettingDuplicateIn,
		service.ErrThemeColorInvalid, service.ErrThemeLayoutInvalid,
		repository.ErrNoRecipients, repository.ErrCategoryInUse,
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
