package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 标准响应结构
// 字段顺序：code -> msg -> data
type Response struct {
	Code  int         `json:"code"`            // 业务状态码，0 表示成功
	Msg   string      `json:"msg"`             // 响应消息（中文）
	Data  interface{} `json:"data"`            // 响应数据
	Error string      `json:"error,omitempty"` // 错误描述（仅错误响应携带）
}

// Pagination 列表分页信息
type Pagination struct {
	Total      int64 `json:"total"`       // 总条数
	Current    int   `json:"current"`     // 当前页码
	PageSize   int   `json:"page_size"`   // 每页数量
	TotalPages int   `json:"total_pages"` // 总页数
}

// 业务错误码
const (
	CodeSuccess = 0 // 操作成功

	// 参数错误 10xxx
	CodeInvalidRequest = 10001 // 请求参数无效
	CodeInvalidFormat  = 10002 // 参数格式错误
	CodeMissingParam   = 10003 // 必填参数缺失
	CodeInvalidValue   = 10004 // 参数取值无效

	// 认证/授权错误 20xxx
	CodeInvalidCredentials = 20001 // 用户名或密码错误
	CodeInvalidToken       = 20002 // 令牌无效或已过期
	CodeAccountDisabled    = 20003 // 账号已被禁用
	CodeForbidden          = 20004 // 无权访问该资源

	// 资源不存在 40xxx
	CodeUserNotFound      = 40001 // 用户不存在
	CodeDeviceNotFound    = 40002 // 设备不存在
	CodeAlertNotFound     = 40003 // 告警不存在
	CodeWorkOrderNotFound = 40004 // 工单不存在
	CodeFileNotFound      = 40005 // 文件不存在
	CodeCategoryNotFound  = 40006 // 分类不存在
	CodeArticleNotFound   = 40007 // 文章不存在
	CodeMessageNotFound   = 40008 // 消息不存在
	CodeSettingNotFound   = 40009 // 配置项不存在

	// 冲突错误 50xxx
	CodeUserExists     = 50001 // 该用户名已被注册
	CodeDeviceSNExists = 50002 // 设备序列号已存在
	CodeCategoryExists = 50003 // 分类名称已存在

	// 服务器错误 90xxx
	CodeServerError = 90001 // 服务器内部错误
	CodeTxFailed    = 90002 // 事务执行失败
)

// 错误码对应的消息
var codeMessages = map[int]string{
	CodeSuccess:            "操作成功",
	CodeInvalidRequest:     "请求参数无效",
	CodeInvalidFormat:      "参数格式错误",
	CodeMissingParam:       "必填参数缺失",
	CodeInvalidValue:       "参数取值无效",
	CodeInvalidCredentials: "用户名或密码错误",
	CodeInvalidToken:       "令牌无效或已过期",
	CodeAccountDisabled:    "账号已被禁用",
	CodeForbidden:          "无权访问该资源",
	CodeUserNotFound:       "用户不存在",
	CodeDeviceNotFound:     "设备不存在",
	CodeAlertNotFound:      "告警不存在",
	CodeWorkOrderNotFound:  "工单不存在",
	CodeFileNotFound:       "文件不存在",
	CodeCategoryNotFound:   "分类不存在",
	CodeArticleNotFound:    "文章不存在",
	CodeMessageNotFound:    "消息不存在",
	CodeSettingNotFound:    "配置项不存在",
	CodeUserExists:         "该用户名已被注册",
	CodeDeviceSNExists:     "设备序列号已存在",
	CodeCategoryExists:     "分类名称已存在",
	CodeServerError:        "服务器内部错误，请稍后重试",
	CodeTxFailed:           "操作未完成，已回滚",
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  codeMessages[CodeSuccess],
		Data: data,
	})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  msg,
		Data: data,
	})
}

// Page 列表成功响应，携带分页信息
func Page(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	Success(c, gin.H{
		"list": list,
		"pagination": Pagination{
			Total:      total,
			Current:    page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

// Error 错误响应
func Error(c *gin.Context, code int) {
	msg, ok := codeMessages[code]
	if !ok {
		msg = "未知错误"
	}
	c.JSON(codeToHTTPStatus(code), Response{
		Code:  code,
		Msg:   msg,
		Data:  nil,
		Error: msg,
	})
}

// ErrorWithMsg 错误响应（自定义消息）
func ErrorWithMsg(c *gin.Context, code int, msg string) {
	c.JSON(codeToHTTPStatus(code), Response{
		Code:  code,
		Msg:   msg,
		Data:  nil,
		Error: msg,
	})
}

// codeToHTTPStatus 业务错误码转 HTTP 状态码
func codeToHTTPStatus(code int) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code >= 10000 && code < 20000:
		return http.StatusBadRequest
	case code >= 20000 && code < 30000:
		if code == CodeForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case code >= 40000 && code < 50000:
		return http.StatusNotFound
	case code >= 50000 && code < 60000:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
