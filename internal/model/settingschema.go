package model

// 设置值类型
const (
	SettingString = "string" // 任意字符串
	SettingBool   = "bool"   // "true" / "false"
	SettingInt    = "int"    // 十进制整数
	SettingList   = "list"   // 逗号分隔列表
)

// 设置分组
const (
	GroupBasic    = "basic"    // 基础配置
	GroupStorage  = "storage"  // 对象存储
	GroupMap      = "map"      // 地图配置
	GroupTheme    = "theme"    // 默认主题
	GroupNotify   = "notify"   // 通知配置
	GroupSecurity = "security" // 安全配置
)

// 业务代码按 key 读取的设置项
const (
	SettingKeyAlertNotifyEnabled = "ALERT_NOTIFY_ENABLED"
)

// SettingDefinition 设置项定义
// key 集合在这里封闭：种子按定义写入，运行期只能按 key 更新，
// 值的类型校验和解析以 Type 为准，调用方不再自行转换。
type SettingDefinition struct {
	Key         string
	Group       string
	Type        string
	Default     string
	Description string
}

// GroupInfo 分组展示信息
type GroupInfo struct {
	Name        string
	Description string
}

// SettingGroups 分组展示顺序
var SettingGroups = []GroupInfo{
	{Name: GroupBasic, Description: "基础配置"},
	{Name: GroupStorage, Description: "对象存储"},
	{Name: GroupMap, Description: "地图配置"},
	{Name: GroupTheme, Description: "默认主题"},
	{Name: GroupNotify, Description: "通知配置"},
	{Name: GroupSecurity, Description: "安全配置"},
}

// SettingDefinitions 全部设置项定义（种子顺序）
var SettingDefinitions = []SettingDefinition{
	// 基础配置
	{Key: "SITE_NAME", Group: GroupBasic, Type: SettingString, Default: "设备资产管理平台", Description: "站点名称"},
	{Key: "API_BASE_URL", Group: GroupBasic, Type: SettingString, Default: "/api/v1", Description: "API 基础地址"},
	{Key: "ENV", Group: GroupBasic, Type: SettingString, Default: "production", Description: "运行环境标识"},

	// 对象存储
	{Key: "OSS_TYPE", Group: GroupStorage, Type: SettingString, Default: "aliyun", Description: "对象存储类型"},
	{Key: "OSS_BASE_URL", Group: GroupStorage, Type: SettingString, Default: "", Description: "对象存储访问地址"},
	{Key: "OSS_UPLOAD_DIR", Group: GroupStorage, Type: SettingString, Default: "uploads", Description: "上传目录前缀"},
	{Key: "UPLOAD_MAX_SIZE", Group: GroupStorage, Type: SettingInt, Default: "52428800", Description: "上传大小上限（字节）"},
	{Key: "UPLOAD_ALLOWED_TYPES", Group: GroupStorage, Type: SettingList, Default: "image/png,image/jpeg,application/pdf", Description: "允许上传的类型"},

	// 地图配置
	{Key: "MAP_KEY", Group: GroupMap, Type: SettingString, Default: "", Description: "地图服务密钥"},
	{Key: "MAP_STYLE", Group: GroupMap, Type: SettingString, Default: "normal", Description: "地图样式"},
	{Key: "MAP_CENTER", Group: GroupMap, Type: SettingList, Default: "116.397,39.909", Description: "默认中心点（经度,纬度）"},
	{Key: "MAP_ZOOM", Group: GroupMap, Type: SettingInt, Default: "12", Description: "默认缩放级别"},

	// 默认主题
	{Key: "THEME_PRIMARY_COLOR", Group: GroupTheme, Type: SettingString, Default: "#1677ff", Description: "默认主题色"},
	{Key: "THEME_DARK_MODE", Group: GroupTheme, Type: SettingBool, Default: "false", Description: "默认暗色模式"},

	// 通知配置
	{Key: SettingKeyAlertNotifyEnabled, Group: GroupNotify, Type: SettingBool, Default: "true", Description: "告警是否推送站内信"},
	{Key: "MESSAGE_RETENTION_DAYS", Group: GroupNotify, Type: SettingInt, Default: "90", Description: "消息保留天数"},

	// 安全配置
	{Key: "PASSWORD_MIN_LENGTH", Group: GroupSecurity, Type: SettingInt, Default: "8", Description: "密码最小长度"},
	{Key: "LOGIN_CAPTCHA_ENABLED", Group: GroupSecurity, Type: SettingBool, Default: "false", Description: "登录是否启用验证码"},
	{Key: "SESSION_TIMEOUT_MINUTES", Group: GroupSecurity, Type: SettingInt, Default: "120", Description: "会话超时（分钟）"},
}

// FindSettingDefinition 按 key 查找定义，未定义返回 nil
func FindSettingDefinition(key string) *SettingDefinition {
	for i := range SettingDefinitions {
		if SettingDefinitions[i].Key == key {
			return &SettingDefinitions[i]
		}
	}
	return nil
}

// DefaultSettings 生成种子行
func DefaultSettings() []SystemSetting {
	rows := make([]SystemSetting, 0, len(SettingDefinitions))
	for _, def := range SettingDefinitions {
		rows = append(rows, SystemSetting{
			Key:         def.Key,
			Value:       def.Default,
			Group:       def.Group,
			Description: def.Description,
		})
	}
	return rows
}
