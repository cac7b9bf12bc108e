package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志失败原因常量
const (
	LoginFailReasonBadRequest         = "bad_request"
	LoginFailReasonInvalidEmail       = "invalid_email"
	LoginFailReasonInvalidCredentials = "invalid_credentials"
	LoginFailReasonUserDisabled       = "user_disabled"
	LoginFailReasonInternalError      = "internal_error"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
	TaskTicketReplyEmail = "ticket:reply_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pk"
)

// 币种常量
const (
	SiteCurrencyDefault = "IRR"
)

// 上传场景常量
const (
	UploadSceneProduct  = "product"
	UploadSceneCategory = "category"
	UploadSceneTutorial = "tutorial"
	UploadSceneReceipt  = "receipt"
	UploadSceneCommon   = "common"
)
