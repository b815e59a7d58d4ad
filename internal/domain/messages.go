package domain

// Locale selects the user-facing message table.
type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

var messagesZH = map[ErrorKind]string{
	NetworkError:    "网络连接失败，请检查您的网络设置",
	Timeout:         "请求超时，请稍后重试",
	NotFound:        "请求的资源不存在",
	BadRequest:      "请求参数错误，请检查输入信息",
	Unauthorized:    "未授权访问，请先登录",
	Forbidden:       "权限不足，无法访问此资源",
	Conflict:        "操作冲突，请刷新页面后重试",
	ValidationError: "数据验证失败，请检查输入信息",
	RateLimited:     "请求过于频繁，请稍后再试",
	InternalError:   "服务器内部错误，我们正在处理此问题",
	ParseError:      "数据解析失败，请稍后重试",
	UnknownError:    "发生未知错误，请稍后重试",
}

var messagesEN = map[ErrorKind]string{
	NetworkError:    "Network connection failed, please check your network settings",
	Timeout:         "The request timed out, please try again later",
	NotFound:        "The requested resource does not exist",
	BadRequest:      "Invalid request parameters, please check your input",
	Unauthorized:    "Unauthorized, please sign in first",
	Forbidden:       "You do not have permission to access this resource",
	Conflict:        "Operation conflict, please refresh and try again",
	ValidationError: "Validation failed, please check your input",
	RateLimited:     "Too many requests, please try again later",
	InternalError:   "Internal server error, we are working on it",
	ParseError:      "Failed to parse data, please try again later",
	UnknownError:    "An unknown error occurred, please try again later",
}

// DefaultMessage returns the zh sentence for kind.
func DefaultMessage(kind ErrorKind) string {
	return MessageFor(kind, LocaleZH)
}

// MessageFor returns the sentence for kind in locale, falling back to zh
// for unknown locales and to UnknownError for out-of-range kinds.
func MessageFor(kind ErrorKind, locale Locale) string {
	table := messagesZH
	if locale == LocaleEN {
		table = messagesEN
	}
	if msg, ok := table[kind]; ok {
		return msg
	}
	return table[UnknownError]
}

// UserFriendlyMessage prefers the server-supplied message.
func UserFriendlyMessage(err *APIError) string {
	if err == nil {
		return ""
	}
	if err.Message != "" {
		return err.Message
	}
	return DefaultMessage(err.Kind)
}

// ShouldShowDetails reports whether technical details may be shown.
// Production only exposes validation failures.
func ShouldShowDetails(err *APIError, dev bool) bool {
	if err == nil {
		return false
	}
	if dev {
		return true
	}
	return err.IsClientError() && err.Kind == ValidationError
}
