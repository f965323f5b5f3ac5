package errors

import "errors"

// ErrUpstreamUnauthorized 上游拒绝调用方凭证（401/403），由数据源返回、Handler 映射为 401
var ErrUpstreamUnauthorized = errors.New("上游认证失败，请重新登录")
