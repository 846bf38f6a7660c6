package http

const (
	KEY_HEADER_AUTHORIZATION      = "Authorization"
	KEY_HEADER_CONTENT_TYPE       = "Content-Type"
	KEY_HEADER_REQUEST_ID         = "X-Request-Id"
	VALUE_HEADER_APPLICATION_JSON = "application/json"
)

const (
	STATUS_SUCCESS = "success"
	STATUS_FAILED  = "failed"
)
