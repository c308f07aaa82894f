package response

// ErrorResponse 错误响应 { "error": "..." }
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// Error 构造错误响应
func Error(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}
