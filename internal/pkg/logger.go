package pkg

import "go.uber.org/zap"

// NewLogger 生产配置的结构化日志，debug 时换开发配置
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
