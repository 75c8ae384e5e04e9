package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は環境名に応じた構造化ロガーを生成する。
// env が "production" または "prod" の場合はJSONエンコーダのロガーを、
// それ以外の場合は開発用のコンソールエンコーダのロガーを返す。
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if IsProduction(env) {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ロガーの構築に失敗: %w", err)
	}
	return logger, nil
}

// NewNop は何も出力しないロガーを返す。テストで使用する。
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// IsProduction は環境名が本番環境を指すかどうかを判定する。
func IsProduction(env string) bool {
	return env == "production" || env == "prod"
}
