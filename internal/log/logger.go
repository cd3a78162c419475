package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSugar builds the process-wide logger for the given APP_ENV value:
// JSON at info level for prod, colored console at debug otherwise.
func NewSugar(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": "miniblog"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
