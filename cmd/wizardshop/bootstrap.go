package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/pkg/logger"
)

// bootstrap 加载配置并创建日志
// 设计说明:
// 1. 所有子命令共用同一份配置加载逻辑(文件 + WIZARDSHOP_*环境变量)
// 2. 日志实例同时设置为zap全局日志,第三方代码里的zap.L()也能输出
func bootstrap(flags *rootFlags) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	l, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(l)

	return cfg, l, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
		Service:      cfg.Tracing.ServiceName,
	})
}
