package utils

import (
	"io"
	"os"
	"time"

	log "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger 初始化全局日志，file 非空时同时写入滚动日志文件
func InitLogger(level, file string) {
	var w io.Writer = os.Stderr
	if file != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // 天
			Compress:   true,
		})
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warnf("无效的日志级别 %q，使用 info", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	log.SetDefault(logger)
}
