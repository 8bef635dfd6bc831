package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 前使用默认 logger，库代码可以直接打日志
var logger = newLogger(os.Stdout, "mahjong")

func newLogger(w io.Writer, prefix string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(prefix)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetLevel(log.InfoLevel)
	return l
}

func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout 而不是 os.Stderr
	// GoLand 控制台会将 stderr 显示为红色，stdout 显示为正常颜色
	logger = newLogger(os.Stdout, appName)

	// 启用调用者信息（显示文件名和行号）
	logger.SetReportCaller(true)
	logger.SetLevel(ParseLevel(logLevel))
}

// SetOutput 替换输出目标，测试中用来捕获日志
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatalf(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Infof(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warnf(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Errorf(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	if len(args) == 0 {
		logger.Debugf(format)
	} else {
		logger.Debugf(format, args...)
	}
}
