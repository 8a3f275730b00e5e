package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	timeFormat = "2006-01-02 15:04:05"
)

var (
	Logger  *zerolog.Logger
	logFile *os.File
)

// ParseLevel 解析日志级别，无法识别时使用 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
// level: 日志级别 ("debug", "info", "warn", "error")
// file: 日志文件路径（追加写入），为空时输出到标准错误
// format: "text" 输出 "时间 - 级别 - 消息"，"json" 输出结构化记录
func Init(level, file, format string) error {
	var output io.Writer = os.Stderr

	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
		Close()
		logFile = f
		output = f
	}

	logger := New(output, level, format)
	Logger = &logger
	return nil
}

// New 创建写入 w 的 logger，不修改全局实例
func New(w io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = timeFormat

	if format != FormatJSON {
		w = TextWriter(w)
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
}

// TextWriter 以 "2006-01-02 15:04:05 - INFO - message key=value" 的格式输出
func TextWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: timeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("%v -", i)
		},
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%v", i)) + " -"
		},
	}
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}

// Close 关闭日志文件
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
