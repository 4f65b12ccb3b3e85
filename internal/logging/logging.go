package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 创建日志器：文件始终记 debug（带轮转），
// 终端默认只出 warn，--verbose 时放开到 debug。
// 日志文件写不了也不能影响安装，此时只保留终端输出。
func New(verbose bool, logFile string) *zap.Logger {
	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	consoleEnc := zap.NewDevelopmentEncoderConfig()
	consoleEnc.TimeKey = "" // 终端输出不带时间戳
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.Lock(os.Stderr),
			consoleLevel,
		),
	}

	if logFile != "" {
		fileSink := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // MB
			MaxBackups: 3,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(fileSink),
			zapcore.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...))
}

// Nop 测试用的空日志器
func Nop() *zap.Logger {
	return zap.NewNop()
}
