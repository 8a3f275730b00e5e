package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/classifier"
	"github.com/moyu-x/file-organizer/pkg/lock"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

type OrganizeOptions struct {
	Directory string
	Table     *classifier.Table
	Conflict  string
	Sniff     bool
	DryRun    bool
	Verbose   bool
	LogLevel  string
	LogFile   string
	LogFormat string
	LockDir   string

	// 以下字段用于测试注入，为空时使用真实文件系统与标准输出
	Fs      afero.Fs
	Console io.Writer
}

// RunOrganize 初始化日志、获取目录锁并执行一次整理
func RunOrganize(opts *OrganizeOptions) (*organizer.Result, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	if err := logger.Init(logLevel, opts.LogFile, opts.LogFormat); err != nil {
		return nil, err
	}
	defer logger.Close()

	policy, err := organizer.ParseConflictPolicy(opts.Conflict)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	runLogger := logger.Get().With().Str("run_id", runID).Logger()
	runLogger.Debug().
		Str("directory", opts.Directory).
		Str("conflict", string(policy)).
		Bool("sniff", opts.Sniff).
		Bool("dry_run", opts.DryRun).
		Msg("开始整理目录")

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	reporter := organizer.MultiReporter(
		organizer.NewLogReporter(&runLogger),
		organizer.NewConsoleReporter(console),
	)

	o := organizer.New(fs, reporter, organizer.Options{
		Table:    opts.Table,
		Conflict: policy,
		Sniff:    opts.Sniff,
		DryRun:   opts.DryRun,
		Exclude:  excludedNames(opts.Directory, opts.LogFile),
	})

	// 目录不存在时交给 Organize 报告，不需要获取锁
	if exists, err := afero.DirExists(fs, opts.Directory); err == nil && exists {
		unlock, err := lockDirectory(opts.Directory, opts.LockDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(); err != nil {
				runLogger.Debug().Err(err).Msg("释放目录锁失败")
			}
		}()
	}

	result, err := o.Organize(opts.Directory)
	if err != nil {
		return nil, err
	}

	runLogger.Debug().
		Int("scanned", result.Scanned).
		Int("moved", result.Moved).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("ignored", result.Ignored).
		Msg("整理完成")

	return result, nil
}

// lockDirectory 获取目录锁，返回释放函数
func lockDirectory(directory, lockDir string) (func() error, error) {
	dirLock, err := lock.ForDirectory(directory, lockDir)
	if err != nil {
		return nil, err
	}
	if err := dirLock.TryLock(); err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, fmt.Errorf("%s: %w", directory, err)
		}
		return nil, err
	}
	return dirLock.Unlock, nil
}

// excludedNames 日志文件位于目标目录中时，不能把它当作待整理文件移走
func excludedNames(directory, logFile string) []string {
	if logFile == "" {
		return nil
	}

	absDir, err := resolvePath(directory)
	if err != nil {
		return nil
	}
	absLog, err := filepath.Abs(logFile)
	if err != nil {
		return nil
	}
	logDir, err := resolvePath(filepath.Dir(absLog))
	if err != nil {
		return nil
	}

	if logDir == absDir {
		return []string{filepath.Base(absLog)}
	}
	return nil
}

// resolvePath 返回解析符号链接后的绝对路径，路径不存在时只取绝对路径
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
