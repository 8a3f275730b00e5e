package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/logger"
)

// ConflictPolicy 目标位置已存在同名文件时的处理策略
type ConflictPolicy string

const (
	// ConflictReplace 覆盖已存在的文件（与 rename(2) 的默认行为一致）
	ConflictReplace ConflictPolicy = "replace"
	// ConflictSkip 保留源文件不移动
	ConflictSkip ConflictPolicy = "skip"
	// ConflictRename 追加自增序号，如 name_1.ext
	ConflictRename ConflictPolicy = "rename"
)

// ParseConflictPolicy 解析冲突策略，空字符串视为 replace
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ConflictReplace, nil
	case ConflictReplace, ConflictSkip, ConflictRename:
		return p, nil
	default:
		return "", fmt.Errorf("无效的冲突策略: %q（可选 replace、skip、rename）", s)
	}
}

var errNotDirectory = errors.New("exists and is not a directory")

// ensureFolder 确保分类目录存在，不存在时只创建一层
// 返回值 created 表示本次是否新建了目录
func (o *Organizer) ensureFolder(path string) (created bool, err error) {
	info, err := o.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, &os.PathError{Op: "mkdir", Path: path, Err: errNotDirectory}
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}

	if o.opts.DryRun {
		return true, nil
	}

	if err := o.fs.Mkdir(path, 0755); err != nil {
		return false, err
	}
	return true, nil
}

// resolveTarget 按冲突策略确定最终目标路径
// skip 为 true 表示目标已存在且策略为跳过
func (o *Organizer) resolveTarget(dst string) (target string, skip bool, err error) {
	exists, err := afero.Exists(o.fs, dst)
	if err != nil {
		return "", false, fmt.Errorf("检查文件是否存在失败: %w", err)
	}
	if !exists {
		return dst, false, nil
	}

	switch o.opts.Conflict {
	case ConflictSkip:
		return dst, true, nil
	case ConflictRename:
		dir, name := filepath.Split(dst)
		stem, ext := splitName(name)
		for i := 1; ; i++ {
			candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
			exists, err := afero.Exists(o.fs, candidate)
			if err != nil {
				return "", false, fmt.Errorf("检查文件是否存在失败: %w", err)
			}
			if !exists {
				logger.Get().Debug().
					Str("original_path", dst).
					Str("new_path", candidate).
					Msg("文件名冲突，自动重命名")
				return candidate, false, nil
			}
		}
	default:
		return dst, false, nil
	}
}

// splitName 拆分主名与扩展名，规则与 classifier.Extension 一致：
// 以 '.' 开头且不含其他 '.' 的名称（如 .bashrc）整体视为主名
func splitName(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// moveFile 使用 rename 移动文件，跨卷时退化为复制后删除
func (o *Organizer) moveFile(src, dst string) error {
	err := o.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	return o.copyAndRemove(src, dst)
}

func (o *Organizer) copyAndRemove(src, dst string) error {
	info, err := o.fs.Stat(src)
	if err != nil {
		return err
	}

	sourceFile, err := o.fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := o.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		o.fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := destFile.Close(); err != nil {
		o.fs.Remove(dst)
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	if err := o.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		logger.Get().Debug().Err(err).Str("path", dst).Msg("保留修改时间失败")
	}

	if err := o.fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
