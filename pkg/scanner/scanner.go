package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/classifier"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Kind 目录项类型
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// Entry 目录中的一个直接子项
type Entry struct {
	Name      string
	Path      string
	Extension string
	Kind      Kind
}

// DirScanner 只列出目录的直接子项，不递归
type DirScanner struct {
	Fs afero.Fs
}

func NewDirScanner(fs afero.Fs) *DirScanner {
	return &DirScanner{Fs: fs}
}

// IsDir 检查路径是否为已存在的目录
func (s *DirScanner) IsDir(dir string) (bool, error) {
	info, err := s.Fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// List 按名称顺序返回目录的直接子项，扫描开始时一次性获取
// 指向文件的符号链接视为文件，指向目录的符号链接视为目录
func (s *DirScanner) List(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		entry := Entry{
			Name: info.Name(),
			Path: path,
			Kind: s.kindOf(path, info),
		}
		if entry.Kind == KindFile {
			entry.Extension = classifier.Extension(entry.Name)
		}
		entries = append(entries, entry)
	}

	logger.Get().Debug().Msgf("扫描目录完成: %s，共 %d 项", dir, len(entries))
	return entries, nil
}

func (s *DirScanner) kindOf(path string, info os.FileInfo) Kind {
	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		target, err := s.Fs.Stat(path)
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("无法解析符号链接: %s", path)
			return KindOther
		}
		mode = target.Mode()
	}

	switch {
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
