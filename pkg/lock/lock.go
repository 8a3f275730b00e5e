// Package lock 提供按目录加锁的进程间咨询锁，同一目录同一时间只允许一次整理
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/moyu-x/file-organizer/pkg/hasher"
)

// ErrLocked 目录正被其他进程整理
var ErrLocked = errors.New("目录正被其他进程整理")

// DirLock 以目录路径为键的排他锁，锁文件放在目标目录之外
type DirLock struct {
	flock *flock.Flock
	path  string
}

// ForDirectory 返回 dir 对应的锁，锁文件存放在 lockDir 中
// lockDir 为空时使用用户缓存目录，获取失败再退回系统临时目录
func ForDirectory(dir, lockDir string) (*DirLock, error) {
	key, err := hasher.PathKey(dir)
	if err != nil {
		return nil, fmt.Errorf("解析目录路径失败 %s: %w", dir, err)
	}

	if lockDir == "" {
		lockDir = DefaultDir()
	}
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("创建锁目录失败 %s: %w", lockDir, err)
	}

	path := filepath.Join(lockDir, key+".lock")
	return &DirLock{flock: flock.New(path), path: path}, nil
}

// DefaultDir 未配置时存放锁文件的目录
func DefaultDir() string {
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "file-organizer", "locks")
	}
	return filepath.Join(os.TempDir(), "file-organizer-locks")
}

func (l *DirLock) Path() string {
	return l.path
}

// TryLock 非阻塞获取锁，已被占用时返回 ErrLocked
func (l *DirLock) TryLock() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("获取锁失败 %s: %w", l.path, err)
	}
	if !acquired {
		return ErrLocked
	}
	return nil
}

// Unlock 释放锁
func (l *DirLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("释放锁失败 %s: %w", l.path, err)
	}
	return nil
}
