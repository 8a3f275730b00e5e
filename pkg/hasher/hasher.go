package hasher

import (
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// PathKey 返回路径的 xxHash 十六进制字符串，路径先清理为绝对路径
func PathKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64String(filepath.Clean(abs)), 16), nil
}
