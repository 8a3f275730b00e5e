package classifier

import (
	"fmt"
	"io"
	"strings"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"
)

const (
	// OthersCategory 未匹配任何分类时使用的兜底分类
	OthersCategory = "Others"

	// HeaderSize 内容识别需要读取的文件头部字节数
	HeaderSize = 261
)

// Category 一个分类及其扩展名集合
type Category struct {
	Name       string
	Extensions []string
}

// Table 有序的分类表，构造后不可修改
type Table struct {
	categories []Category
	lookup     map[string]string
}

// DefaultCategories 返回默认分类定义
func DefaultCategories() []Category {
	return []Category{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".heic"}},
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".pages", ".txt", ".xls", ".xlsx", ".numbers", ".ppt", ".pptx"}},
		{Name: "Audio", Extensions: []string{".mp3", ".m4a", ".wav", ".aac", ".ogg", ".flac"}},
		{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mov", ".mkv", ".wmv"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".rar", ".7z"}},
	}
}

// DefaultTable 使用默认分类构造分类表
func DefaultTable() *Table {
	t, _ := NewTable(DefaultCategories())
	return t
}

// NewTable 构造分类表
// 扩展名统一转为小写并补全前导点；同一扩展名出现在多个分类中时以先出现的分类为准
func NewTable(categories []Category) (*Table, error) {
	t := &Table{
		categories: make([]Category, 0, len(categories)),
		lookup:     make(map[string]string),
	}

	seen := make(map[string]bool)
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("分类名称不能为空")
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return nil, fmt.Errorf("无效的分类名称: %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("重复的分类名称: %s", name)
		}
		seen[name] = true

		exts := make([]string, 0, len(c.Extensions))
		dedup := make(map[string]bool)
		for _, ext := range c.Extensions {
			ext = NormalizeExtension(ext)
			if ext == "" || dedup[ext] {
				continue
			}
			dedup[ext] = true
			exts = append(exts, ext)

			if _, exists := t.lookup[ext]; !exists {
				t.lookup[ext] = name
			}
		}

		t.categories = append(t.categories, Category{Name: name, Extensions: exts})
	}

	return t, nil
}

// NormalizeExtension 转为带前导点的小写扩展名
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Extension 返回文件名的小写扩展名（最后一个 '.' 起的部分），没有扩展名时返回空字符串
// 以 '.' 开头且不含其他 '.' 的隐藏文件（如 .bashrc）视为没有扩展名
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

// Classify 按表中顺序查找扩展名所属分类，未命中返回 Others
func (t *Table) Classify(ext string) string {
	if category, ok := t.lookup[strings.ToLower(ext)]; ok {
		return category
	}
	return OthersCategory
}

// Categories 返回分类列表的副本
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// Names 返回全部分类名称，包含兜底的 Others
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.categories)+1)
	for _, c := range t.categories {
		names = append(names, c.Name)
	}
	if _, ok := t.index(OthersCategory); !ok {
		names = append(names, OthersCategory)
	}
	return names
}

func (t *Table) index(name string) (int, bool) {
	for i, c := range t.categories {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// SniffExtension 根据文件内容识别扩展名，无法识别时返回空字符串
func SniffExtension(fs afero.Fs, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, HeaderSize)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取文件头部失败: %w", err)
	}
	if n == 0 {
		return "", nil
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", fmt.Errorf("检测文件类型失败: %w", err)
	}
	if kind == filetype.Unknown {
		return "", nil
	}

	return NormalizeExtension(kind.Extension), nil
}
