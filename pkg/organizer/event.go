package organizer

import "fmt"

// EventKind 单个事件的类型
type EventKind int

const (
	EventDirectoryNotFound EventKind = iota
	EventFolderCreated
	EventFolderCreateFailed
	EventFileMoved
	EventMoveFailed
	EventFileSkipped
)

func (k EventKind) String() string {
	switch k {
	case EventDirectoryNotFound:
		return "directory_not_found"
	case EventFolderCreated:
		return "folder_created"
	case EventFolderCreateFailed:
		return "folder_create_failed"
	case EventFileMoved:
		return "file_moved"
	case EventMoveFailed:
		return "move_failed"
	case EventFileSkipped:
		return "file_skipped"
	default:
		return "unknown"
	}
}

// Event 一次整理过程中产生的事件，交给 Reporter 处理
type Event struct {
	Kind      EventKind
	Directory string // 目标目录
	Name      string // 文件名
	Category  string // 分类名称
	Path      string // 分类目录或移动后的路径
	Reason    string // 跳过原因
	Err       error
	DryRun    bool
}

// Failed 是否为错误事件
func (e Event) Failed() bool {
	switch e.Kind {
	case EventDirectoryNotFound, EventFolderCreateFailed, EventMoveFailed:
		return true
	default:
		return false
	}
}

// Message 日志记录使用的消息文本
func (e Event) Message() string {
	switch e.Kind {
	case EventDirectoryNotFound:
		return fmt.Sprintf("Error: The directory '%s' does not exist.", e.Directory)
	case EventFolderCreated:
		if e.DryRun {
			return fmt.Sprintf("Would create folder: %s", e.Path)
		}
		return fmt.Sprintf("Created folder: %s", e.Path)
	case EventFolderCreateFailed:
		return fmt.Sprintf("Could not create folder %s: %v", e.Path, e.Err)
	case EventFileMoved:
		if e.DryRun {
			return fmt.Sprintf("Would move file: %s to %s", e.Name, e.Category)
		}
		return fmt.Sprintf("Moved file: %s to %s", e.Name, e.Category)
	case EventMoveFailed:
		return fmt.Sprintf("Error moving file %s: %v", e.Name, e.Err)
	case EventFileSkipped:
		return fmt.Sprintf("Skipped file: %s (%s)", e.Name, e.Reason)
	default:
		return e.Kind.String()
	}
}

// ConsoleMessage 控制台回显使用的消息文本
func (e Event) ConsoleMessage() string {
	switch e.Kind {
	case EventFolderCreateFailed:
		return fmt.Sprintf("Error creating folder %s: %v", e.Path, e.Err)
	case EventFileMoved:
		if e.DryRun {
			return fmt.Sprintf("Would move: %s -> %s", e.Name, e.Category)
		}
		if base := baseName(e.Path); base != "" && base != e.Name {
			return fmt.Sprintf("Moved: %s -> %s (as %s)", e.Name, e.Category, base)
		}
		return fmt.Sprintf("Moved: %s -> %s", e.Name, e.Category)
	case EventFileSkipped:
		return fmt.Sprintf("Skipped: %s (%s)", e.Name, e.Reason)
	default:
		return e.Message()
	}
}
