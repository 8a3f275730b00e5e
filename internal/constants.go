package internal

const (
	// 日志文件默认路径
	DefaultLogFile = "file_organizer.log"

	// 文件名冲突默认策略
	DefaultConflictPolicy = "replace"

	// 环境变量前缀
	EnvPrefix = "FILE_ORGANIZER"

	// 交互式输入的提示语
	DirectoryPrompt = "Enter the full path of the directory to organize: "
)
