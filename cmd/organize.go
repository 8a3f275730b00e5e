package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/tui"
)

var organizeCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "按扩展名整理目录中的文件",
	Long: `扫描指定目录的直接子文件，按扩展名移动到对应的分类子目录。
子目录不会被移动，也不会被递归处理。未指定目录时会交互式询问。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var directory string
	if len(args) == 1 {
		directory = args[0]
	} else {
		directory, err = askDirectory(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	conflict := cfg.Organizer.Conflict
	if cmd.Flags().Changed("conflict") {
		conflict, _ = cmd.Flags().GetString("conflict")
	}
	sniff := cfg.Organizer.Sniff
	if cmd.Flags().Changed("sniff") {
		sniff, _ = cmd.Flags().GetBool("sniff")
	}
	logFile := cfg.Logging.File
	if cmd.Flags().Changed("log-file") {
		logFile, _ = cmd.Flags().GetString("log-file")
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	summary, _ := cmd.Flags().GetBool("summary")

	opts := &app.OrganizeOptions{
		Directory: directory,
		Table:     table,
		Conflict:  conflict,
		Sniff:     sniff,
		DryRun:    dryRun,
		Verbose:   verbose,
		LogLevel:  cfg.Logging.Level,
		LogFile:   logFile,
		LogFormat: cfg.Logging.Format,
		LockDir:   cfg.Organizer.LockDir,
		Console:   cmd.OutOrStdout(),
	}

	result, err := app.RunOrganize(opts)
	if err != nil {
		return err
	}

	if summary {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result))
	}

	return nil
}

// askDirectory 终端中使用 TUI 输入框，否则从输入流读取一行
func askDirectory(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tui.PromptDirectory(in, out, internal.DirectoryPrompt)
	}

	fmt.Fprint(out, internal.DirectoryPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取目录路径失败: %w", err)
	}

	directory := strings.TrimSpace(line)
	if directory == "" {
		return "", fmt.Errorf("未提供目录路径")
	}
	return directory, nil
}

func renderSummary(result *organizer.Result) string {
	counts := result.ByCategory()
	rows := make([][]string, 0, len(counts)+1)
	for _, c := range counts {
		rows = append(rows, []string{c.Category, itoa(c.Moved), itoa(c.Failed), itoa(c.Skipped)})
	}
	rows = append(rows, []string{"Total", itoa(result.Moved), itoa(result.Failed), itoa(result.Skipped)})

	return renderTable(
		[]string{"Category", "Moved", "Failed", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

func init() {
	organizeCmd.Flags().String("conflict", internal.DefaultConflictPolicy, "文件名冲突策略: replace、skip 或 rename")
	organizeCmd.Flags().Bool("sniff", false, "没有扩展名的文件按内容识别类型")
	organizeCmd.Flags().Bool("dry-run", false, "预览模式，不实际移动文件")
	organizeCmd.Flags().String("log-file", internal.DefaultLogFile, "日志文件路径，为空时输出到标准错误")
	organizeCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")
	organizeCmd.Flags().Bool("summary", false, "结束后输出分类统计表")

	rootCmd.AddCommand(organizeCmd)
}
