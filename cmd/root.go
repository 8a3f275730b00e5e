package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "file-organizer",
	Short: "按扩展名整理目录中的文件",
	Long: `File Organizer 是一个命令行工具，按扩展名把目录中的文件移动到分类子目录。

主要功能:
- 只处理目录的直接子文件，不递归子目录
- 按扩展名匹配分类：Images、Documents、Audio、Videos、Archives，其余归入 Others
- 分类目录不存在时自动创建
- 每个操作都会写入日志文件`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// 目录不存在的错误已经由 reporter 输出
		if !errors.Is(err, organizer.ErrDirectoryNotFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Load()
	}
	return config.LoadWith(viper.New(), cfgFile)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认查找 $HOME/.file-organizer/config.yaml）")
}
