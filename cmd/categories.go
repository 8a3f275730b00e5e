package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/pkg/classifier"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "显示分类表",
	Long:  `按匹配顺序显示当前配置的分类及其扩展名，未匹配任何分类的文件归入 Others。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := cfg.Table()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderCategories(table))
		return nil
	},
}

func renderCategories(table *classifier.Table) string {
	categories := table.Categories()
	rows := make([][]string, 0, len(categories)+1)
	for i, c := range categories {
		rows = append(rows, []string{itoa(i + 1), c.Name, strings.Join(c.Extensions, " ")})
	}
	if len(table.Names()) > len(categories) {
		rows = append(rows, []string{"-", classifier.OthersCategory, "(everything else)"})
	}

	return renderTable(
		[]string{"#", "Category", "Extensions"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	)
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
