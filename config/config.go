package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/classifier"
)

type Category struct {
	Name       string   `mapstructure:"name"`
	Extensions []string `mapstructure:"extensions"`
}

type Config struct {
	Organizer struct {
		Conflict string `mapstructure:"conflict"`
		Sniff    bool   `mapstructure:"sniff"`
		LockDir  string `mapstructure:"lock_dir"`
	} `mapstructure:"organizer"`
	Logging struct {
		Level  string `mapstructure:"level"`
		File   string `mapstructure:"file"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	// Categories 按顺序覆盖默认分类表，为空时使用默认分类
	Categories []Category `mapstructure:"categories"`
}

// Load 依次从 $HOME/.file-organizer、当前目录、/etc/file-organizer 查找 config.yaml
// 配置文件不存在时使用默认值；环境变量 FILE_ORGANIZER_* 覆盖对应配置项
func Load() (*Config, error) {
	return LoadWith(viper.New(), "")
}

// LoadWith 使用指定的 viper 实例加载配置，file 非空时只读取该文件
func LoadWith(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.file-organizer")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/file-organizer")
	}

	v.SetEnvPrefix(internal.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("organizer.conflict", internal.DefaultConflictPolicy)
	v.SetDefault("organizer.sniff", false)
	v.SetDefault("organizer.lock_dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", internal.DefaultLogFile)
	v.SetDefault("logging.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	return &c, nil
}

// Table 根据配置构造分类表
func (c *Config) Table() (*classifier.Table, error) {
	if len(c.Categories) == 0 {
		return classifier.DefaultTable(), nil
	}

	categories := make([]classifier.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		categories = append(categories, classifier.Category{Name: cat.Name, Extensions: cat.Extensions})
	}

	table, err := classifier.NewTable(categories)
	if err != nil {
		return nil, fmt.Errorf("无效的分类配置: %w", err)
	}
	return table, nil
}
