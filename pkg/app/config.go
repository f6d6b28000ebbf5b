package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，PARAGON_LOG_LEVEL 映射到 log.level
const EnvPrefix = "PARAGON"

var (
	configPath string
	logPath    string
)

// LoadConfig 加载配置到 target，返回底层 Manager 供热更新使用
// 优先级：命令行显式参数 > 环境变量 > 配置文件 > 默认值
func LoadConfig(target any, opts ...config.Option) (config.Manager, error) {
	execDir, err := GetExecDir()
	if err != nil {
		return nil, errors.Wrap(err, "get executable directory")
	}
	defaultConfig := filepath.Join(execDir, "config.yaml")
	defaultLog := filepath.Join(execDir, "logs", "paragon.log")

	if pflag.Lookup("config") == nil {
		pflag.StringVarP(&configPath, "config", "c", defaultConfig, "path to config file")
	}
	if pflag.Lookup("log.path") == nil {
		pflag.StringVar(&logPath, "log.path", defaultLog, "output path for logs")
	}
	if !pflag.Parsed() {
		pflag.Parse()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	finalPath := configPath
	if !pflag.CommandLine.Changed("config") {
		if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
			finalPath = env
		}
	}
	if _, err := os.Stat(finalPath); os.IsNotExist(err) {
		return nil, errors.Newf("config file not found at %s", finalPath)
	}
	configPath = finalPath

	if pflag.CommandLine.Changed("log.path") {
		v.Set("log.output_path", logPath)
		v.Set("log.enable_file", true)
	}

	base := []config.Option{
		config.WithViper(v),
		config.WithDefaults(map[string]any{"log.output_path": defaultLog}),
	}
	mgr := config.NewManager(append(base, opts...)...)
	if err := mgr.LoadFile(configPath); err != nil {
		return nil, err
	}
	if err := mgr.Unmarshal(target); err != nil {
		return nil, err
	}

	logPath = v.GetString("log.output_path")
	if v.GetBool("log.enable_file") {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
	}
	return mgr, nil
}

// GetExecDir 获取可执行文件所在目录（处理符号链接）
func GetExecDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	realPath, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		return filepath.Dir(execPath), nil
	}
	return filepath.Dir(realPath), nil
}

// GetConfigPath 返回最终使用的配置文件路径
func GetConfigPath() string {
	return configPath
}
