package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/njtc406/emberpool/engine/pkg/def"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/njtc406/emberpool/engine/pkg/utils/validate"
	"github.com/njtc406/viper"
)

var Conf = new(AppConf)

// 配置初始化逻辑:
// 1. 读取配置目录下的.env(可选)
// 2. 解析pool.yaml,环境变量 EMBER_XXX_YYY 可以覆盖对应配置
// 3. 填充默认值并校验

// Init 解析配置,失败直接panic
func Init(confPath string) {
	fmt.Println("=============开始解析配置===================")
	c, err := Load(confPath)
	if err != nil {
		panic(err)
	}
	Conf = c
	initDir()
	fmt.Println("=============配置解析完成===================")
}

// Load 解析配置目录下的pool.yaml
func Load(confPath string) (*AppConf, error) {
	envConfPath := os.Getenv(def.DefaultEnvPrefix + "_CONF_PATH")
	if envConfPath != "" {
		confPath = envConfPath
	}
	if confPath == "" {
		confPath = def.DefaultConfPath
	}

	// .env里的变量不会覆盖已经存在的环境变量
	if err := godotenv.Load(path.Join(confPath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	parser := viper.New()
	parser.SetConfigType("yaml")
	parser.SetConfigName(def.DefaultConfName)
	parser.AddConfigPath(confPath)
	parser.SetEnvPrefix(def.DefaultEnvPrefix)
	parser.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	parser.AutomaticEnv()
	setDefaultValues(parser)

	if err := parser.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// 没有配置文件时全部使用默认值
	}

	c := new(AppConf)
	if err := parser.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	fixConf(c)

	if err := validate.Struct(c); err != nil {
		return nil, validate.TransError(err, validate.ZH)
	}
	return c, nil
}

// setDefaultValues 设置默认值,只有设置过默认值的key才能被环境变量覆盖
func setDefaultValues(parser *viper.Viper) {
	parser.SetDefault("SystemStatus", Debug)
	parser.SetDefault("CachePath", "./run/cache")

	parser.SetDefault("Logger.Path", "./run/logs")
	parser.SetDefault("Logger.Name", "")
	parser.SetDefault("Logger.Level", "info")
	parser.SetDefault("Logger.Caller", true)
	parser.SetDefault("Logger.FullCaller", false)
	parser.SetDefault("Logger.Color", false)
	parser.SetDefault("Logger.MaxAge", time.Hour*24*15)
	parser.SetDefault("Logger.RotationTime", time.Hour*24)

	parser.SetDefault("Pool.CatalogFile", "")
	parser.SetDefault("Pool.TickInterval", def.DefaultTickInterval)
	parser.SetDefault("Pool.MailboxSize", def.DefaultMailboxSize)
	parser.SetDefault("Pool.StatsReportSpec", def.DefaultStatsReportSpec)
	parser.SetDefault("Pool.AsyncPoolSize", def.DefaultAsyncPoolSize)

	parser.SetDefault("Http.Enable", false)
	parser.SetDefault("Http.Addr", def.DefaultHttpAddr)
	parser.SetDefault("Http.Pprof", false)
	parser.SetDefault("Http.ReadTimeout", def.DefaultHttpTimeout)
	parser.SetDefault("Http.WriteTimeout", def.DefaultHttpTimeout)
}

// fixConf 补全配置文件里写成零值的部分
func fixConf(c *AppConf) {
	c.SystemStatus = strings.ToLower(c.SystemStatus)
	if c.Logger == nil {
		c.Logger = &log.LoggerConf{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.MaxAge == 0 {
		c.Logger.MaxAge = time.Hour * 24 * 15
	}
	if c.Logger.RotationTime == 0 {
		c.Logger.RotationTime = time.Hour * 24
	}
	if c.Pool == nil {
		c.Pool = &PoolConf{}
	}
	FixPoolConf(c.Pool)
	if c.Http == nil {
		c.Http = &HttpConf{}
	}
	if c.Http.Addr == "" {
		c.Http.Addr = def.DefaultHttpAddr
	}
	if c.Http.ReadTimeout == 0 {
		c.Http.ReadTimeout = def.DefaultHttpTimeout
	}
	if c.Http.WriteTimeout == 0 {
		c.Http.WriteTimeout = def.DefaultHttpTimeout
	}
}

// FixPoolConf 补全对象池运行时配置,代码里直接构造配置时也可以调用
func FixPoolConf(c *PoolConf) *PoolConf {
	if c == nil {
		c = &PoolConf{StatsReportSpec: def.DefaultStatsReportSpec}
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.DefaultTickInterval
	}
	if c.MailboxSize <= 0 {
		c.MailboxSize = def.DefaultMailboxSize
	}
	if c.AsyncPoolSize < 0 {
		c.AsyncPoolSize = 0
	}
	return c
}

// CatalogPath 目录文件是相对路径时相对于配置目录
func CatalogPath(confPath string, c *PoolConf) string {
	if c == nil || c.CatalogFile == "" {
		return ""
	}
	if path.IsAbs(c.CatalogFile) {
		return c.CatalogFile
	}
	if confPath == "" {
		confPath = def.DefaultConfPath
	}
	return path.Join(confPath, c.CatalogFile)
}

func initDir() {
	if Conf.CachePath != "" {
		createDirIfNotExists(Conf.CachePath)
	}
	if Conf.Logger.Name == "" || Conf.Logger.Path == "" {
		return
	}
	createDirIfNotExists(Conf.Logger.Path)
}

func createDirIfNotExists(dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(err)
	}
}

// IsDebug 返回是否为调试模式
func IsDebug() bool {
	return Conf.SystemStatus == Debug
}

// SetStatus 设置系统状态
func SetStatus(status string) {
	stat := strings.ToLower(status)
	if stat != Debug && stat != Release {
		return
	}
	Conf.SystemStatus = stat
}

func GetStatus() string {
	return Conf.SystemStatus
}
