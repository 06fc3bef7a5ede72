// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-service/internal/dao"
	"github.com/haierkeys/fast-note-service/internal/service"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/util"
	"github.com/haierkeys/fast-note-service/pkg/workerpool"
	"github.com/haierkeys/fast-note-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/gookit/goutil/fsutil"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the YAML file
// 覆盖配置文件的环境变量
const (
	EnvJWTKey      = "JWT_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvAppEnv      = "APP_ENV"
	EnvNodeEnv     = "NODE_ENV"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
	Session  SessionConfig  `yaml:"session"`
	User     UserConfig     `yaml:"user"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`

	// production is set from APP_ENV / NODE_ENV
	production bool
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug, release, test
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics, pprof），为空不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:9001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	// AuthTokenKey session signing secret, required; JWT_KEY overrides it
	// AuthTokenKey 会话签名密钥，必须设置
	AuthTokenKey string `yaml:"auth-token-key"`
}

// SessionConfig 会话 Cookie 配置
type SessionConfig struct {
	CookieName string `yaml:"cookie-name" default:"NoteApp"`
	// MaxAge token and cookie lifetime, supports 7d, 24h, 30m
	// MaxAge Token 与 Cookie 有效期，支持 7d、24h、30m
	MaxAge string `yaml:"max-age" default:"7d"`
	Secure bool   `yaml:"secure"`
	Path   string `yaml:"path" default:"/"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite, postgres, mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// DSN 完整连接串，设置后忽略下面的分项配置
	DSN      string `yaml:"dsn"`
	UserName string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Name     string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool   `yaml:"auto-migrate" default:"true"`
	Charset     string `yaml:"charset"`
	ParseTime   bool   `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas 只读副本连接串
	Replicas []string `yaml:"replicas"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 请求超时（秒），0 表示不限制
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// EditMaxRetries 笔记编辑版本冲突后的最大重试次数
	EditMaxRetries int    `yaml:"edit-max-retries" default:"5"`
	EditRetryMin   string `yaml:"edit-retry-min" default:"5ms"`
	EditRetryMax   string `yaml:"edit-retry-max" default:"200ms"`

	// OrphanCleanupCron 孤立历史记录清理任务的 cron 表达式，为空不启用
	OrphanCleanupCron string `yaml:"orphan-cleanup-cron" default:"@every 1h"`
	// DBStatsInterval 连接池指标采集间隔，为空不启用
	DBStatsInterval string `yaml:"db-stats-interval" default:"1m"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"8"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent jaeger agent host:port，为空时使用 noop tracer
	JaegerAgent string `yaml:"jaeger-agent"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
//
// Defaults are applied once, before the file is parsed; a field the file sets to its
// zero value (false, 0, "") keeps that value.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	return c, realpath, nil
}

// ParseConfig builds a config from YAML bytes, then applies .env and environment overrides
// ParseConfig 解析 YAML 配置并应用环境变量覆盖
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// .env 中的变量不会覆盖已经存在的环境变量
	if fsutil.IsFile(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "load .env failed")
		}
	}
	c.applyEnv(os.Getenv)

	return c, nil
}

// applyEnv applies environment overrides; getenv is injectable for tests
func (c *AppConfig) applyEnv(getenv func(string) string) {
	if key := strings.TrimSpace(getenv(EnvJWTKey)); key != "" {
		c.Security.AuthTokenKey = key
	}

	if dsn := strings.TrimSpace(getenv(EnvDatabaseURL)); dsn != "" {
		c.Database.DSN = dsn
		if u, err := url.Parse(dsn); err == nil {
			switch u.Scheme {
			case "postgres", "postgresql":
				c.Database.Type = "postgres"
			}
		}
	}

	env := getenv(EnvAppEnv)
	if env == "" {
		env = getenv(EnvNodeEnv)
	}
	if strings.EqualFold(strings.TrimSpace(env), "production") {
		c.production = true
		c.Session.Secure = true
	}
}

// IsProduction 是否运行在生产环境（APP_ENV / NODE_ENV）
func (c *AppConfig) IsProduction() bool {
	return c.production
}

// SessionMaxAge 会话有效期
func (c *AppConfig) SessionMaxAge() time.Duration {
	return util.ParseDurationOr(c.Session.MaxAge, pkgapp.DefaultTokenExpiry)
}

// GetTokenConfig 获取 Token 管理器配置
func (c *AppConfig) GetTokenConfig() pkgapp.TokenConfig {
	return pkgapp.TokenConfig{
		SecretKey: c.Security.AuthTokenKey,
		Expiry:    c.SessionMaxAge(),
		Issuer:    pkgapp.DefaultTokenIssuer,
	}
}

// GetCookieConfig 获取会话 Cookie 配置
func (c *AppConfig) GetCookieConfig() pkgapp.CookieConfig {
	return pkgapp.CookieConfig{
		Name:   c.Session.CookieName,
		Path:   c.Session.Path,
		MaxAge: c.SessionMaxAge(),
		Secure: c.Session.Secure || c.production,
	}
}

// GetServiceConfig 提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	def := service.DefaultAppServiceConfig()
	return &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: c.User.RegisterIsEnable,
		},
		App: service.AppServiceConfig{
			EditMaxRetries: c.App.EditMaxRetries,
			EditRetryMin:   util.ParseDurationOr(c.App.EditRetryMin, def.EditRetryMin),
			EditRetryMax:   util.ParseDurationOr(c.App.EditRetryMax, def.EditRetryMax),
		},
	}
}

// GetDatabaseConfig 转换为 dao 引擎配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		DSN:             c.Database.DSN,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		Replicas:        c.Database.Replicas,
		RunMode:         c.Server.RunMode,
	}
}

// GetContextTimeout 请求超时，0 表示不限制
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 0
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetDBStatsInterval 连接池指标采集间隔，0 表示不启用
func (c *AppConfig) GetDBStatsInterval() time.Duration {
	if strings.TrimSpace(c.App.DBStatsInterval) == "" {
		return 0
	}
	return util.ParseDurationOr(c.App.DBStatsInterval, time.Minute)
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil && timeout > 0 {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}
