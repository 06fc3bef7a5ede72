package dao

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-service/internal/model"
	"github.com/haierkeys/fast-note-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/gookit/goutil/fsutil"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库引擎配置
type DatabaseConfig struct {
	Type            string   // sqlite, postgres, mysql
	Path            string   // SQLite 文件路径
	DSN             string   // 完整连接串，设置后忽略 UserName/Password/Host/Name
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	Replicas        []string // 只读副本连接串，类型与主库相同
	RunMode         string
}

// NewDBEngineWithConfig opens the database, tunes the pool and installs plugins
// NewDBEngineWithConfig 打开数据库连接，配置连接池并安装插件
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(c, c.DSN)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if c.RunMode == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(lg, level),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_user`
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", c.Type)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if isSQLiteMemory(c) {
		// 每个连接都是独立的内存数据库，只保留一个永不过期的连接
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		if c.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(c.MaxIdleConns)
		}
		if c.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(c.MaxOpenConns)
		}
		sqlDB.SetConnMaxLifetime(util.ParseDurationOr(c.ConnMaxLifetime, 30*time.Minute))
		sqlDB.SetConnMaxIdleTime(util.ParseDurationOr(c.ConnMaxIdleTime, 10*time.Minute))
	}

	if len(c.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.Replicas))
		for _, dsn := range c.Replicas {
			r, err := openDialector(c, dsn)
			if err != nil {
				return nil, errors.Wrap(err, "replica")
			}
			replicas = append(replicas, r)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "register replicas")
		}
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	if c.AutoMigrate {
		if err := model.AutoMigrate(db, "all"); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	return db, nil
}

// openDialector builds the dialector of c.Type; dsn overrides the connection fields when set
func openDialector(c DatabaseConfig, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(c.Type) {
	case "mysql", "mariadb":
		if dsn == "" {
			charset := c.Charset
			if charset == "" {
				charset = "utf8mb4"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
				c.UserName,
				c.Password,
				c.Host,
				c.Name,
				charset,
				c.ParseTime,
			)
		}
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		if dsn == "" {
			u := &url.URL{
				Scheme:   "postgres",
				User:     url.UserPassword(c.UserName, c.Password),
				Host:     c.Host,
				Path:     "/" + c.Name,
				RawQuery: "sslmode=disable&TimeZone=UTC",
			}
			dsn = u.String()
		}
		return postgres.Open(dsn), nil

	case "sqlite", "":
		if dsn == "" {
			dsn = c.Path
		}
		if dsn == "" {
			return nil, errors.New("database.path is empty")
		}
		if !isSQLiteMemory(DatabaseConfig{Path: dsn}) && !strings.HasPrefix(dsn, "file:") {
			if err := fsutil.MkParentDir(dsn); err != nil {
				return nil, errors.Wrap(err, "create database dir")
			}
		}
		return sqlite.Open(sqliteDSN(dsn)), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", c.Type)
}

// sqliteDSN enables WAL, a busy timeout and immediate write transactions
func sqliteDSN(path string) string {
	params := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"
	if !isSQLiteMemory(DatabaseConfig{Path: path}) {
		params += "&_pragma=journal_mode(WAL)"
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func isSQLiteMemory(c DatabaseConfig) bool {
	if c.Type != "" && c.Type != "sqlite" {
		return false
	}
	p := c.Path
	if c.DSN != "" {
		p = c.DSN
	}
	return p == ":memory:" || strings.Contains(p, "mode=memory") || strings.HasPrefix(p, "file::memory:")
}
