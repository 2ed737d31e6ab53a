package mysql

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. SQL日志通过zap输出,debug模式打印全部SQL,其他模式只打印慢查询和错误
// 4. 按配置自动迁移books表
func NewDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	// 1. 配置GORM日志
	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}
	gormLog := gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	// 2. 连接数据库
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true, // 唯一索引冲突翻译为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. 测试连接
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	// 5. 自动迁移表结构
	// 注意:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
	if cfg.Database.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&BookModel{}); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag;domain/book/entity.go不依赖GORM
// 2. BookID是业务ID(如bk9),自增ID只作为主键
// 3. Position记录目录顺序,排序键相同时的展示顺序依赖它
// 4. 价格是抽象货币单位,用decimal(10,2)存储
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    string    `gorm:"uniqueIndex;size:32;not null;comment:业务ID"`
	Position  int       `gorm:"index;not null;comment:目录顺序"`
	Title     string    `gorm:"size:200;not null;comment:书名"`
	Author    string    `gorm:"size:100;not null;comment:作者"`
	House     string    `gorm:"size:16;not null;comment:学院"`
	Section   string    `gorm:"index;size:16;not null;comment:分区"`
	Year      int       `gorm:"comment:出版年份"`
	Blurb     string    `gorm:"type:text;comment:简介"`
	Rarity    int       `gorm:"type:tinyint;not null;comment:稀有度(1-5)"`
	Price     float64   `gorm:"type:decimal(10,2);not null;default:0;comment:价格"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
