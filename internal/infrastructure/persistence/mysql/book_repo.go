package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// BookRepository 图书目录仓储(MySQL)
// 设计说明:
// 1. 同时实现book.Repository(启动时读取)和book.Writer(seed命令写入)
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为ErrCodeDatabaseError
type BookRepository struct {
	db        *gorm.DB
	txManager *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, txManager *TxManager) *BookRepository {
	return &BookRepository{db: db, txManager: txManager}
}

// FindAll 按目录顺序读取全部图书
func (r *BookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	err := dbFromContext(ctx, r.db).
		Order("position ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "读取图书目录失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// ReplaceAll 整体替换目录
// 教学要点:
// 1. 删除和插入在同一事务中,任何一步失败都回滚,不会留下半个目录
// 2. Position按传入顺序重新编号
// 3. 唯一索引冲突转换为ErrDuplicateID
func (r *BookRepository) ReplaceAll(ctx context.Context, books []*book.Book) error {
	models := make([]BookModel, len(books))
	for i, b := range books {
		models[i] = toBookModel(b, i)
	}

	return r.txManager.Transaction(ctx, func(ctx context.Context) error {
		db := dbFromContext(ctx, r.db)

		// 1. 清空旧目录(AllowGlobalUpdate允许不带条件的DELETE)
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BookModel{}).Error; err != nil {
			return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "清空图书目录失败")
		}

		if len(models) == 0 {
			return nil
		}

		// 2. 批量插入
		if err := db.CreateInBatches(models, 100).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrDuplicateID
			}
			return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "写入图书目录失败")
		}
		return nil
	})
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:      m.BookID,
		Title:   m.Title,
		Author:  m.Author,
		House:   book.House(m.House),
		Section: book.Section(m.Section),
		Year:    m.Year,
		Blurb:   m.Blurb,
		Rarity:  m.Rarity,
		Price:   m.Price,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book, position int) BookModel {
	return BookModel{
		BookID:   b.ID,
		Position: position,
		Title:    b.Title,
		Author:   b.Author,
		House:    string(b.House),
		Section:  string(b.Section),
		Year:     b.Year,
		Blurb:    b.Blurb,
		Rarity:   b.Rarity,
		Price:    b.Price,
	}
}

// isDuplicateError 写入时book_id唯一索引冲突
// TranslateError开启时是gorm.ErrDuplicatedKey,否则退回匹配MySQL 1062的错误文本
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
