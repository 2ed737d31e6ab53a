package file

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// catalogDocument YAML目录文件结构
//
//	books:
//	  - id: bk9
//	    title: ...
type catalogDocument struct {
	Books []*book.Book `yaml:"books"`
}

// CatalogRepository YAML文件目录数据源
// 设计说明:
// 1. 文件在FindAll时读取,不缓存(目录只在启动时加载一次)
// 2. 未知字段视为错误,拼写错误的字段不会被悄悄忽略
// 3. 字段取值的校验交给book.NewCatalog
type CatalogRepository struct {
	path string
}

// NewCatalogRepository 创建文件目录数据源
func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{path: path}
}

// FindAll 读取并解析目录文件
func (r *CatalogRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "读取目录文件失败: %s", r.path)
	}
	return Decode(data)
}

// Decode 解析YAML目录内容
func Decode(data []byte) ([]*book.Book, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, book.ErrInvalidCatalog.WithMessage("目录文件为空")
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeInvalidCatalog, "目录文件格式错误")
	}
	return doc.Books, nil
}

// Encode 把目录序列化为YAML(与Decode互逆)
func Encode(books []*book.Book) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogDocument{Books: books}); err != nil {
		return nil, apperrors.Wrap(err, "目录序列化失败")
	}
	if err := enc.Close(); err != nil {
		return nil, apperrors.Wrap(err, "目录序列化失败")
	}
	return buf.Bytes(), nil
}
