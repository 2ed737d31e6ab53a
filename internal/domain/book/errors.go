package book

import (
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidSection 无效的分区
	ErrInvalidSection = apperrors.New(apperrors.ErrCodeInvalidSection, "分区必须是new、rare、school、restricted之一")

	// ErrInvalidHouse 无效的学院
	ErrInvalidHouse = apperrors.New(apperrors.ErrCodeInvalidHouse, "学院必须是Gryffindor、Slytherin、Ravenclaw、Hufflepuff之一")

	// ErrInvalidSortKey 无效的排序方式
	ErrInvalidSortKey = apperrors.New(apperrors.ErrCodeInvalidSortKey, "排序方式必须是popular、price、year、rarity之一")

	// ErrSearchTooLong 关键词超过MaxSearchLength
	ErrSearchTooLong = apperrors.New(apperrors.ErrCodeSearchTooLong, "关键词不能超过100个字符")

	// ErrDuplicateID 目录中存在重复ID
	ErrDuplicateID = apperrors.New(apperrors.ErrCodeDuplicateID, "图书ID重复")

	// ErrInvalidRarity 稀有度超出1-5
	ErrInvalidRarity = apperrors.New(apperrors.ErrCodeInvalidRarity, "稀有度必须在1-5之间")

	// ErrInvalidPrice 价格为负
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidPrice, "价格不能为负数")

	// ErrInvalidCatalog 目录数据不合法(其他字段缺失或取值错误)
	ErrInvalidCatalog = apperrors.New(apperrors.ErrCodeInvalidCatalog, "目录数据不合法")
)
