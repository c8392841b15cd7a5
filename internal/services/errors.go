package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 缺少必填字段或字段不合法
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized 需要管理员权限
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage 底层文件读写失败
	ErrStorage = errors.New("storage failure")
)

// wrapStoreErr 业务错误原样返回，其余归为 ErrStorage
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrStorage} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
