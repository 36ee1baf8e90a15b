package filter

import (
	"fmt"
	"io/fs"

	"github.com/pkg/errors"
)

var (
	ErrInvalidText        = errors.New("text must be a string")
	ErrInvalidFilterWords = errors.New("filter words must be a list of non-empty strings")
	ErrInvalidPath        = errors.New("artifact path must be a non-empty string")
	ErrArtifactNotFound   = fmt.Errorf("artifact not found: %w", fs.ErrNotExist)
	ErrInvalidArtifact    = errors.New("invalid artifact")
	ErrUnexpectedShape    = errors.New("unexpected classifier output shape")
)

// IsTypeError 判断是否为输入类型错误
func IsTypeError(err error) bool {
	return errors.Is(err, ErrInvalidText) ||
		errors.Is(err, ErrInvalidFilterWords) ||
		errors.Is(err, ErrInvalidPath)
}
