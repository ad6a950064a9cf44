package storage

import (
	"fmt"

	"leadcapture_backend/platform/apperr"
)

const (
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"
	CodeFileTooLarge           = "FILE_TOO_LARGE"
)

func unsupportedContentTypeError(contentType string) *apperr.Error {
	return apperr.Validation(
		CodeUnsupportedContentType,
		fmt.Sprintf("content type %q is not allowed", contentType),
	)
}

func fileTooLargeError(size, limit int64) *apperr.Error {
	return apperr.Validation(
		CodeFileTooLarge,
		fmt.Sprintf("file size %d exceeds the limit of %d bytes", size, limit),
	)
}
