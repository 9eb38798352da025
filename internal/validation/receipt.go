package validation

import (
	"errors"
	"path/filepath"
	"strings"
)

const MaxReceiptSize = 10 << 20 // 10 MB

var receiptExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// ValidateReceipt checks the uploaded receipt's size and file extension.
func ValidateReceipt(filename string, size int64) error {
	if size <= 0 {
		return errors.New("receipt file is empty")
	}

	if size > MaxReceiptSize {
		return errors.New("receipt file is too large (max 10 MB)")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := receiptExtensions[ext]; !ok {
		return errors.New("unsupported receipt type (pdf, png, jpg, webp)")
	}

	return nil
}
