package service

import (
	"fmt"

	"leadcapture_backend/platform/apperr"
)

const (
	CodePrinterAlreadyExists = "PRINTER_ALREADY_EXISTS"
	CodeInvalidPrinterName   = "INVALID_PRINTER_NAME"
)

func printerAlreadyExistsError(slug string) *apperr.Error {
	return apperr.Conflict(
		CodePrinterAlreadyExists,
		fmt.Sprintf("a printer with slug %q already exists", slug),
	).WithDetails(map[string]string{"slug": slug})
}

func invalidPrinterNameError(name string) *apperr.Error {
	return apperr.Validation(
		CodeInvalidPrinterName,
		fmt.Sprintf("printer name %q does not contain any slug-safe characters", name),
	)
}
