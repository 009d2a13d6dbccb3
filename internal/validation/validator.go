package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"

	"pdf-quiz/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const (
	// PDFMimeType is the only content type accepted for uploads.
	PDFMimeType = "application/pdf"

	msgMissingFile     = "Please select a PDF file"
	msgInvalidFileType = "Invalid file type"
)

// Validator provides request validation functionality
type Validator struct {
	structs *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{structs: v}
}

// ValidateUpload checks that a file was supplied and declares itself as a PDF.
func (v *Validator) ValidateUpload(file *multipart.FileHeader) domain.ValidationErrors {
	if file == nil {
		return domain.ValidationErrors{domain.NewFieldError("pdf", msgMissingFile)}
	}
	if file.Header.Get("Content-Type") != PDFMimeType {
		return domain.ValidationErrors{domain.NewFieldError("pdf", msgInvalidFileType)}
	}
	return nil
}

// ValidateContent sniffs the leading bytes of an upload for the PDF signature.
func (v *Validator) ValidateContent(data []byte) domain.ValidationErrors {
	if !mimetype.Detect(data).Is(PDFMimeType) {
		return domain.ValidationErrors{domain.NewFieldError("pdf", msgInvalidFileType)}
	}
	return nil
}

// ValidateStruct runs the `validate` tags of a request body.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.structs.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(err.Error())
	}

	var errs domain.ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, domain.NewFieldError(fe.Field(), fieldMessage(fe)))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
