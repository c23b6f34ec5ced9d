package http

import (
	"reflect"
	"regexp"
	"strings"

	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/upload"
	"asset-approval-backend/internal/domain/user"
	ucUser "asset-approval-backend/internal/usecase/user"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var reUsage = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
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

	_ = v.RegisterValidation("submissiontype", func(fl validator.FieldLevel) bool {
		return approval.SubmissionType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("approvalstatus", func(fl validator.FieldLevel) bool {
		return approval.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return user.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("socialnetwork", func(fl validator.FieldLevel) bool {
		return ucUser.SocialNetwork(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("uploadkind", func(fl validator.FieldLevel) bool {
		return upload.Kind(fl.Field().String()).Valid()
	})
	// folder-safe upload usage
	_ = v.RegisterValidation("usage", func(fl validator.FieldLevel) bool {
		return reUsage.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
// Field is the dotted json path, e.g. "signatures.0.email".
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := fieldPath(e.Namespace())
		var msg string
		switch e.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "url":
			msg = "must be a valid URL"
		case "min":
			msg = "must be at least " + e.Param() + " characters"
		case "max":
			msg = "must be at most " + e.Param() + " characters"
		case "eqfield":
			msg = "must match " + lowerFirst(e.Param())
		case "gte":
			msg = "must be greater than or equal to " + e.Param()
		case "lte":
			msg = "must be less than or equal to " + e.Param()
		case "submissiontype":
			msg = "must be one of ASSIGNMENT, MAINTENANCE, WRITE_OFF, PROCUREMENT"
		case "approvalstatus":
			msg = "must be one of DRAFT, WAITING_APPROVAL, DONE, REJECT"
		case "role":
			msg = "must be one of STAFF, GA, COORDINATOR, LEAD, MANAGER"
		case "socialnetwork":
			msg = "must be one of FACEBOOK, INSTAGRAM, TWITTER, LINKEDIN"
		case "uploadkind":
			msg = "must be image or file"
		case "usage":
			msg = "may only contain letters, digits, '-' and '_'"
		default:
			msg = e.Tag() + " validation failed"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldPath turns "createApprovalReq.signatures[0].email" into "signatures.0.email".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// fieldErrorMap groups messages by field, the shape clients get in data.
func fieldErrorMap(list []FieldError) map[string][]string {
	out := make(map[string][]string, len(list))
	for _, e := range list {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}
