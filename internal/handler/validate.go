package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank: non-empty after trimming surrounding whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// minbytes=N: at least N bytes as received, not runes
	_ = v.RegisterValidation("minbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) >= n
	})
	return v
}

// firstFailure picks the failure to report when several fields are invalid.
// Missing fields win over format errors, which win over policy errors.
func firstFailure(err error) (field, tag string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", ""
	}

	best := verrs[0]
	for _, fe := range verrs[1:] {
		if tagRank(fe.Tag()) < tagRank(best.Tag()) {
			best = fe
		}
	}
	return best.Field(), best.Tag()
}

func tagRank(tag string) int {
	switch tag {
	case "required", "notblank":
		return 0
	case "email":
		return 1
	default:
		return 2
	}
}
