package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate wraps errs.ErrClient so failures surface as 400s, keeping the
// offending fields in the message for logs.
func Validate(i interface{}) error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", errs.ErrClient, strings.Join(fields, ","))
	}

	return fmt.Errorf("%w: %v", errs.ErrClient, err)
}
