package schedule

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("viewmode", validateViewMode)
}

// ValidationError reports the first field of a state that failed the schema.
type ValidationError struct {
	Field string // path such as "schedules[0].data[2].activities[1].name"
	Rule  string // failed rule, e.g. "required"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// Validate checks every level of the state (state, schedule, day, activity)
// and the cross-record invariants: seven days in canonical order per
// schedule, unique schedule ids, and activity ids unique across the store.
func Validate(s State) error {
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{Field: fieldPath(fe.Namespace()), Rule: ruleOf(fe)}
		}
		return fmt.Errorf("validate state: %w", err)
	}

	scheduleIDs := make(map[string]bool, len(s.Schedules))
	activityIDs := make(map[string]bool)
	for i, sch := range s.Schedules {
		if scheduleIDs[sch.ID] {
			return &ValidationError{Field: fmt.Sprintf("schedules[%d].id", i), Rule: "duplicate " + sch.ID}
		}
		scheduleIDs[sch.ID] = true

		for j, day := range sch.Data {
			if day.Day != Weekdays[j] {
				return &ValidationError{
					Field: fmt.Sprintf("schedules[%d].data[%d].day", i, j),
					Rule:  "expected " + Weekdays[j],
				}
			}
			for k, a := range day.Activities {
				if activityIDs[a.ID] {
					return &ValidationError{
						Field: fmt.Sprintf("schedules[%d].data[%d].activities[%d].id", i, j, k),
						Rule:  "duplicate " + a.ID,
					}
				}
				activityIDs[a.ID] = true
			}
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

func validateWeekday(fl validator.FieldLevel) bool {
	return DayIndex(fl.Field().String()) >= 0
}

func validateViewMode(fl validator.FieldLevel) bool {
	return ViewMode(fl.Field().String()).Valid()
}
