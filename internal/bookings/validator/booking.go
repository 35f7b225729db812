package validator

import (
	"errors"
	"fmt"

	"bookly/pkg/logger"
	"bookly/pkg/model"
	"bookly/pkg/timeslot"

	"github.com/go-playground/validator/v10"
)

// MsgStartBeforeEnd is the exact ordering-violation message clients
// test against; keep it byte for byte.
const MsgStartBeforeEnd = "startTime must be earlier than endTime"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Message
}

// BookingValidator checks the structural rules on an incoming booking
// and normalizes its time fields on success.
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("dateshape", validateDateShape); err != nil {
		log.Fatal("Failed to register 'dateshape' validator", "error", err)
	}
	if err := v.RegisterValidation("timeofday", validateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'timeofday' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateDateShape(fl validator.FieldLevel) bool {
	return timeslot.ValidDate(fl.Field().String())
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeslot.ValidTime(fl.Field().String())
}

// Validate checks the booking's fields in declaration order, failing
// fast on the first violation, then enforces startTime < endTime on
// the parsed (hour, minute) values. On success the time fields are
// rewritten to their zero-padded canonical form, so stored bookings
// compare and render consistently.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return v.translate(validationErrs[0])
		}
		return err
	}

	interval, err := timeslot.NewInterval(booking.StartTime, booking.EndTime)
	if err != nil {
		// Unreachable after the tag checks, but a hard failure here
		// beats storing an unparseable time.
		return ValidationError{Field: "startTime", Message: err.Error()}
	}

	if !interval.Start.Before(interval.End) {
		return ValidationError{Field: "startTime", Message: MsgStartBeforeEnd}
	}

	booking.StartTime = interval.Start.String()
	booking.EndTime = interval.End.String()
	return nil
}

// translate renders the first violated rule as a client-facing
// message. Struct field order matches the documented check order:
// user, date, startTime, endTime.
func (v *BookingValidator) translate(err validator.FieldError) ValidationError {
	field := jsonFieldName(err.Field())

	switch err.Tag() {
	case "required":
		return ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	case "dateshape":
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must match YYYY-MM-DD", field)}
	case "timeofday":
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be a valid HH:MM time", field)}
	default:
		return ValidationError{Field: field, Message: err.Error()}
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "User":
		return "user"
	case "Date":
		return "date"
	case "StartTime":
		return "startTime"
	case "EndTime":
		return "endTime"
	default:
		return structField
	}
}
