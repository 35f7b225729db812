package validator

import (
	"strings"
	"testing"

	"bookly/pkg/logger"
	"bookly/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		User:      "John Doe",
		Date:      "2024-12-05",
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func TestValidate_Accepts(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"standard booking", func(b *model.Booking) {}},
		{"unpadded hour", func(b *model.Booking) { b.StartTime = "9:00"; b.EndTime = "10:00" }},
		{"full day span", func(b *model.Booking) { b.StartTime = "00:00"; b.EndTime = "23:59" }},
		{"date shape without calendar validity", func(b *model.Booking) { b.Date = "2024-13-99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			if err := v.Validate(b); err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name        string
		mutate      func(b *model.Booking)
		wantMessage string
	}{
		{"missing user", func(b *model.Booking) { b.User = "" }, "user is required"},
		{"missing date", func(b *model.Booking) { b.Date = "" }, "date is required"},
		{"date wrong shape", func(b *model.Booking) { b.Date = "05-12-2024" }, "date must match YYYY-MM-DD"},
		{"date with slashes", func(b *model.Booking) { b.Date = "2024/12/05" }, "date must match YYYY-MM-DD"},
		{"start hour out of range", func(b *model.Booking) { b.StartTime = "24:00" }, "startTime must be a valid HH:MM time"},
		{"start minute out of range", func(b *model.Booking) { b.StartTime = "10:75" }, "startTime must be a valid HH:MM time"},
		{"end not a time", func(b *model.Booking) { b.EndTime = "noon" }, "endTime must be a valid HH:MM time"},
		{"start equals end", func(b *model.Booking) { b.StartTime = "11:00"; b.EndTime = "11:00" }, MsgStartBeforeEnd},
		{"start after end", func(b *model.Booking) { b.StartTime = "12:00"; b.EndTime = "11:00" }, MsgStartBeforeEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("Validate() message = %q, want %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestValidate_FailsFastInFieldOrder(t *testing.T) {
	v := newTestValidator(t)

	// Everything is wrong; the user violation must win.
	b := &model.Booking{User: "", Date: "bad", StartTime: "99:99", EndTime: "also bad"}

	err := v.Validate(b)
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "user") {
		t.Errorf("expected the first violated rule (user), got %q", err.Error())
	}
}

func TestValidate_UnpaddedHourOrdering(t *testing.T) {
	v := newTestValidator(t)

	// Lexicographically "9:00" > "10:00"; the structured comparison
	// must accept this interval.
	b := validBooking()
	b.StartTime = "9:00"
	b.EndTime = "10:00"

	if err := v.Validate(b); err != nil {
		t.Fatalf("Validate() rejected 9:00-10:00: %v", err)
	}
	if b.StartTime != "09:00" {
		t.Errorf("startTime not normalized: got %q, want %q", b.StartTime, "09:00")
	}
	if b.EndTime != "10:00" {
		t.Errorf("endTime not normalized: got %q, want %q", b.EndTime, "10:00")
	}
}

func TestValidate_OrderingMessageExact(t *testing.T) {
	v := newTestValidator(t)

	b := validBooking()
	b.StartTime = "12:00"
	b.EndTime = "11:00"

	err := v.Validate(b)
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if err.Error() != "startTime must be earlier than endTime" {
		t.Errorf("ordering message = %q, want the exact documented text", err.Error())
	}
}
