package integrationtests

import (
	"net/http"
	"os"
	"testing"
	"time"

	"bookly/pkg/client"
	"bookly/pkg/model"
)

// These tests hit a running service. Point BOOKINGS_API_URL at it,
// e.g. BOOKINGS_API_URL=http://localhost:8080 go test ./test/...
// They are skipped otherwise.

var bookings *client.BookingClient

func TestMain(t *testing.T) {
	baseURL := os.Getenv("BOOKINGS_API_URL")
	if baseURL == "" {
		t.Skip("BOOKINGS_API_URL not set; skipping integration tests")
	}

	bookings = client.NewBookingClient(baseURL)
	if err := bookings.WaitForHealthy(30 * time.Second); err != nil {
		t.Fatalf("Service never became healthy: %v", err)
	}
	if err := bookings.Login("integration-tester"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	testCreateAndGet(t)
	testOverlapConflict(t)
	testUpdateFlow(t)
	testDeleteFlow(t)
	testAuthRequired(t)
	testValidationMessages(t)
}

func uniqueDate(t *testing.T) string {
	t.Helper()
	// One date per test keeps slots from colliding across runs.
	return time.Now().AddDate(1, 0, randDay()).Format("2006-01-02")
}

var dayCounter int

func randDay() int {
	dayCounter++
	return dayCounter
}

func mustCreate(t *testing.T, b *model.Booking) *model.Booking {
	t.Helper()
	resp, err := bookings.Create(b)
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", resp.StatusCode, string(resp.Body))
	}
	created, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("Failed to decode created booking: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Created booking has no id")
	}
	return created
}

func testCreateAndGet(t *testing.T) {
	date := uniqueDate(t)
	created := mustCreate(t, &model.Booking{
		User: "alice", Date: date, StartTime: "10:00", EndTime: "11:00",
	})

	resp, err := bookings.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	fetched, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("Failed to decode booking: %v", err)
	}
	if fetched.User != "alice" || fetched.StartTime != "10:00" {
		t.Errorf("Fetched booking differs from created: %+v", fetched)
	}

	listResp, err := bookings.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	all, err := bookings.DecodeBookings(listResp)
	if err != nil {
		t.Fatalf("Expected a bare JSON array: %v", err)
	}
	found := false
	for _, b := range all {
		if b.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("Created booking missing from listing")
	}
}

func testOverlapConflict(t *testing.T) {
	date := uniqueDate(t)
	mustCreate(t, &model.Booking{
		User: "alice", Date: date, StartTime: "10:00", EndTime: "11:00",
	})

	resp, err := bookings.Create(&model.Booking{
		User: "bob", Date: date, StartTime: "10:30", EndTime: "11:30",
	})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for overlap, got %d", resp.StatusCode)
	}
	msg, err := bookings.DecodeError(resp)
	if err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if msg != "Time slot is already booked." {
		t.Errorf("Expected conflict message, got %q", msg)
	}

	// Touching slots stay bookable.
	touching, err := bookings.Create(&model.Booking{
		User: "bob", Date: date, StartTime: "11:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if touching.StatusCode != http.StatusCreated {
		t.Errorf("Expected 201 for touching slot, got %d: %s", touching.StatusCode, string(touching.Body))
	}
}

func testUpdateFlow(t *testing.T) {
	date := uniqueDate(t)
	created := mustCreate(t, &model.Booking{
		User: "alice", Date: date, StartTime: "09:00", EndTime: "10:00",
	})

	// Same slot, new user: the record must not conflict with itself.
	resp, err := bookings.Update(created.ID, &model.Booking{
		User: "carol", Date: date, StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, string(resp.Body))
	}
	updated, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("Failed to decode updated booking: %v", err)
	}
	if updated.User != "carol" {
		t.Errorf("Expected user carol, got %q", updated.User)
	}

	missing, err := bookings.Update("507f1f77bcf86cd799439099", &model.Booking{
		User: "carol", Date: date, StartTime: "20:00", EndTime: "21:00",
	})
	if err != nil {
		t.Fatalf("Update request failed: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", missing.StatusCode)
	}
}

func testDeleteFlow(t *testing.T) {
	date := uniqueDate(t)
	created := mustCreate(t, &model.Booking{
		User: "alice", Date: date, StartTime: "13:00", EndTime: "14:00",
	})

	resp, err := bookings.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var deleted struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	if err := resp.DecodeJSON(&deleted); err != nil {
		t.Fatalf("Failed to decode delete response: %v", err)
	}
	if deleted.Message != "Booking deleted successfully." {
		t.Errorf("Expected deletion message, got %q", deleted.Message)
	}
	if deleted.Booking.ID != created.ID {
		t.Errorf("Expected removed booking echoed back, got %+v", deleted.Booking)
	}

	gone, err := bookings.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if gone.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", gone.StatusCode)
	}

	// Slot is free again.
	recreated, err := bookings.Create(&model.Booking{
		User: "bob", Date: date, StartTime: "13:00", EndTime: "14:00",
	})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if recreated.StatusCode != http.StatusCreated {
		t.Errorf("Expected slot reusable after delete, got %d", recreated.StatusCode)
	}
}

func testAuthRequired(t *testing.T) {
	anon := client.NewBookingClient(os.Getenv("BOOKINGS_API_URL"))

	resp, err := anon.Create(&model.Booking{
		User: "mallory", Date: uniqueDate(t), StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected 403 without token, got %d", resp.StatusCode)
	}
	msg, err := anon.DecodeError(resp)
	if err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if msg != "Access denied." {
		t.Errorf("Expected %q, got %q", "Access denied.", msg)
	}

	// Reads stay public.
	list, err := anon.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if list.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for anonymous listing, got %d", list.StatusCode)
	}
}

func testValidationMessages(t *testing.T) {
	date := uniqueDate(t)

	cases := []struct {
		name    string
		booking model.Booking
		wantMsg string
	}{
		{
			name:    "inverted range",
			booking: model.Booking{User: "alice", Date: date, StartTime: "12:00", EndTime: "11:00"},
			wantMsg: "startTime must be earlier than endTime",
		},
		{
			name:    "missing user",
			booking: model.Booking{Date: date, StartTime: "10:00", EndTime: "11:00"},
			wantMsg: "user is required",
		},
		{
			name:    "bad time",
			booking: model.Booking{User: "alice", Date: date, StartTime: "25:00", EndTime: "26:00"},
			wantMsg: "startTime must be a valid HH:MM time",
		},
	}

	for i, tc := range cases {
		resp, err := bookings.Create(&tc.booking)
		if err != nil {
			t.Fatalf("[%d %s] Create request failed: %v", i, tc.name, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("[%d %s] Expected 400, got %d", i, tc.name, resp.StatusCode)
			continue
		}
		msg, err := bookings.DecodeError(resp)
		if err != nil {
			t.Fatalf("[%d %s] Failed to decode error: %v", i, tc.name, err)
		}
		if msg != tc.wantMsg {
			t.Errorf("[%d %s] Expected %q, got %q", i, tc.name, tc.wantMsg, msg)
		}
	}
}
