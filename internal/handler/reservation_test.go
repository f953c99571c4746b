package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/booking"
	"github.com/iliyamo/rental-backoffice/internal/repository"
)

// newTestHandler builds a ReservationHandler whose repositories carry a nil
// database. Only the request validation paths run in these tests; every
// case must fail before the first query.
func newTestHandler() *ReservationHandler {
	return NewReservationHandler(
		repository.NewReservationRepo(nil),
		repository.NewDepartmentRepo(nil),
		repository.NewPlatformRepo(nil),
		booking.Normalizer{USDToARS: 1200},
		false,
	)
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			"missing guest name",
			`{"department_id":1,"check_in":"2026-01-10","check_out":"2026-01-12","amount_ars":1000}`,
		},
		{
			"missing department",
			`{"guest_name":"Ana","check_in":"2026-01-10","check_out":"2026-01-12","amount_ars":1000}`,
		},
		{
			"malformed check_in",
			`{"guest_name":"Ana","department_id":1,"check_in":"not-a-date","check_out":"2026-01-12","amount_ars":1000}`,
		},
		{
			"check_out before check_in",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-12","check_out":"2026-01-10","amount_ars":1000}`,
		},
		{
			"zero-night stay",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-10","check_out":"2026-01-10","amount_ars":1000}`,
		},
		{
			"unknown payment status",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-10","check_out":"2026-01-12","amount_ars":1000,"payment_status":"paid"}`,
		},
		{
			"no amounts at all",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-10","check_out":"2026-01-12"}`,
		},
		{
			"zero amounts",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-10","check_out":"2026-01-12","amount_usd":0,"amount_ars":0}`,
		},
		{
			"deposit exceeds total",
			`{"guest_name":"Ana","department_id":1,"check_in":"2026-01-10","check_out":"2026-01-12","amount_ars":1000,"down_payment_ars":2000}`,
		},
	}

	h := newTestHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-02-30"); err == nil {
		t.Error("impossible calendar date accepted")
	}
	d, err := parseDate("2026-03-05")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("date carries a time component: %v", d)
	}
	ts, err := parseDate("2026-03-05T14:30:00Z")
	if err != nil {
		t.Fatalf("parseDate RFC3339: %v", err)
	}
	if !ts.Equal(d) {
		t.Errorf("timestamp not truncated to date: %v != %v", ts, d)
	}
}
