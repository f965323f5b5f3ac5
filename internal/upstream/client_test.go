package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/model"
	"shiftdesk/pkg/requestid"
)

func newTestClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := &config.UpstreamConfig{
		BaseURL:       srv.URL + "/",
		EmployeesPath: "/api/employees",
		ShiftsPath:    "/api/shifts",
		Timeout:       timeout,
	}
	return NewClient(cfg, srv.Client(), zap.NewNop())
}

func TestListShifts_BearerAndArray(t *testing.T) {
	var gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "employeeId": 12, "employee_name": "Ana Gómez", "date": "2024-03-04", "start_time": "08:00", "end_time": "12:30"}]`))
	}, 0)

	shifts, err := c.ListShifts(context.Background(), model.Credential{Token: "tok-123"})
	if err != nil {
		t.Fatalf("ListShifts error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotPath != "/api/shifts" {
		t.Errorf("path = %q", gotPath)
	}
	if len(shifts) != 1 || shifts[0].EmployeeID != "12" || shifts[0].EmployeeName != "Ana Gómez" {
		t.Errorf("unexpected shifts: %+v", shifts)
	}
}

func TestForwardsRequestID(t *testing.T) {
	var gotRID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRID = r.Header.Get(requestid.Header)
		w.Write([]byte(`[]`))
	}, 0)

	ctx := requestid.With(context.Background(), "rid-42")
	if _, err := c.ListEmployees(ctx, model.Credential{Token: "x"}); err != nil {
		t.Fatalf("ListEmployees error: %v", err)
	}
	if gotRID != "rid-42" {
		t.Errorf("X-Request-ID = %q, want rid-42", gotRID)
	}
}

func TestListEmployees_Envelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 0, "data": [{"id": 7, "user_id": "u-7", "name": "Luis", "department": "Ventas"}]}`))
	}, 0)

	emps, err := c.ListEmployees(context.Background(), model.Credential{Token: "x"})
	if err != nil {
		t.Fatalf("ListEmployees error: %v", err)
	}
	if len(emps) != 1 || emps[0].ID != "7" || emps[0].AccountID != "u-7" || emps[0].Department != "Ventas" {
		t.Errorf("unexpected employees: %+v", emps)
	}
}

func TestNoCredential_NoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, 0)

	shifts, err := c.ListShifts(context.Background(), model.Credential{})
	if err != nil {
		t.Fatalf("ListShifts error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
	if len(shifts) != 0 {
		t.Errorf("len = %d, want 0", len(shifts))
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401", http.StatusUnauthorized, `{"message":"expired"}`, ErrUnauthorized},
		{"403", http.StatusForbidden, ``, ErrUnauthorized},
		{"500", http.StatusInternalServerError, `boom`, ErrUnexpectedStatus},
		{"invalid json", http.StatusOK, `{not json`, ErrDecode},
		{"no list", http.StatusOK, `{"total": 3}`, ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, 0)
			_, err := c.ListEmployees(context.Background(), model.Credential{Token: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.Write([]byte(`[]`))
	}, 50*time.Millisecond)

	_, err := c.ListShifts(context.Background(), model.Credential{Token: "x"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		body string
		n    int
	}{
		{``, 0},
		{`[]`, 0},
		{`{"data": null}`, 0},
		{`{"data": {"items": [{"a": 1}, {"a": 2}]}}`, 2},
		{`{"results": [{"a": 1}]}`, 1},
	}
	for _, tt := range tests {
		got, err := decodeList([]byte(tt.body))
		if err != nil {
			t.Errorf("decodeList(%q) error: %v", tt.body, err)
			continue
		}
		if len(got) != tt.n {
			t.Errorf("decodeList(%q) len = %d, want %d", tt.body, len(got), tt.n)
		}
	}
}
