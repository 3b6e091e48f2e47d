package validate

import (
	"testing"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
)

func fieldNames(errs []domain.FieldError) map[string]bool {
	out := make(map[string]bool, len(errs))
	for _, e := range errs {
		out[e.Field] = true
	}
	return out
}

func TestCheckLogin(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     transport.LoginRequest
		badKeys []string
	}{
		{"valid", transport.LoginRequest{Email: "a@x.com", Password: "secret1"}, nil},
		{"bad email", transport.LoginRequest{Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"short password", transport.LoginRequest{Email: "a@x.com", Password: "12345"}, []string{"password"}},
		{"everything missing", transport.LoginRequest{}, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Check(tt.req)
			if len(tt.badKeys) == 0 {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			got := fieldNames(errs)
			for _, key := range tt.badKeys {
				if !got[key] {
					t.Errorf("expected error on %q, got %v", key, errs)
				}
			}
		})
	}
}

func TestCheckRegister(t *testing.T) {
	v := New()

	valid := transport.RegisterRequest{Name: "Ada", Email: "ada@x.com", Password: "secret1"}
	if errs := v.Check(valid); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	short := transport.RegisterRequest{Name: "A", Email: "ada@x.com", Password: "secret1"}
	if errs := v.Check(short); !fieldNames(errs)["name"] {
		t.Fatalf("expected name error, got %v", errs)
	}
}

func TestCheckTaskCreate(t *testing.T) {
	v := New()

	longTitle := make([]byte, 256)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	tests := []struct {
		name    string
		req     transport.TaskCreateRequest
		badKeys []string
	}{
		{"valid minimal", transport.TaskCreateRequest{Title: "T1", Status: "pending", Priority: "low"}, nil},
		{"missing title", transport.TaskCreateRequest{Status: "pending", Priority: "low"}, []string{"title"}},
		{"title too long", transport.TaskCreateRequest{Title: string(longTitle), Status: "pending", Priority: "low"}, []string{"title"}},
		{"bad status", transport.TaskCreateRequest{Title: "T1", Status: "done", Priority: "low"}, []string{"status"}},
		{"bad priority", transport.TaskCreateRequest{Title: "T1", Status: "pending", Priority: "urgent"}, []string{"priority"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Check(tt.req)
			if len(tt.badKeys) == 0 {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			got := fieldNames(errs)
			for _, key := range tt.badKeys {
				if !got[key] {
					t.Errorf("expected error on %q, got %v", key, errs)
				}
			}
		})
	}
}

func TestCheckAcceptsInProgressStatus(t *testing.T) {
	v := New()
	req := transport.TaskCreateRequest{Title: "T1", Status: "in-progress", Priority: "medium"}
	if errs := v.Check(req); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
