package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/pagination"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing competition",
			err:      &domain.NotFoundError{Kind: "competition", ID: "42"},
			wantCode: "COMP001",
		},
		{
			name:     "wrapped missing athlete",
			err:      fmt.Errorf("athlete statistics x: %w", &domain.NotFoundError{Kind: "athlete", ID: "x"}),
			wantCode: "ATH001",
		},
		{
			name:     "malformed id",
			err:      &domain.ValidationError{Field: "id", Message: "invalid id abc"},
			wantCode: "VAL001",
		},
		{
			name:     "unknown filter value",
			err:      &domain.ValidationError{Field: "status", Message: "unknown request status X"},
			wantCode: "VAL002",
		},
		{
			name:     "negative page size",
			err:      pagination.ErrInvalidPageSize,
			wantCode: "VAL002",
		},
		{
			name:     "export slots busy",
			err:      ErrExportBusy,
			wantCode: "EXP001",
		},
		{
			name:     "export failure",
			err:      errors.New("export failed: font missing"),
			wantCode: "EXP002",
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp: connection refused"),
			wantCode: "DB004",
		},
		{
			name:     "deadline",
			err:      errors.New("list competitions: context deadline exceeded"),
			wantCode: "DB006",
		},
		{
			name:     "rate limit",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "case insensitive matching",
			err:      errors.New("dial tcp: CONNECTION REFUSED"),
			wantCode: "DB004",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() message is empty")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &domain.NotFoundError{Kind: "competition", ID: "42"}

	want := "Заявка не найдена (Код: COMP001). Вернитесь к списку соревнований и выберите другую заявку"
	if got := FormatUserError(err); got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrExportBusy, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	techErr := fmt.Errorf("get request: %w", &domain.NotFoundError{Kind: "competition", ID: "42"})
	userErr := NewUserError(techErr)

	if userErr.Error() != "Заявка не найдена" {
		t.Errorf("Error() = %q, want user message", userErr.Error())
	}
	if !errors.Is(userErr, techErr) {
		t.Error("Unwrap() should return original error")
	}

	var nf *domain.NotFoundError
	if !errors.As(userErr, &nf) {
		t.Error("typed error should stay reachable through UserError")
	}
}
