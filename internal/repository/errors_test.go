package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/mixtapemassey/site/internal/validate"
)

func TestTranslateCategories(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, ErrDuplicate},
		{"fk violation", &mysql.MySQLError{Number: 1452}, ErrForeignKey},
		{"denied", &mysql.MySQLError{Number: 1142}, ErrUnauthorized},
	}
	for _, tc := range cases {
		if got := translate(tc.in); !errors.Is(got, tc.want) {
			t.Fatalf("%s: translate(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestTranslateWrapsUnknownErrors(t *testing.T) {
	in := errors.New("driver: bad connection")
	got := translate(in)
	if got == nil || !errors.Is(got, in) {
		t.Fatalf("unknown errors must be wrapped, got %v", got)
	}
	for _, cat := range []error{ErrNotFound, ErrDuplicate, ErrForeignKey, ErrUnauthorized} {
		if errors.Is(got, cat) {
			t.Fatalf("unknown error wrongly categorized as %v", cat)
		}
	}
}

func TestTranslatePassesValidationThrough(t *testing.T) {
	ferr := &validate.FieldError{Field: "name", Message: "Name is required"}
	got := translate(ferr)
	var out *validate.FieldError
	if !errors.As(got, &out) || out.Field != "name" {
		t.Fatalf("validation errors must pass through, got %v", got)
	}
}

func TestTranslateNil(t *testing.T) {
	if translate(nil) != nil {
		t.Fatalf("translate(nil) must be nil")
	}
}
