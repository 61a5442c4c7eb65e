package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not be a unique violation")
	}
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "users_email_key"`), "") {
		t.Fatal("postgres duplicate key message should match without a constraint name")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email"), "") {
		t.Fatal("sqlite unique failure should match without a constraint name")
	}
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "users_email_key"`), "users_email_key") {
		t.Fatal("named constraint should match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "users_email_key") {
		t.Fatal("unrelated error should not match")
	}
}
