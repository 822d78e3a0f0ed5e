package models

import "testing"

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Shaun Critzer", "shaun@example.com", "supersecret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if u.Role != ROLE_USER {
		t.Fatalf("new user role = %q, want %q", u.Role, ROLE_USER)
	}
	if u.Status != STATUS_ACTIVE {
		t.Fatalf("new user status = %q, want %q", u.Status, STATUS_ACTIVE)
	}
	if u.Password == "supersecret" {
		t.Fatal("password stored in plain text")
	}
	if !u.CheckPassword("supersecret") {
		t.Fatal("stored hash does not verify the original password")
	}
	if u.CheckPassword("wrong") {
		t.Fatal("wrong password verified")
	}
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"", "shaun@example.com", "supersecret"},
		{"Shaun", "not-an-email", "supersecret"},
		{"Shaun", "shaun@example.com", "short"},
	}

	for _, tt := range tests {
		if _, err := CreateUser(tt.name, tt.email, tt.password); err == nil {
			t.Fatalf("CreateUser(%q, %q, %q) accepted invalid input", tt.name, tt.email, tt.password)
		}
	}
}

func TestUserRoleAndStatus(t *testing.T) {
	u := &User{Role: ROLE_ADMIN, Status: STATUS_ACTIVE}
	if !u.IsAdmin() {
		t.Fatal("admin role not recognized")
	}
	if !u.IsActive() {
		t.Fatal("active status not recognized")
	}

	u = &User{Role: ROLE_USER, Status: STATUS_DISABLED}
	if u.IsAdmin() {
		t.Fatal("plain user reported as admin")
	}
	if u.IsActive() {
		t.Fatal("disabled user reported active")
	}
}
