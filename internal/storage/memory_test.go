package storage

import (
	"context"
	"testing"

	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	usermodel "github.com/trinitynoble/BudgetBuddyProject/internal/models/user"
)

func newTestUser(t *testing.T, store *MemoryUserStore, email string) *usermodel.User {
	t.Helper()

	u, err := store.Create(context.Background(), &usermodel.CreateUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Phone:     "+1 555 000 1111",
	}, "hashed")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryUserStore()
	newTestUser(t, store, "ada@example.com")

	_, err := store.Create(context.Background(), &usermodel.CreateUserRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ada@example.com",
		Phone:     "+1 555 222 3333",
	}, "hashed2")
	if err != ErrDuplicateEmail {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestMemoryUserStore_GetByEmail_Absent(t *testing.T) {
	store := NewMemoryUserStore()

	u, err := store.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u != nil {
		t.Errorf("GetByEmail() = %+v, want nil for absent user", u)
	}
}

func TestMemoryUserStore_UpdatePassword_BumpsTokenVersion(t *testing.T) {
	store := NewMemoryUserStore()
	created := newTestUser(t, store, "ada@example.com")

	ok, err := store.UpdatePassword(context.Background(), "ada@example.com", "rehashed")
	if err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}
	if !ok {
		t.Fatal("UpdatePassword() = false, want true")
	}

	updated, err := store.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if updated.PasswordHash != "rehashed" {
		t.Errorf("PasswordHash = %q, want %q", updated.PasswordHash, "rehashed")
	}
	if updated.TokenVersion != created.TokenVersion+1 {
		t.Errorf("TokenVersion = %d, want %d", updated.TokenVersion, created.TokenVersion+1)
	}
}

func TestMemoryRecordStore_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecordStore()

	mine, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 50, Description: "Groceries", Date: "2025-01-15"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "user-b", &models.RecordInput{Amount: 75, Description: "Fuel", Date: "2025-01-16"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	listed, err := store.ListByUser(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(listed) != 1 || listed[0].ID != mine.ID {
		t.Errorf("ListByUser() returned %d records, want only record %d", len(listed), mine.ID)
	}

	got, err := store.GetOwned(ctx, mine.ID, "user-b")
	if err != nil {
		t.Fatalf("GetOwned() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetOwned() with other owner = %+v, want nil", got)
	}
}

func TestMemoryRecordStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecordStore()

	rec, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 10, Description: "Coffee", Date: "2025-02-01"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ok, err := store.Delete(ctx, rec.ID, "user-a")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Fatal("Delete() = false, want true")
	}

	ok, err = store.Delete(ctx, rec.ID, "user-a")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok {
		t.Error("second Delete() = true, want false")
	}
}

func TestMemoryRecordStore_Latest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecordStore()

	if rec, err := store.Latest(ctx, "user-a"); err != nil || rec != nil {
		t.Fatalf("Latest() on empty store = %+v, %v; want nil, nil", rec, err)
	}

	if _, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 10, Description: "First", Date: "2025-02-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 20, Description: "Second", Date: "2025-02-02"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	latest, err := store.Latest(ctx, "user-a")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Errorf("Latest() = %+v, want record %d", latest, second.ID)
	}
}

func TestMemoryRecordStore_Search(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecordStore()

	if _, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 42.5, Description: "Grocery run", Date: "2025-03-10"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "user-a", &models.RecordInput{Amount: 99, Description: "Rent", Date: "2025-03-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "user-b", &models.RecordInput{Amount: 42.5, Description: "Grocery run", Date: "2025-03-10"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"matches description case-insensitively", "grocery", 1},
		{"matches amount text", "42.5", 1},
		{"matches date fragment", "2025-03", 2},
		{"no match", "vacation", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, "user-a", tt.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d records, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestMemoryRecordStore_CreateWithVanishedUser(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()
	store := NewMemoryRecordStore().WithUsers(users)

	u := newTestUser(t, users, "ada@example.com")
	users.Delete(ctx, u.ID)

	_, err := store.Create(ctx, u.ID, &models.RecordInput{Amount: 5, Description: "Ghost", Date: "2025-04-01"})
	if err != ErrUserVanished {
		t.Errorf("Create() error = %v, want ErrUserVanished", err)
	}
}
