package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestInsertAssignsMonotonicIDsAcrossTables(t *testing.T) {
	s := New()

	userID := s.Users.Insert(&models.User{Username: "ada", Email: "ada@example.com"})
	productID := s.Products.Insert(&models.Product{Title: "Lamp", Category: enums.CategoryHomeGarden, Price: decimal.NewFromInt(10), SellerID: userID})
	entryID := s.CartEntries.Insert(&models.CartEntry{UserID: userID, ProductID: productID})

	if userID != 1 || productID != 2 || entryID != 3 {
		t.Fatalf("expected ids 1,2,3 got %d,%d,%d", userID, productID, entryID)
	}
}

func TestInsertStampsTimestamps(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(start)))

	id := s.Users.Insert(&models.User{Username: "ada"})
	user, ok := s.Users.Get(id)
	if !ok {
		t.Fatal("expected user to exist")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be stamped")
	}
	if !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatal("created_at and updated_at should match on insert")
	}
}

func TestUpdateMergesAndRestamps(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(start)))

	id := s.Users.Insert(&models.User{Username: "ada", Email: "ada@example.com"})
	changed := s.Users.Update(id, func(u *models.User) {
		u.Username = "lovelace"
	})
	if changed != 1 {
		t.Fatalf("expected changed count 1, got %d", changed)
	}

	user, _ := s.Users.Get(id)
	if user.Username != "lovelace" {
		t.Fatalf("expected username update, got %q", user.Username)
	}
	if user.Email != "ada@example.com" {
		t.Fatal("untouched fields must survive an update")
	}
	if !user.UpdatedAt.After(user.CreatedAt) {
		t.Fatal("updated_at should be re-stamped")
	}

	if changed := s.Users.Update(999, func(u *models.User) {}); changed != 0 {
		t.Fatalf("missing id should report 0 changes, got %d", changed)
	}
}

func TestDeleteReportsChangedCount(t *testing.T) {
	s := New()
	id := s.Users.Insert(&models.User{Username: "ada"})

	if changed := s.Users.Delete(id); changed != 1 {
		t.Fatalf("expected 1 change, got %d", changed)
	}
	if changed := s.Users.Delete(id); changed != 0 {
		t.Fatalf("expected 0 changes on repeat delete, got %d", changed)
	}
	if _, ok := s.Users.Get(id); ok {
		t.Fatal("deleted row should be gone")
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		s.Users.Insert(&models.User{Username: name})
	}
	s.Users.Delete(2)

	users := s.Users.List(nil)
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	got := []string{users[0].Username, users[1].Username, users[2].Username}
	want := []string{"a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestFirstMatchesInInsertionOrder(t *testing.T) {
	s := New()
	s.Users.Insert(&models.User{Username: "ada", IsVerified: true})
	s.Users.Insert(&models.User{Username: "grace", IsVerified: true})

	user, ok := s.Users.First(func(u *models.User) bool { return u.IsVerified })
	if !ok || user.Username != "ada" {
		t.Fatalf("expected first verified user ada, got %+v ok=%v", user, ok)
	}

	if _, ok := s.Users.First(func(u *models.User) bool { return u.Username == "nobody" }); ok {
		t.Fatal("expected no match")
	}
}

func TestDeleteWhereRemovesAllMatches(t *testing.T) {
	s := New()
	productID := int64(42)
	s.CartEntries.Insert(&models.CartEntry{UserID: 1, ProductID: productID})
	s.CartEntries.Insert(&models.CartEntry{UserID: 2, ProductID: productID})
	s.CartEntries.Insert(&models.CartEntry{UserID: 1, ProductID: 7})

	removed := s.CartEntries.DeleteWhere(func(e *models.CartEntry) bool {
		return e.ProductID == productID
	})
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if s.CartEntries.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", s.CartEntries.Len())
	}
	left := s.CartEntries.List(nil)
	if left[0].ProductID != 7 {
		t.Fatalf("wrong survivor: %+v", left[0])
	}
}

func TestReadWriteLockBoundary(t *testing.T) {
	s := New()
	err := s.Write(func() error {
		s.Users.Insert(&models.User{Username: "ada"})
		s.Products.Insert(&models.Product{Title: "Lamp", SellerID: 1})
		return nil
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var count int
	err = s.Read(func() error {
		count = s.Users.Len() + s.Products.Len()
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
}
