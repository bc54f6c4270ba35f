package application

import (
	"context"
	"errors"
	"testing"
)

type contactFixture struct {
	users    *fakeUserRepo
	contacts *fakeContactRepo
	auth     *AuthService
	svc      *ContactService
	aliceID  string
	bobID    string
}

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	contacts := newFakeContactRepo(users)
	auth := newTestAuthService(users)

	alice, err := auth.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", PhoneNumber: "+15550000001", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bob, err := auth.Register(ctx, RegisterInput{
		Name: "Bob", Email: "b@x.com", PhoneNumber: "+15550000002", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	return &contactFixture{
		users:    users,
		contacts: contacts,
		auth:     auth,
		svc:      NewContactService(contacts, users, testLogger()),
		aliceID:  alice.User.ID,
		bobID:    bob.User.ID,
	}
}

func TestAddContactUnknownEmail(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.svc.AddContact(context.Background(), f.aliceID, "ghost@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestAddContactSelf(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.svc.AddContact(context.Background(), f.aliceID, "a@x.com")
	if !errors.Is(err, ErrSelfContact) {
		t.Fatalf("err = %v, want ErrSelfContact", err)
	}
}

func TestAddContactDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newContactFixture(t)

	contact, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com")
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if contact.ID != f.bobID {
		t.Errorf("contact id = %q, want %q", contact.ID, f.bobID)
	}

	_, err = f.svc.AddContact(ctx, f.aliceID, "b@x.com")
	if !errors.Is(err, ErrContactExists) {
		t.Fatalf("second add err = %v, want ErrContactExists", err)
	}
	if n := f.contacts.countPair(f.aliceID, f.bobID); n != 1 {
		t.Errorf("edge count = %d, want 1", n)
	}
}

func TestAddContactConstraintViolationWinsOverPreCheck(t *testing.T) {
	// Simulates two concurrent adds for the same pair both passing the
	// existence pre-check: the store's uniqueness constraint is the
	// authority and must surface as the same conflict error.
	ctx := context.Background()
	f := newContactFixture(t)

	if _, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com"); err != nil {
		t.Fatalf("first add: %v", err)
	}

	f.contacts.existsAlwaysFalse = true
	_, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com")
	if !errors.Is(err, ErrContactExists) {
		t.Fatalf("err = %v, want ErrContactExists", err)
	}
	if n := f.contacts.countPair(f.aliceID, f.bobID); n != 1 {
		t.Errorf("edge count = %d, want 1", n)
	}
}

func TestDeleteContactMissing(t *testing.T) {
	f := newContactFixture(t)

	err := f.svc.DeleteContact(context.Background(), f.aliceID, f.bobID)
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("err = %v, want ErrContactNotFound", err)
	}
}

func TestContactLifecycle(t *testing.T) {
	// Register A and B; A adds B by email, lists it, re-add conflicts,
	// delete succeeds, list is empty again.
	ctx := context.Background()
	f := newContactFixture(t)

	contact, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com")
	if err != nil {
		t.Fatalf("add contact: %v", err)
	}
	if contact.Name != "Bob" || contact.Email != "b@x.com" {
		t.Errorf("contact = %+v, want Bob's public fields", contact)
	}

	list, err := f.svc.GetContacts(ctx, f.aliceID)
	if err != nil {
		t.Fatalf("get contacts: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("contact list length = %d, want 1", len(list))
	}
	got := list[0]
	if got.ID != f.bobID || got.Name != "Bob" || got.Email != "b@x.com" || got.PhoneNumber != "+15550000002" {
		t.Errorf("listing = %+v, want Bob's public fields", got)
	}
	if got.AddedAt.IsZero() {
		t.Error("listing missing AddedAt")
	}

	if _, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com"); !errors.Is(err, ErrContactExists) {
		t.Fatalf("re-add err = %v, want ErrContactExists", err)
	}

	if err := f.svc.DeleteContact(ctx, f.aliceID, f.bobID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	list, err = f.svc.GetContacts(ctx, f.aliceID)
	if err != nil {
		t.Fatalf("get contacts after delete: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("contact list length = %d after delete, want 0", len(list))
	}
}

func TestGetContactsIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newContactFixture(t)

	if _, err := f.svc.AddContact(ctx, f.aliceID, "b@x.com"); err != nil {
		t.Fatalf("add contact: %v", err)
	}

	// Bob never added anyone; the edge is directed.
	list, err := f.svc.GetContacts(ctx, f.bobID)
	if err != nil {
		t.Fatalf("get contacts: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("bob's contact list length = %d, want 0", len(list))
	}
}
