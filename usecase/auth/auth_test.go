package auth

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/taskflow/backend/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash, name string) (*domain.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now()
	user := &domain.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.nextID++
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(context.Context) ([]domain.PublicUser, error) {
	var users []domain.PublicUser
	for _, u := range f.byEmail {
		users = append(users, u.Public())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	uc := New(newFakeUserRepo(), nil)
	ctx := context.Background()

	user, err := uc.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}

	got, err := uc.Authenticate(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user id = %d, want %d", got.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := New(newFakeUserRepo(), nil)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Different name and password must not matter.
	_, err := uc.Register(ctx, "B", "a@x.com", "another-pass")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	uc := New(newFakeUserRepo(), nil)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPass := uc.Authenticate(ctx, "a@x.com", "wrong")
	_, unknownEmail := uc.Authenticate(ctx, "nobody@x.com", "secret1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatal("failure modes are distinguishable")
	}
}

func TestEmailIsCanonicalized(t *testing.T) {
	uc := New(newFakeUserRepo(), nil)
	ctx := context.Background()

	user, err := uc.Register(ctx, "A", "  A@X.Com ", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("stored email = %q", user.Email)
	}

	if _, err := uc.Authenticate(ctx, "A@X.COM", "secret1"); err != nil {
		t.Fatalf("authenticate with differently-cased email: %v", err)
	}

	if _, err := uc.Register(ctx, "B", "a@X.com", "secret2"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("case variant registered twice: %v", err)
	}
}
