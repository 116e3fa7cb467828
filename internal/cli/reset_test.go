package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubResetStore struct {
	users   map[string]models.User
	updated map[uint]string
}

func newStubResetStore(users ...models.User) *stubResetStore {
	store := &stubResetStore{users: map[string]models.User{}, updated: map[uint]string{}}
	for _, user := range users {
		store.users[user.Email] = user
	}
	return store
}

func (store *stubResetStore) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := store.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (store *stubResetStore) UpdatePasswordHash(userID uint, passwordHash string) error {
	store.updated[userID] = passwordHash
	return nil
}

func TestGenerateTemporaryPasswordMeetsLoginPolicy(t *testing.T) {
	t.Parallel()

	for _, length := range []int{4, 12, 24} {
		password, err := generateTemporaryPassword(length)
		if err != nil {
			t.Fatalf("generateTemporaryPassword(%d) returned error: %v", length, err)
		}
		want := length
		if want < 8 {
			want = 8
		}
		if len(password) != want {
			t.Fatalf("generateTemporaryPassword(%d) len = %d, want %d", length, len(password), want)
		}
		if err := services.ValidatePasswordStrength(password); err != nil {
			t.Fatalf("password %q does not satisfy the login policy", password)
		}
		for _, char := range password {
			if !strings.ContainsRune(temporaryPasswordAlphabet, char) {
				t.Fatalf("password %q contains char %q outside alphabet", password, char)
			}
		}
	}
}

func TestResetPasswordGeneratesTemporaryPassword(t *testing.T) {
	store := newStubResetStore(models.User{ID: 7, Email: "mina@example.com"})
	var out bytes.Buffer

	if err := ResetPassword(store, ResetPasswordOptions{Email: " Mina@Example.com ", Out: &out}); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	hash, ok := store.updated[7]
	if !ok {
		t.Fatalf("expected password hash to be stored")
	}
	output := out.String()
	marker := "Temporary password: "
	index := strings.Index(output, marker)
	if index < 0 {
		t.Fatalf("expected temporary password in output, got %q", output)
	}
	password := strings.TrimSpace(output[index+len(marker):])
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		t.Fatalf("stored hash does not match printed password")
	}
}

func TestResetPasswordPromptValidatesStrength(t *testing.T) {
	original := readPassword
	t.Cleanup(func() { readPassword = original })

	store := newStubResetStore(models.User{ID: 3, Email: "jun@example.com"})

	readPassword = func(*os.File) ([]byte, error) { return []byte("short\n"), nil }
	err := ResetPassword(store, ResetPasswordOptions{Email: "jun@example.com", Prompt: true, Out: &bytes.Buffer{}})
	if !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("expected weak password error, got %v", err)
	}
	if len(store.updated) != 0 {
		t.Fatalf("weak password must not be stored")
	}

	readPassword = func(*os.File) ([]byte, error) { return []byte("river2sea"), nil }
	var out bytes.Buffer
	if err := ResetPassword(store, ResetPasswordOptions{Email: "jun@example.com", Prompt: true, Out: &out}); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(store.updated[3]), []byte("river2sea")) != nil {
		t.Fatalf("expected prompted password to be stored")
	}
	if strings.Contains(out.String(), "river2sea") {
		t.Fatalf("prompted password must not be echoed")
	}
}

func TestResetPasswordErrors(t *testing.T) {
	store := newStubResetStore()

	tests := []struct {
		name  string
		email string
	}{
		{name: "blank email", email: " "},
		{name: "invalid email", email: "nobody"},
		{name: "unknown user", email: "ghost@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ResetPassword(store, ResetPasswordOptions{Email: tt.email, Out: &bytes.Buffer{}}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReadLineTrimsLineEnding(t *testing.T) {
	tests := map[string]string{
		"secret1\r\n":       "secret1",
		"secret2\n":         "secret2",
		"no-newline3":       "no-newline3",
		"first4\nsecond5\n": "first4",
	}
	for input, want := range tests {
		got, err := readLine(strings.NewReader(input))
		if err != nil {
			t.Fatalf("readLine(%q): %v", input, err)
		}
		if string(got) != want {
			t.Fatalf("readLine(%q) = %q, want %q", input, got, want)
		}
	}
}
