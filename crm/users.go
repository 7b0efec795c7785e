package crm

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynamicform/pkg/store"
)

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("crm: not found")

// User is an application account. The password hash never serializes.
type User struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`

	passwordHash string
}

// Record flattens the user for table and detail rendering.
func (u User) Record() map[string]any {
	return map[string]any{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"role":    u.Role,
		"status":  u.Status,
		"created": u.Created.Format(time.RFC3339),
	}
}

// UserInput carries the mutable user attributes for create and update calls.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

// UserService keeps accounts in an observable in-memory store. Subscribers
// see the full user list on every mutation.
type UserService struct {
	users *store.Store[[]User]
}

// NewUserService constructs an empty user service.
func NewUserService() *UserService {
	return &UserService{users: store.New([]User(nil))}
}

// List returns users ordered by name.
func (s *UserService) List() []User {
	users := append([]User(nil), s.users.Get()...)
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// Get returns the user with the given id.
func (s *UserService) Get(id string) (User, bool) {
	for _, user := range s.users.Get() {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}

// FindByEmail returns the user with the given email, case-insensitively.
func (s *UserService) FindByEmail(email string) (User, bool) {
	for _, user := range s.users.Get() {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return User{}, false
}

// Create adds a user and returns it with its generated id.
func (s *UserService) Create(input UserInput) (User, error) {
	if _, exists := s.FindByEmail(input.Email); exists {
		return User{}, errors.New("crm: email already registered")
	}
	user := User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		Status:       input.Status,
		Created:      time.Now().UTC(),
		passwordHash: HashPassword(input.Password),
	}
	s.users.Update(func(users []User) []User {
		return append(users, user)
	})
	return user, nil
}

// Update replaces the mutable attributes of a user. An empty password keeps
// the current one.
func (s *UserService) Update(id string, input UserInput) (User, error) {
	var updated User
	found := false
	s.users.Update(func(users []User) []User {
		out := make([]User, len(users))
		copy(out, users)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			out[i].Name = input.Name
			out[i].Email = input.Email
			out[i].Role = input.Role
			out[i].Status = input.Status
			if input.Password != "" {
				out[i].passwordHash = HashPassword(input.Password)
			}
			updated = out[i]
			found = true
		}
		return out
	})
	if !found {
		return User{}, ErrNotFound
	}
	return updated, nil
}

// SetPassword stores a new password for the user.
func (s *UserService) SetPassword(id, password string) error {
	found := false
	s.users.Update(func(users []User) []User {
		out := make([]User, len(users))
		copy(out, users)
		for i := range out {
			if out[i].ID == id {
				out[i].passwordHash = HashPassword(password)
				found = true
			}
		}
		return out
	})
	if !found {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user.
func (s *UserService) Delete(id string) error {
	found := false
	s.users.Update(func(users []User) []User {
		out := users[:0:0]
		for _, user := range users {
			if user.ID == id {
				found = true
				continue
			}
			out = append(out, user)
		}
		return out
	})
	if !found {
		return ErrNotFound
	}
	return nil
}

// Subscribe registers a listener for user list changes and returns its cancel
// function.
func (s *UserService) Subscribe(fn func([]User)) func() {
	return s.users.Subscribe(fn)
}
