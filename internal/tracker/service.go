// Package tracker is the request-facing core of taskflow. Every Service
// method resolves the authenticated user from the context before touching
// storage, and every storage call is scoped to that user, so a missing
// session yields model.ErrNotAuthenticated and a resource owned by someone
// else is indistinguishable from one that does not exist.
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/GokulM8/taskflow/internal/auth"
	"github.com/GokulM8/taskflow/internal/model"
)

// Store is the persistence contract. Project and task methods take the
// acting user's id and must return model.ErrNotFound for rows that user
// does not own.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	CreateProject(ctx context.Context, userID int64, title, description string) (*model.Project, error)
	GetProject(ctx context.Context, projectID, userID int64) (*model.Project, error)
	UpdateProject(ctx context.Context, projectID, userID int64, upd model.ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID, userID int64) error
	ListProjects(ctx context.Context, userID int64) ([]model.ProjectSummary, error)

	CreateTask(ctx context.Context, userID int64, nt model.NewTask) (*model.Task, error)
	GetTask(ctx context.Context, taskID, userID int64) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID, userID int64, upd model.TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) error
	ListTasks(ctx context.Context, userID int64, f model.TaskFilter) ([]model.Task, error)

	Dashboard(ctx context.Context, userID int64) (*model.Dashboard, error)
	RecentActivity(ctx context.Context, userID int64, limit int) ([]model.ActivityEntry, error)
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *model.User) (string, error)
}

type Service struct {
	store  Store
	hasher auth.Hasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func New(store Store, hasher auth.Hasher, tokens TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// RegisterInput is a registration request. Confirm is optional; when set it
// must equal Password.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Register creates a user, storing only the hash of the password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := model.NormalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, model.Invalid("name", "is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, model.Invalid("email", "must be an email address")
	case in.Password == "":
		return nil, model.Invalid("password", "is required")
	case in.Confirm != "" && in.Confirm != in.Password:
		return nil, model.Invalid("confirm", "does not match password")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, model.ErrDuplicateEmail
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return s.store.CreateUser(ctx, name, email, hash)
}

// Authenticate checks an email and password against the stored hash.
// An unknown email still costs one Verify so both failures take as long.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.hasher.Verify(password, s.fallbackHash())
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("taskflow-unknown-user")
	})
	return s.dummyHash
}

// Me returns the authenticated user's record.
func (s *Service) Me(ctx context.Context) (*model.User, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.store.GetUser(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		// a token for a user that no longer exists is not a session
		return nil, model.ErrNotAuthenticated
	}
	return u, err
}
