package tracker

import (
	"context"

	"github.com/GokulM8/taskflow/internal/auth"
	"github.com/GokulM8/taskflow/internal/model"
)

func (s *Service) CreateProject(ctx context.Context, title, description string) (*model.Project, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.CreateProject(ctx, uid, title, description)
}

func (s *Service) Project(ctx context.Context, id int64) (*model.Project, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.GetProject(ctx, id, uid)
}

func (s *Service) UpdateProject(ctx context.Context, id int64, upd model.ProjectUpdate) (*model.Project, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateProject(ctx, id, uid, upd)
}

// DeleteProject deletes a project and all of its tasks.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return err
	}
	return s.store.DeleteProject(ctx, id, uid)
}

func (s *Service) Projects(ctx context.Context) ([]model.ProjectSummary, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListProjects(ctx, uid)
}
