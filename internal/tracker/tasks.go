package tracker

import (
	"context"

	"github.com/GokulM8/taskflow/internal/auth"
	"github.com/GokulM8/taskflow/internal/model"
)

func (s *Service) CreateTask(ctx context.Context, nt model.NewTask) (*model.Task, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.CreateTask(ctx, uid, nt)
}

func (s *Service) Task(ctx context.Context, id int64) (*model.Task, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.GetTask(ctx, id, uid)
}

func (s *Service) UpdateTask(ctx context.Context, id int64, upd model.TaskUpdate) (*model.Task, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateTask(ctx, id, uid, upd)
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, id, uid)
}

func (s *Service) Tasks(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx, uid, f)
}

func (s *Service) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.Dashboard(ctx, uid)
}

func (s *Service) Activity(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	uid, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.RecentActivity(ctx, uid, limit)
}
