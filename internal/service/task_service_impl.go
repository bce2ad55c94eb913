package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Name = strings.TrimSpace(t.Name)
	t.CreatedAt = time.Now().UTC()
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.tasks.GetByName(ctx, t.Name); err == nil {
		return fmt.Errorf("task %q already exists", t.Name)
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) GetByName(ctx context.Context, name string) (*domain.Task, error) {
	return s.tasks.GetByName(ctx, strings.TrimSpace(name))
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}
