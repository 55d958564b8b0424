package services

import (
	"scorecard-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoService struct {
	DB *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{DB: db}
}

// CreateTodoInput carries a new todo item.
type CreateTodoInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// GetAllTodos returns every todo, newest first.
func (s *TodoService) GetAllTodos() ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := s.DB.Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, internalError("failed to fetch todos", err)
	}
	return todos, nil
}

// CreateTodo persists a new, uncompleted todo item.
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	if input.Title == "" {
		return nil, validationError("Title is required")
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
	}
	if err := s.DB.Create(todo).Error; err != nil {
		return nil, internalError("failed to create todo", err)
	}
	return todo, nil
}
