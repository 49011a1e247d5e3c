package volunteers

import "time"

const DateLayout = "2006-01-02"

type CreateTaskRequest struct {
	TaskName    string  `json:"task_name" binding:"required"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	TaskName    string    `json:"task_name"`
	Description *string   `json:"description"`
	AssignedTo  *string   `json:"assigned_to"`
	DueDate     *string   `json:"due_date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type MutationResponse struct {
	Message string         `json:"message"`
	Task    *TaskResponse  `json:"task,omitempty"`
	Tasks   []TaskResponse `json:"tasks"`
}
