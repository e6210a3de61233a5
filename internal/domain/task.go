package domain

import "time"

// Task statuses. A task is either done or it is not; anything else is
// rejected at the service layer.
const (
	StatusIncomplete = "Incomplete"
	StatusComplete   = "Complete"
)

func ValidStatus(s string) bool {
	return s == StatusIncomplete || s == StatusComplete
}

type Task struct {
	TaskID      int64     `db:"task_id" json:"task_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueDate     Date      `db:"due_date" json:"due_date"`
	Status      string    `db:"status" json:"status"`
	IsImportant bool      `db:"is_important" json:"is_important"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Link associates a task with its owning user. One owning user per task:
// relinking a task moves it rather than sharing it.
type Link struct {
	TaskID int64 `db:"task_id" json:"task_id"`
	UserID int64 `db:"user_id" json:"user_id"`
}
