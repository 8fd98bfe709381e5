package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, event_id, description, due_date, is_completed`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var dueDate string
	var completed int

	err := scanner.Scan(&t.ID, &t.EventID, &t.Description, &dueDate, &completed)
	if err != nil {
		return nil, err
	}

	due, err := time.Parse(dayFormat, dueDate)
	if err != nil {
		return nil, fmt.Errorf("parse due date: %w", err)
	}
	t.DueDate = due
	t.IsCompleted = completed != 0
	return &t, nil
}

func (s *TaskStore) Create(eventID, description string, dueDate time.Time) (*model.Task, error) {
	result, err := s.db.Exec(
		`INSERT INTO tasks (event_id, description, due_date) VALUES (?, ?, ?)`,
		eventID, description, dueDate.Format(dayFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) ListByEvent(eventID string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE event_id = ? ORDER BY due_date, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id int64, description string, dueDate time.Time, isCompleted bool) (*model.Task, error) {
	var completed int
	if isCompleted {
		completed = 1
	}

	_, err := s.db.Exec(
		`UPDATE tasks SET description = ?, due_date = ?, is_completed = ? WHERE id = ?`,
		description, dueDate.Format(dayFormat), completed, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
