package store

import (
	"testing"
	"time"
)

func TestTaskCreateAndComplete(t *testing.T) {
	db := openTestDB(t)
	s := NewTaskStore(db)
	event := testEvent(t, db)

	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	task, err := s.Create(event.ID, "Book florist", due)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.IsCompleted {
		t.Error("new task should not be completed")
	}
	if !task.DueDate.Equal(due) {
		t.Errorf("due date = %s, want %s", task.DueDate, due)
	}

	updated, err := s.Update(task.ID, task.Description, due, true)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if !updated.IsCompleted {
		t.Error("task should be completed after update")
	}
}

func TestTaskListByEventOrdersByDueDate(t *testing.T) {
	db := openTestDB(t)
	s := NewTaskStore(db)
	event := testEvent(t, db)

	if _, err := s.Create(event.ID, "Later", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := s.Create(event.ID, "Sooner", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("create task: %v", err)
	}

	tasks, err := s.ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Description != "Sooner" {
		t.Errorf("first task = %q, want %q", tasks[0].Description, "Sooner")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	db := openTestDB(t)
	s := NewTaskStore(db)
	event := testEvent(t, db)

	task, err := s.Create(event.ID, "Send invoices", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	if !task.IsOverdue(now) {
		t.Error("incomplete task past its due date should be overdue")
	}

	done, err := s.Update(task.ID, task.Description, task.DueDate, true)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if done.IsOverdue(now) {
		t.Error("completed task should not be overdue")
	}
}
