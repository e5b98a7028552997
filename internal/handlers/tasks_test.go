package handlers

import (
	"net/http"
	"testing"

	"swms-backend/internal/models"
)

func TestTaskCompletionError(t *testing.T) {
	cases := []struct {
		name     string
		task     models.Task
		userID   string
		wantCode int
	}{
		{
			name:     "assignee completes assigned task",
			task:     models.Task{AssignedTo: "u1", Status: models.TaskStatusAssigned},
			userID:   "u1",
			wantCode: 0,
		},
		{
			name:     "assignee completes in-progress task",
			task:     models.Task{AssignedTo: "u1", Status: models.TaskStatusInProgress},
			userID:   "u1",
			wantCode: 0,
		},
		{
			name:     "other user is forbidden",
			task:     models.Task{AssignedTo: "u1", Status: models.TaskStatusAssigned},
			userID:   "u2",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "completed task rejects a second completion",
			task:     models.Task{AssignedTo: "u1", Status: models.TaskStatusCompleted},
			userID:   "u1",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := taskCompletionError(tc.task, tc.userID)
			if code != tc.wantCode {
				t.Errorf("taskCompletionError() code = %d, want %d", code, tc.wantCode)
			}
		})
	}
}
