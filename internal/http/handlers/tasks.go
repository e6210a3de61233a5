package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
)

// CreateTask inserts a task and links it to the user given by the user_id
// query parameter. Insert and link happen in one transaction.
func (h *Handler) CreateTask(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user_id"})
		return
	}

	var in service.TaskInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "bad request"})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), in, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			// the source API reported a bad enum as a server error; kept
			// for client compatibility
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Task must be incomplete or complete only"})
		case errors.Is(err, domain.ErrLinkFailed):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Error linking task to user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred: " + err.Error()})
		}
		return
	}

	h.Hub.Publish(userID, ws.Event{Type: ws.EventTaskCreated, TaskID: task.TaskID, Task: task})
	c.JSON(http.StatusOK, task)
}

// ReadTasks returns every task linked to the user. A user with no linked
// tasks gets a 404, not an empty list.
func (h *Handler) ReadTasks(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user_id"})
		return
	}

	tasks, err := h.Tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred: " + err.Error()})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No tasks found for the specified user"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask replaces all mutable fields of the task.
func (h *Handler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid task_id"})
		return
	}

	var in service.TaskInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "bad request"})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), taskID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Task must be incomplete or complete only"})
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred: " + err.Error()})
		}
		return
	}

	if owner, err := h.Tasks.Owner(c.Request.Context(), taskID); err == nil {
		h.Hub.Publish(owner, ws.Event{Type: ws.EventTaskUpdated, TaskID: task.TaskID, Task: task})
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask removes the task. Deleting twice yields a 404 on the second call.
func (h *Handler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid task_id"})
		return
	}

	ctx := c.Request.Context()
	owner, ownerErr := h.Tasks.Owner(ctx, taskID)

	if _, err := h.Tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred: " + err.Error()})
		return
	}

	if ownerErr == nil {
		h.Hub.Publish(owner, ws.Event{Type: ws.EventTaskDeleted, TaskID: taskID})
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Task deleted successfully"})
}
