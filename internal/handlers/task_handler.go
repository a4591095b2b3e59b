package handlers

import (
	"net/http"

	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService    services.TaskService
	commentService services.CommentService
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService, commentService services.CommentService) *TaskHandler {
	return &TaskHandler{
		BaseHandler:    base,
		taskService:    taskService,
		commentService: commentService,
	}
}

func (h *TaskHandler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("/:projectId/tasks", h.ListTasks)
		projects.POST("/:projectId/tasks", h.CreateTask)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("/:taskId", h.GetTask)
		tasks.PUT("/:taskId", h.UpdateTask)
		tasks.DELETE("/:taskId", h.DeleteTask)

		tasks.GET("/:taskId/comments", h.ListComments)
		tasks.POST("/:taskId/comments", h.CreateComment)
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(h.GetDB(c), c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(h.GetDB(c), c.Param("projectId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(h.GetDB(c), c.Param("taskId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(h.GetDB(c), c.Param("taskId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(h.GetDB(c), c.Param("taskId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ---------------- Comments ----------------

func (h *TaskHandler) ListComments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByTask(h.GetDB(c), c.Param("taskId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *TaskHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Add(h.GetDB(c), c.Param("taskId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
