package handlers

import (
	"net/http"

	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService    services.ProjectService
	memberService     services.MemberService
	discussionService services.DiscussionService
}

func NewProjectHandler(
	base *BaseHandler,
	projectService services.ProjectService,
	memberService services.MemberService,
	discussionService services.DiscussionService,
) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:       base,
		projectService:    projectService,
		memberService:     memberService,
		discussionService: discussionService,
	}
}

func (h *ProjectHandler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:projectId", h.GetProject)
		projects.PUT("/:projectId", h.UpdateProject)
		projects.DELETE("/:projectId", h.DeleteProject)
		projects.GET("/:projectId/dashboard", h.GetDashboard)

		projects.GET("/:projectId/members", h.ListMembers)
		projects.POST("/:projectId/members", h.AddMember)
		projects.DELETE("/:projectId/members", h.RemoveMember)

		projects.GET("/:projectId/discussions", h.ListDiscussions)
		projects.POST("/:projectId/discussions", h.CreateDiscussion)
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(h.GetDB(c), c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(h.GetDB(c), c.Param("projectId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(h.GetDB(c), c.Param("projectId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.projectService.Dashboard(h.GetDB(c), c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ---------------- Members ----------------

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	members, err := h.memberService.List(h.GetDB(c), c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	member, err := h.memberService.Add(h.GetDB(c), c.Param("projectId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RemoveMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.memberService.Remove(h.GetDB(c), c.Param("projectId"), userID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// ---------------- Discussions ----------------

func (h *ProjectHandler) ListDiscussions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	discussions, err := h.discussionService.ListByProject(h.GetDB(c), c.Param("projectId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, discussions)
}

func (h *ProjectHandler) CreateDiscussion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDiscussionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	discussion, err := h.discussionService.Add(h.GetDB(c), c.Param("projectId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, discussion)
}
