package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GokulM8/taskflow/internal/model"
	"github.com/GokulM8/taskflow/internal/tracker"
)

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.svc.Register(ctx, tracker.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Confirm:  req.ConfirmPassword,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, _, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *handler) logout(c *gin.Context) {
	clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *handler) me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *handler) listProjects(c *gin.Context) {
	projects, err := h.svc.Projects(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *handler) createProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.CreateProject(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.Project(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) updateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd model.ProjectUpdate
	if !bindJSON(c, &upd) {
		return
	}
	p, err := h.svc.UpdateProject(c.Request.Context(), id, upd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type taskRequest struct {
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

func (h *handler) listTasks(c *gin.Context) {
	var f model.TaskFilter
	if s := c.Query("status"); s != "" {
		status := model.Status(s)
		f.Status = &status
	}
	if p := c.Query("priority"); p != "" {
		priority := model.Priority(p)
		f.Priority = &priority
	}
	f.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.writeError(c, model.Invalid("project_id", "must be a positive integer"))
			return
		}
		f.ProjectID = id
	}

	tasks, err := h.svc.Tasks(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *handler) createTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.svc.CreateTask(c.Request.Context(), model.NewTask{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.svc.Task(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd model.TaskUpdate
	if !bindJSON(c, &upd) {
		return
	}
	t, err := h.svc.UpdateTask(c.Request.Context(), id, upd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handler) activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(c, model.Invalid("limit", "must be an integer"))
			return
		}
		limit = n
	}
	entries, err := h.svc.Activity(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// pathID parses the :id parameter. Malformed ids are reported as not found.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}
