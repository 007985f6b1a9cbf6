package handler

import (
	"net/http"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	todos  TodoStore
	boards BoardStore
}

func NewTodoHandler(todos TodoStore, boards BoardStore) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		boards: boards,
	}
}

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoRequest is the allow-list of mutable todo fields. Pointer
// fields distinguish "absent" from "set to empty"; boardId and ownerId
// are not updatable.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// statusFilter normalizes the ?status query parameter. Only the two real
// statuses filter; anything else, including "all", means no filter.
func statusFilter(raw string) string {
	s := strings.ToLower(raw)
	if model.ValidStatus(s) {
		return s
	}
	return ""
}

// List godoc
// @Summary      List todos on a board
// @Tags         Todos
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "Board ID"
// @Param        status  query  string  false  "Filter by status (pending or completed)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/boards/{id}/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	board, err := loadOwnedBoard(c, h.boards, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	todos, err := h.todos.GetByBoardID(c.Request.Context(), board.ID, statusFilter(c.Query("status")))
	if err != nil {
		fail(c, apperr.Internal("Failed to retrieve todos", err))
		return
	}

	respond(c, http.StatusOK, todos)
}

// Create godoc
// @Summary      Create a todo on a board
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Board ID"
// @Param        todo  body      CreateTodoRequest  true  "Todo to create"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/boards/{id}/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	board, err := loadOwnedBoard(c, h.boards, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Invalid request"))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		fail(c, apperr.Validation("Please add a title"))
		return
	}

	// ownerId is copied from the caller, who owns the board at this
	// point; it is not re-validated against the board on later mutations.
	todo := &model.Todo{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      model.StatusPending,
		BoardID:     board.ID,
		OwnerID:     who.UID,
	}

	if err := h.todos.Create(c.Request.Context(), todo); err != nil {
		fail(c, apperr.Internal("Failed to create todo", err))
		return
	}

	respond(c, http.StatusCreated, todo)
}

// Update godoc
// @Summary      Update a todo
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo ID"
// @Param        todo  body      UpdateTodoRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	todo, err := loadOwnedTodo(c, h.todos, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Invalid request"))
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			fail(c, apperr.Validation("Please add a title"))
			return
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		status := strings.ToLower(*req.Status)
		if !model.ValidStatus(status) {
			fail(c, apperr.Validation("Status must be pending or completed"))
			return
		}
		todo.Status = status
	}

	if err := h.todos.Update(c.Request.Context(), todo); err != nil {
		fail(c, apperr.Internal("Failed to update todo", err))
		return
	}

	respond(c, http.StatusOK, todo)
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         Todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Todo ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	todo, err := loadOwnedTodo(c, h.todos, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.todos.Delete(c.Request.Context(), todo.ID); err != nil {
		fail(c, apperr.Internal("Failed to delete todo", err))
		return
	}

	respond(c, http.StatusOK, gin.H{})
}
