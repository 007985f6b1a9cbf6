package handler

import (
	"net/http"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards BoardStore
	todos  TodoStore
}

func NewBoardHandler(boards BoardStore, todos TodoStore) *BoardHandler {
	return &BoardHandler{
		boards: boards,
		todos:  todos,
	}
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

// UpdateBoardRequest is the allow-list of mutable board fields. Fields
// absent from the body stay untouched; ownerId can never be overwritten
// through an update.
type UpdateBoardRequest struct {
	Name *string `json:"name"`
}

// validateBoardName trims the name and enforces the minimum length.
func validateBoardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("Please add a board name")
	}
	if len([]rune(name)) < model.MinBoardNameLen {
		return "", apperr.Validation("Board name must be at least 3 characters")
	}
	return name, nil
}

// List godoc
// @Summary      List boards
// @Description  Returns all boards owned by the authenticated user, newest first
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	boards, err := h.boards.GetOwned(c.Request.Context(), who.UID)
	if err != nil {
		fail(c, apperr.Internal("Failed to retrieve boards", err))
		return
	}

	respond(c, http.StatusOK, boards)
}

// Create godoc
// @Summary      Create a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        board  body      CreateBoardRequest  true  "Board to create"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Router       /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Invalid request"))
		return
	}

	name, err := validateBoardName(req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	board := &model.Board{
		Name:    name,
		OwnerID: who.UID,
	}

	if err := h.boards.Create(c.Request.Context(), board); err != nil {
		fail(c, apperr.Internal("Failed to create board", err))
		return
	}

	respond(c, http.StatusCreated, board)
}

// Update godoc
// @Summary      Update a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string              true  "Board ID"
// @Param        board  body      UpdateBoardRequest  true  "Fields to update"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Router       /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	board, err := loadOwnedBoard(c, h.boards, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Invalid request"))
		return
	}

	if req.Name != nil {
		name, err := validateBoardName(*req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		board.Name = name
	}

	if err := h.boards.Update(c.Request.Context(), board); err != nil {
		fail(c, apperr.Internal("Failed to update board", err))
		return
	}

	respond(c, http.StatusOK, board)
}

// Delete godoc
// @Summary      Delete a board and all of its todos
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Board ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	board, err := loadOwnedBoard(c, h.boards, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	// Cascade: child todos go first so a crash between the two deletes
	// never orphans a live board. Todos surviving an already-deleted
	// board are unreachable garbage.
	if err := h.todos.DeleteByBoardID(c.Request.Context(), board.ID); err != nil {
		fail(c, apperr.Internal("Failed to delete board todos", err))
		return
	}

	if err := h.boards.Delete(c.Request.Context(), board.ID); err != nil {
		fail(c, apperr.Internal("Failed to delete board", err))
		return
	}

	respond(c, http.StatusOK, gin.H{})
}

// Stats godoc
// @Summary      Per-board completion statistics
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Board ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/boards/{id}/stats [get]
func (h *BoardHandler) Stats(c *gin.Context) {
	who, ok := currentIdentity(c)
	if !ok {
		return
	}

	board, err := loadOwnedBoard(c, h.boards, c.Param("id"), who)
	if err != nil {
		fail(c, err)
		return
	}

	total, completed, err := h.todos.CountByStatus(c.Request.Context(), board.ID)
	if err != nil {
		fail(c, apperr.Internal("Failed to count todos", err))
		return
	}

	respond(c, http.StatusOK, gin.H{
		"total":     total,
		"completed": completed,
		"pending":   total - completed,
	})
}
