package handler

import (
	"context"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BoardStore is the board persistence surface the handlers depend on.
type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetOwned(ctx context.Context, ownerID string) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TodoStore is the todo persistence surface the handlers depend on.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID, status string) ([]model.Todo, error)
	CountByStatus(ctx context.Context, boardID uuid.UUID) (total int64, completed int64, err error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
}

// currentIdentity pulls the verified identity attached by the auth guard.
func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		fail(c, apperr.Unauthenticated("Not authorized, no token"))
		return auth.Identity{}, false
	}
	return identity, true
}

// isOwner is the single authorization predicate for both resources.
func isOwner(ownerID string, who auth.Identity) bool {
	return ownerID == who.UID
}

// loadOwnedBoard resolves a board id from the URL and checks ownership.
// Existence is checked before ownership, so a nonexistent board always
// yields not-found, never forbidden. A malformed id resolves to nothing
// and gets the same not-found outcome.
func loadOwnedBoard(c *gin.Context, boards BoardStore, idParam string, who auth.Identity) (*model.Board, error) {
	boardID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, apperr.NotFound("Board not found")
	}

	board, err := boards.GetByID(c.Request.Context(), boardID)
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve board", err)
	}
	if board == nil {
		return nil, apperr.NotFound("Board not found")
	}
	if !isOwner(board.OwnerID, who) {
		return nil, apperr.Forbidden("User not authorized")
	}
	return board, nil
}

// loadOwnedTodo resolves a todo directly by id, not through its board,
// with the same existence-before-ownership ordering.
func loadOwnedTodo(c *gin.Context, todos TodoStore, idParam string, who auth.Identity) (*model.Todo, error) {
	todoID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, apperr.NotFound("Todo not found")
	}

	todo, err := todos.GetByID(c.Request.Context(), todoID)
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve todo", err)
	}
	if todo == nil {
		return nil, apperr.NotFound("Todo not found")
	}
	if !isOwner(todo.OwnerID, who) {
		return nil, apperr.Forbidden("User not authorized")
	}
	return todo, nil
}
