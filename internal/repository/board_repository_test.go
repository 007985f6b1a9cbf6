package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestBoardRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	board := &model.Board{
		Name:    "Home",
		OwnerID: "firebase-uid-1",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WithArgs(board.Name, board.OwnerID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	mock.ExpectCommit()

	// Act
	err := boardRepo.Create(context.Background(), board)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetOwned_NewestFirst(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ownerID := "firebase-uid-1"
	newer := uuid.New()
	older := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at", "updated_at"}).
		AddRow(newer.String(), "Work", ownerID, now, now).
		AddRow(older.String(), "Home", ownerID, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs(ownerID).
		WillReturnRows(rows)

	// Act
	boards, err := boardRepo.GetOwned(context.Background(), ownerID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.Equal(t, newer, boards[0].ID)
	assert.Equal(t, older, boards[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetOwned_Empty(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE owner_id`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at", "updated_at"}))

	// Act
	boards, err := boardRepo.GetOwned(context.Background(), "nobody")

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Len(t, boards, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at", "updated_at"}))

	// Act
	board, err := boardRepo.GetByID(context.Background(), boardID)

	// Assert: missing board is nil, nil rather than an error
	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Delete(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards" WHERE id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := boardRepo.Delete(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards" WHERE id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := boardRepo.Delete(context.Background(), boardID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
