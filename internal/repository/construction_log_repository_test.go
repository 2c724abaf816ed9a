package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests pin the transaction shape of the aggregate update: the parent
// save, the child delete and the child re-insert must share one transaction,
// and any failure must roll the whole thing back.

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, mock
}

func weatherReplacement() ChildReplacement {
	weathers := []models.WeatherEntry{
		{Period: models.PeriodMorning, Climate: models.ClimateClear, Condition: models.ConditionWorkable},
	}
	return ChildReplacement{Weathers: &weathers}
}

func TestUpdateAggregate_DeleteAndInsertShareOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConstructionLogRepository(db)

	log := &models.ConstructionLog{
		ID:        42,
		ProjectID: 7,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `construction_logs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `weather_entries`").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `weather_entries`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.UpdateAggregate(log, weatherReplacement())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAggregate_RollsBackWhenInsertFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConstructionLogRepository(db)

	log := &models.ConstructionLog{
		ID:        42,
		ProjectID: 7,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	insertErr := errors.New("constraint violation")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `construction_logs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `weather_entries`").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `weather_entries`").
		WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.UpdateAggregate(log, weatherReplacement())
	require.ErrorIs(t, err, insertErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAggregate_AbsentChildrenAreNotTouched(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConstructionLogRepository(db)

	log := &models.ConstructionLog{
		ID:        42,
		ProjectID: 7,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	// No replacement at all: only the parent row is written.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `construction_logs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateAggregate(log, ChildReplacement{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
