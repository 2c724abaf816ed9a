package services

import (
	"testing"
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type logTestEnv struct {
	db        *gorm.DB
	svc       *ConstructionLogService
	company   *models.Company
	project   *models.Project
	employee  *models.Employee
	equipment *models.Equipment
	caller    []uint64
}

func setupLogTestEnv(t *testing.T) logTestEnv {
	t.Helper()

	db := setupTestDB(t)
	_, company := createUserAndCompany(t, db, "owner@example.com", "111.222.333-44")
	project := createProject(t, db, company.ID)
	employee := createEmployee(t, db, company.ID, "Carlos Pereira", "pedreiro")
	equipment := createEquipment(t, db, company.ID, "Betoneira 400L")

	svc := NewConstructionLogService(
		repository.NewConstructionLogRepository(db),
		repository.NewProjectRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewEquipmentRepository(db),
	)

	return logTestEnv{
		db:        db,
		svc:       svc,
		company:   company,
		project:   project,
		employee:  employee,
		equipment: equipment,
		caller:    []uint64{company.ID},
	}
}

func (env logTestEnv) validInput(date time.Time) CreateLogInput {
	return CreateLogInput{
		ProjectID: env.project.ID,
		Date:      date,
		Tasks:     "Concretagem da laje",
		Weathers: []models.WeatherEntry{
			{Period: models.PeriodMorning, Climate: models.ClimateClear, Condition: models.ConditionWorkable},
		},
		EmployeeHours: []models.EmployeeHour{
			{EmployeeID: env.employee.ID, HoursWorked: 8},
		},
		EquipmentUsage: []models.EquipmentUsage{
			{EquipmentID: env.equipment.ID, Quantity: 1},
		},
	}
}

func TestConstructionLogService_CreateLog(t *testing.T) {
	env := setupLogTestEnv(t)

	log, err := env.svc.CreateLog(env.validInput(day(2025, 3, 10)), env.caller)
	require.NoError(t, err)
	require.NotZero(t, log.ID)

	stored, err := env.svc.GetLog(log.ID, nil, env.caller)
	require.NoError(t, err)
	require.Len(t, stored.Weathers, 1)
	require.Len(t, stored.EmployeeHours, 1)
	require.Len(t, stored.EquipmentUsage, 1)

	// The employee's role is snapshotted onto the hours entry.
	require.Equal(t, "pedreiro", stored.EmployeeHours[0].Role)
}

func TestConstructionLogService_CreateLogRequiresWeatherAndHours(t *testing.T) {
	env := setupLogTestEnv(t)

	input := env.validInput(day(2025, 3, 10))
	input.Weathers = nil
	_, err := env.svc.CreateLog(input, env.caller)
	require.ErrorIs(t, err, ErrWeatherRequired)

	input = env.validInput(day(2025, 3, 10))
	input.EmployeeHours = nil
	_, err = env.svc.CreateLog(input, env.caller)
	require.ErrorIs(t, err, ErrEmployeeHoursRequired)
}

func TestConstructionLogService_CreateLogReportsAllMissingEmployees(t *testing.T) {
	env := setupLogTestEnv(t)

	input := env.validInput(day(2025, 3, 10))
	input.EmployeeHours = append(input.EmployeeHours,
		models.EmployeeHour{EmployeeID: 9001, HoursWorked: 4},
		models.EmployeeHour{EmployeeID: 9002, HoursWorked: 6},
	)

	_, err := env.svc.CreateLog(input, env.caller)

	var missing *MissingReferencesError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "employee", missing.Entity)
	require.Equal(t, []uint64{9001, 9002}, missing.IDs)

	// Nothing was persisted.
	var count int64
	require.NoError(t, env.db.Model(&models.ConstructionLog{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.EmployeeHour{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestConstructionLogService_CreateLogRejectsForeignEmployees(t *testing.T) {
	env := setupLogTestEnv(t)

	// An employee of a different company must not be referenceable even when
	// the id exists.
	_, otherCompany := createUserAndCompany(t, env.db, "other@example.com", "999.888.777-66")
	foreign := createEmployee(t, env.db, otherCompany.ID, "Estranho", "servente")

	input := env.validInput(day(2025, 3, 10))
	input.EmployeeHours = []models.EmployeeHour{{EmployeeID: foreign.ID, HoursWorked: 8}}

	_, err := env.svc.CreateLog(input, env.caller)

	var missing *MissingReferencesError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []uint64{foreign.ID}, missing.IDs)
}

func TestConstructionLogService_MembershipEnforcement(t *testing.T) {
	env := setupLogTestEnv(t)

	log, err := env.svc.CreateLog(env.validInput(day(2025, 3, 10)), env.caller)
	require.NoError(t, err)

	_, outsiderCompany := createUserAndCompany(t, env.db, "outsider@example.com", "999.888.777-66")
	outsider := []uint64{outsiderCompany.ID}

	_, err = env.svc.GetLog(log.ID, nil, outsider)
	require.ErrorIs(t, err, ErrNotCompanyMember)

	_, err = env.svc.ListLogs(env.project.ID, nil, nil, outsider)
	require.ErrorIs(t, err, ErrNotCompanyMember)

	_, err = env.svc.UpdateLog(log.ID, UpdateLogInput{}, outsider)
	require.ErrorIs(t, err, ErrNotCompanyMember)

	_, err = env.svc.ListLogs(9999, nil, nil, env.caller)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestConstructionLogService_RoleSnapshotSurvivesEmployeeEdits(t *testing.T) {
	env := setupLogTestEnv(t)

	log, err := env.svc.CreateLog(env.validInput(day(2025, 3, 10)), env.caller)
	require.NoError(t, err)

	// Promote the employee after the log was written.
	require.NoError(t, env.db.Model(&models.Employee{}).
		Where("id = ?", env.employee.ID).
		Update("role", "mestre de obras").Error)

	stored, err := env.svc.GetLog(log.ID, nil, env.caller)
	require.NoError(t, err)
	require.Equal(t, "pedreiro", stored.EmployeeHours[0].Role)
}

func TestConstructionLogService_UpdateReplacesWeathersWholesale(t *testing.T) {
	env := setupLogTestEnv(t)

	input := env.validInput(day(2025, 3, 10))
	input.Weathers = []models.WeatherEntry{
		{Period: models.PeriodMorning, Climate: models.ClimateClear, Condition: models.ConditionWorkable},
		{Period: models.PeriodAfternoon, Climate: models.ClimateRainy, Condition: models.ConditionUnworkable},
	}
	log, err := env.svc.CreateLog(input, env.caller)
	require.NoError(t, err)

	replacement := []models.WeatherEntry{
		{Period: models.PeriodNight, Climate: models.ClimateCloudy, Condition: models.ConditionWorkable},
	}
	_, err = env.svc.UpdateLog(log.ID, UpdateLogInput{Weathers: &replacement}, env.caller)
	require.NoError(t, err)

	stored, err := env.svc.GetLog(log.ID, nil, env.caller)
	require.NoError(t, err)
	require.Len(t, stored.Weathers, 1)
	require.Equal(t, models.PeriodNight, stored.Weathers[0].Period)

	// No orphaned rows from the replaced set.
	var count int64
	require.NoError(t, env.db.Model(&models.WeatherEntry{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestConstructionLogService_PartialUpdateLeavesOtherChildrenUntouched(t *testing.T) {
	env := setupLogTestEnv(t)

	input := env.validInput(day(2025, 3, 10))
	input.Services = []models.ServiceEntry{
		{Name: "Alvenaria", Description: "Parede norte", Value: 1500},
	}
	log, err := env.svc.CreateLog(input, env.caller)
	require.NoError(t, err)

	comments := "Dia produtivo"
	replacement := []models.WeatherEntry{
		{Period: models.PeriodMorning, Climate: models.ClimateCloudy, Condition: models.ConditionWorkable},
	}
	_, err = env.svc.UpdateLog(log.ID, UpdateLogInput{
		Comments: &comments,
		Weathers: &replacement,
	}, env.caller)
	require.NoError(t, err)

	stored, err := env.svc.GetLog(log.ID, nil, env.caller)
	require.NoError(t, err)
	require.Equal(t, "Dia produtivo", stored.Comments)
	require.Equal(t, models.ClimateCloudy, stored.Weathers[0].Climate)

	// Services, hours and equipment usage were not part of the update and
	// must survive intact.
	require.Len(t, stored.Services, 1)
	require.Equal(t, "Alvenaria", stored.Services[0].Name)
	require.Len(t, stored.EmployeeHours, 1)
	require.Len(t, stored.EquipmentUsage, 1)
}

func TestConstructionLogService_UpdateRejectsEmptyWeatherReplacement(t *testing.T) {
	env := setupLogTestEnv(t)

	log, err := env.svc.CreateLog(env.validInput(day(2025, 3, 10)), env.caller)
	require.NoError(t, err)

	empty := []models.WeatherEntry{}
	_, err = env.svc.UpdateLog(log.ID, UpdateLogInput{Weathers: &empty}, env.caller)
	require.ErrorIs(t, err, ErrWeatherRequired)

	emptyHours := []models.EmployeeHour{}
	_, err = env.svc.UpdateLog(log.ID, UpdateLogInput{EmployeeHours: &emptyHours}, env.caller)
	require.ErrorIs(t, err, ErrEmployeeHoursRequired)
}

func TestConstructionLogService_ListLogsDateRangeIsInclusive(t *testing.T) {
	env := setupLogTestEnv(t)

	for _, d := range []time.Time{
		day(2025, 3, 9),
		day(2025, 3, 10),
		day(2025, 3, 11),
		day(2025, 3, 12),
	} {
		_, err := env.svc.CreateLog(env.validInput(d), env.caller)
		require.NoError(t, err)
	}

	from := day(2025, 3, 10)
	to := time.Date(2025, 3, 11, 23, 59, 59, 999_000_000, time.UTC)
	logs, err := env.svc.ListLogs(env.project.ID, &from, &to, env.caller)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Ordered by date ascending, boundary days included, outside days not.
	require.Equal(t, day(2025, 3, 10), logs[0].Date.UTC())
	require.Equal(t, day(2025, 3, 11), logs[1].Date.UTC())
}
