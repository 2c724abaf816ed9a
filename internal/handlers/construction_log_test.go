package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/obrafacil/obrafacil-api/internal/dto"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/stretchr/testify/require"
)

func (env apiTestEnv) seedProjectFixtures(t *testing.T, companyID uint64) (*models.Project, *models.Employee, *models.Equipment) {
	t.Helper()

	project := &models.Project{
		CompanyID:       companyID,
		Name:            "Residencial Aurora",
		Responsible:     "Maria Souza",
		StartDate:       mustDay(t, "2025-01-10"),
		ExpectedEndDate: mustDay(t, "2025-12-20"),
		Status:          models.ProjectInProgress,
	}
	require.NoError(t, env.db.Create(project).Error)

	employee := &models.Employee{
		CompanyID: companyID,
		Name:      "Carlos Pereira",
		Role:      "pedreiro",
		DailyRate: 250,
		Status:    models.EmployeeActive,
		CPF:       "123.456.789-00",
	}
	require.NoError(t, env.db.Create(employee).Error)

	equipment := &models.Equipment{
		CompanyID: companyID,
		Name:      "Betoneira 400L",
	}
	require.NoError(t, env.db.Create(equipment).Error)

	return project, employee, equipment
}

func logPayload(projectID, employeeID, equipmentID uint64, date string) map[string]any {
	return map[string]any{
		"project_id": projectID,
		"date":       date,
		"tasks":      "Concretagem da laje",
		"weathers": []map[string]any{
			{"period": "morning", "climate": "clear", "condition": "workable"},
		},
		"employee_hours": []map[string]any{
			{"employee_id": employeeID, "hours_worked": 8},
		},
		"equipment_usage": []map[string]any{
			{"equipment_id": equipmentID, "quantity": 1},
		},
	}
}

func TestConstructionLogHandler_Create(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	w := env.request(t, http.MethodPost, "/api/construction-logs", token,
		logPayload(project.ID, employee.ID, equipment.ID, "2025-03-10"))

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ConstructionLogDTO
	decodeBody(t, w, &response)
	require.Equal(t, project.ID, response.ProjectID)
	require.Len(t, response.Weathers, 1)
	require.Len(t, response.EmployeeHours, 1)

	// Responses denormalize the referenced names and carry the role snapshot.
	require.Equal(t, "Carlos Pereira", response.EmployeeHours[0].EmployeeName)
	require.Equal(t, "pedreiro", response.EmployeeHours[0].Role)
	require.Equal(t, "Betoneira 400L", response.EquipmentUsage[0].EquipmentName)
}

func TestConstructionLogHandler_CreateRejectsEmptyWeathers(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	payload := logPayload(project.ID, employee.ID, equipment.ID, "2025-03-10")
	payload["weathers"] = []map[string]any{}

	w := env.request(t, http.MethodPost, "/api/construction-logs", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConstructionLogHandler_CreateReportsMissingEmployeeIDs(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, _, equipment := env.seedProjectFixtures(t, company.ID)

	payload := logPayload(project.ID, 9001, equipment.ID, "2025-03-10")

	w := env.request(t, http.MethodPost, "/api/construction-logs", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "9001")
}

func TestConstructionLogHandler_ForeignCompanyIsForbidden(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	w := env.request(t, http.MethodPost, "/api/construction-logs", token,
		logPayload(project.ID, employee.ID, equipment.ID, "2025-03-10"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.ConstructionLogDTO
	decodeBody(t, w, &created)

	_, _, outsiderToken := env.seedMember(t, "outsider@example.com", "999.888.777-66")

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/construction-logs/%d", created.ID), outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/construction-logs", project.ID), outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Without any token the request never reaches authorization.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/construction-logs/%d", created.ID), "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConstructionLogHandler_UpdateReplacesChildren(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	w := env.request(t, http.MethodPost, "/api/construction-logs", token,
		logPayload(project.ID, employee.ID, equipment.ID, "2025-03-10"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.ConstructionLogDTO
	decodeBody(t, w, &created)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/construction-logs/%d", created.ID), token, map[string]any{
		"comments": "Dia produtivo",
		"weathers": []map[string]any{
			{"period": "afternoon", "climate": "rainy", "condition": "unworkable"},
			{"period": "night", "climate": "cloudy", "condition": "workable"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.ConstructionLogDTO
	decodeBody(t, w, &updated)
	require.Equal(t, "Dia produtivo", updated.Comments)
	require.Len(t, updated.Weathers, 2)
	require.Equal(t, models.PeriodAfternoon, updated.Weathers[0].Period)

	// Hours and equipment usage were absent from the body and stay intact.
	require.Len(t, updated.EmployeeHours, 1)
	require.Len(t, updated.EquipmentUsage, 1)
}

func TestConstructionLogHandler_ListByDateRange(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	for _, date := range []string{"2025-03-09", "2025-03-10", "2025-03-11", "2025-03-12"} {
		w := env.request(t, http.MethodPost, "/api/construction-logs", token,
			logPayload(project.ID, employee.ID, equipment.ID, date))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	path := fmt.Sprintf("/api/projects/%d/construction-logs?date_from=2025-03-10&date_to=2025-03-11", project.ID)
	w := env.request(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		ConstructionLogs []dto.ConstructionLogDTO `json:"construction_logs"`
	}
	decodeBody(t, w, &response)
	require.Len(t, response.ConstructionLogs, 2)
}

func TestConstructionLogHandler_GetWithDateFilter(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	w := env.request(t, http.MethodPost, "/api/construction-logs", token,
		logPayload(project.ID, employee.ID, equipment.ID, "2025-03-10"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.ConstructionLogDTO
	decodeBody(t, w, &created)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/construction-logs/%d?date=2025-03-10", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Same id, wrong day: not found.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/construction-logs/%d?date=2025-03-11", created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
