package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_CreateAndGet(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")

	w := env.request(t, http.MethodPost, "/api/projects", token, map[string]any{
		"company_id":        company.ID,
		"name":              "Residencial Aurora",
		"responsible":       "Maria Souza",
		"start_date":        "2025-01-10T00:00:00Z",
		"expected_end_date": "2025-12-20T00:00:00Z",
		"address":           "Rua das Flores, 100",
		"client":            "Incorporadora XYZ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	decodeBody(t, w, &created)
	require.Equal(t, models.ProjectNotStarted, created.Status)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_ListIsCompanyScoped(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	_, otherCompany, otherToken := env.seedMember(t, "other@example.com", "999.888.777-66")

	env.seedProjectFixtures(t, company.ID)
	env.seedProjectFixtures(t, otherCompany.ID)

	var response struct {
		Projects   []models.Project         `json:"projects"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}

	w := env.request(t, http.MethodGet, "/api/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &response)
	require.Len(t, response.Projects, 1)
	require.Equal(t, company.ID, response.Projects[0].CompanyID)
	require.EqualValues(t, 1, response.Pagination.Total)

	// The other member only sees their own company's projects.
	w = env.request(t, http.MethodGet, "/api/projects", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &response)
	require.Len(t, response.Projects, 1)
	require.Equal(t, otherCompany.ID, response.Projects[0].CompanyID)
}

func TestProjectHandler_ForeignProjectAccess(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, _ := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, _, _ := env.seedProjectFixtures(t, company.ID)

	_, _, outsiderToken := env.seedMember(t, "outsider@example.com", "999.888.777-66")

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// A project that does not exist at all is a plain 404.
	w = env.request(t, http.MethodGet, "/api/projects/9999", outsiderToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_InvalidStatusRejected(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, _, _ := env.seedProjectFixtures(t, company.ID)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), token, map[string]any{
		"status": "finished",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), token, map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_HoursReportEndpoint(t *testing.T) {
	env := setupAPITestEnv(t)
	_, company, token := env.seedMember(t, "owner@example.com", "111.222.333-44")
	project, employee, equipment := env.seedProjectFixtures(t, company.ID)

	for _, date := range []string{"2025-03-10", "2025-03-11"} {
		w := env.request(t, http.MethodPost, "/api/construction-logs", token,
			logPayload(project.ID, employee.ID, equipment.ID, date))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/hours-report", project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Report []struct {
			Name      string  `json:"name"`
			DailyRate float64 `json:"daily_rate"`
			WorkDays  []struct {
				HoursWorked float64 `json:"hours_worked"`
				Date        string  `json:"date"`
			} `json:"work_days"`
		} `json:"report"`
	}
	decodeBody(t, w, &response)
	require.Len(t, response.Report, 1)
	require.Equal(t, "Carlos Pereira", response.Report[0].Name)
	require.Len(t, response.Report[0].WorkDays, 2)
	require.Equal(t, "10/03/2025", response.Report[0].WorkDays[0].Date)

	// Malformed bounds are rejected before hitting the database.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/hours-report?date_from=10-03-2025", project.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
