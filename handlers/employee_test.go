package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"iris_registry/database"
	"iris_registry/models"
	"iris_registry/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	InitHandlers(db)

	app := fiber.New()
	app.Get("/", Home)
	app.Post("/api/addEmployee", AddEmployee)
	return app
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name":             "John Doe",
		"salary":           "50000",
		"dob":              "1990-05-20",
		"age":              36,
		"currentAddress":   "12 Oak St",
		"permanentAddress": "12 Oak St",
		"department":       "CSE",
		"designation":      "student",
	}
}

func postEmployee(t *testing.T, app *fiber.App, body map[string]interface{}) (int, types.APIResponse) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/addEmployee", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp.StatusCode, response
}

func TestHome(t *testing.T) {
	app := setupTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello, this is the IRIS COMPANY server!", string(body))
}

func TestAddEmployee(t *testing.T) {
	app := setupTest(t)

	t.Run("Stores Employee", func(t *testing.T) {
		status, response := postEmployee(t, app, validBody())
		assert.Equal(t, 200, status)
		assert.True(t, response.Success)
		assert.Empty(t, response.Error)

		var employees []models.Employee
		require.NoError(t, DB.Find(&employees).Error)
		require.Len(t, employees, 1)
		e := employees[0]
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "John Doe", e.Name)
		assert.Equal(t, "50000", e.Salary)
		assert.Equal(t, "1990-05-20", e.DOB)
		assert.Equal(t, 36, e.Age)
		assert.Equal(t, "12 Oak St", e.PermanentAddress)
		assert.Equal(t, models.DepartmentCSE, e.Department)
		assert.Equal(t, models.DesignationStudent, e.Designation)
		assert.Nil(t, e.RequestID)
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("Rejects Missing Fields", func(t *testing.T) {
		body := validBody()
		delete(body, "currentAddress")
		status, response := postEmployee(t, app, body)
		assert.Equal(t, 400, status)
		assert.False(t, response.Success)
		assert.Equal(t, types.ErrMissingFields, response.Error)
	})

	t.Run("Rejects Unknown Department", func(t *testing.T) {
		body := validBody()
		body["department"] = "HR"
		status, response := postEmployee(t, app, body)
		assert.Equal(t, 400, status)
		assert.Equal(t, types.ErrInvalidDept, response.Error)
	})

	t.Run("Rejects Unknown Designation", func(t *testing.T) {
		body := validBody()
		body["designation"] = "janitor"
		status, response := postEmployee(t, app, body)
		assert.Equal(t, 400, status)
		assert.Equal(t, types.ErrInvalidDesig, response.Error)
	})

	t.Run("Rejects Bad Date", func(t *testing.T) {
		body := validBody()
		body["dob"] = "20/05/1990"
		status, response := postEmployee(t, app, body)
		assert.Equal(t, 400, status)
		assert.False(t, response.Success)
	})

	t.Run("Rejects Malformed Body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/addEmployee", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	var count int64
	require.NoError(t, DB.Model(&models.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rejected requests insert nothing")
}

func TestAddEmployeeIdempotent(t *testing.T) {
	app := setupTest(t)

	body := validBody()
	body["requestId"] = "0b5e8c39-5f0a-4d55-9d2e-6a7d1f0c9b11"

	status, response := postEmployee(t, app, body)
	require.Equal(t, 200, status)
	assert.True(t, response.Success)

	status, response = postEmployee(t, app, body)
	require.Equal(t, 200, status)
	assert.True(t, response.Success)
	assert.Equal(t, "Employee already added", response.Message)

	var count int64
	require.NoError(t, DB.Model(&models.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	body["requestId"] = "a7c1f3e0-1c55-4a0e-8f16-2e7f1d5b9c02"
	status, _ = postEmployee(t, app, body)
	require.Equal(t, 200, status)
	require.NoError(t, DB.Model(&models.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
