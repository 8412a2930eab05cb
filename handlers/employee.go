package handlers

import (
	"errors"
	"strings"
	"time"

	"iris_registry/models"
	"iris_registry/types"
	"iris_registry/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const greeting = "Hello, this is the IRIS COMPANY server!"

type AddEmployeeRequest struct {
	Name             string `json:"name"`
	Salary           string `json:"salary"`
	DOB              string `json:"dob"`
	Age              int    `json:"age"`
	CurrentAddress   string `json:"currentAddress"`
	PermanentAddress string `json:"permanentAddress"`
	Department       string `json:"department"`
	Designation      string `json:"designation"`
	RequestID        string `json:"requestId"`
}

func (r AddEmployeeRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" || r.Salary == "" || r.DOB == "" || strings.TrimSpace(r.CurrentAddress) == "" {
		return types.ErrMissingFields
	}
	if _, err := time.Parse(models.DateLayout, r.DOB); err != nil {
		return "Invalid date of birth. Use YYYY-MM-DD"
	}
	if !models.Department(r.Department).Valid() {
		return types.ErrInvalidDept
	}
	if !models.Designation(r.Designation).Valid() {
		return types.ErrInvalidDesig
	}
	return ""
}

// Home answers the health check.
func Home(c *fiber.Ctx) error {
	return c.SendString(greeting)
}

func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	utils.Logger.Debug("Received employee data",
		zap.String("name", req.Name),
		zap.String("department", req.Department),
		zap.String("request_id", req.RequestID))

	if msg := req.validate(); msg != "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   msg,
		})
	}

	// A retried submission carries the same request id as the first attempt.
	if req.RequestID != "" {
		var existing models.Employee
		err := DB.Where("request_id = ?", req.RequestID).First(&existing).Error
		if err == nil {
			utils.Logger.Info("Duplicate submission ignored", zap.String("request_id", req.RequestID))
			return c.JSON(types.APIResponse{
				Success: true,
				Message: "Employee already added",
			})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Logger.Error("Failed to look up request id", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	employee := models.Employee{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Salary:           req.Salary,
		DOB:              req.DOB,
		Age:              req.Age,
		CurrentAddress:   req.CurrentAddress,
		PermanentAddress: req.PermanentAddress,
		Department:       models.Department(req.Department),
		Designation:      models.Designation(req.Designation),
		CreatedAt:        time.Now(),
	}
	if req.RequestID != "" {
		employee.RequestID = &req.RequestID
	}

	if err := DB.Create(&employee).Error; err != nil {
		utils.Logger.Error("Failed to insert employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	utils.Logger.Info("Employee added successfully", zap.String("id", employee.ID))
	return c.JSON(types.APIResponse{
		Success: true,
	})
}
