package models

import (
	"time"
)

type Department string

const (
	DepartmentIT   Department = "IT"
	DepartmentCSE  Department = "CSE"
	DepartmentCSBS Department = "CSBS"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentIT, DepartmentCSE, DepartmentCSBS:
		return true
	}
	return false
}

type Designation string

const (
	DesignationStudent Designation = "student"
	DesignationFaculty Designation = "faculty"
)

func (d Designation) Valid() bool {
	switch d {
	case DesignationStudent, DesignationFaculty:
		return true
	}
	return false
}

// DateLayout is the wire format of date of birth values.
const DateLayout = "2006-01-02"

// Employee is one registered employee. It is both the row of the employees
// table and the record held in the client cache.
type Employee struct {
	ID               string      `gorm:"type:uuid;primary_key" json:"-"`
	Name             string      `gorm:"not null" json:"name"`
	Salary           string      `gorm:"not null" json:"salary"`
	DOB              string      `gorm:"column:dob;not null" json:"dob"` // YYYY-MM-DD
	Age              int         `json:"age"`
	CurrentAddress   string      `gorm:"not null" json:"currentAddress"`
	PermanentAddress string      `json:"permanentAddress"`
	Department       Department  `gorm:"not null" json:"department"`
	Designation      Designation `json:"designation"`
	RequestID        *string     `gorm:"uniqueIndex" json:"requestId,omitempty"`
	CreatedAt        time.Time   `gorm:"not null" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
