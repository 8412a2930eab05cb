// Package form implements the two step employee registration wizard.
//
// The draft record is an immutable value. Every edit produces a new Draft and
// the Form swaps it in only when the edit is accepted, so a rejected edit
// leaves the previous value untouched.
package form

import (
	"regexp"
	"strings"
	"time"

	"iris_registry/models"
)

const (
	MaxNameLength = 30
	MinAge        = 20
)

var (
	nameFilter   = regexp.MustCompile(`[^A-Za-z\s]`)
	salaryFilter = regexp.MustCompile(`[^0-9]`)
)

// Draft is the in-progress, unpersisted employee data.
type Draft struct {
	Name             string
	Salary           string
	DOB              string
	Age              int
	CurrentAddress   string
	PermanentAddress string
	SameAddress      bool
	Department       models.Department
	Designation      models.Designation
}

// WithName strips everything but letters and whitespace.
func (d Draft) WithName(input string) (Draft, error) {
	name := nameFilter.ReplaceAllString(input, "")
	if len(name) > MaxNameLength {
		return d, &ValidationError{Field: "name", Message: "Name should be within 30 characters."}
	}
	d.Name = name
	return d, nil
}

func (d Draft) WithSalary(input string) Draft {
	d.Salary = salaryFilter.ReplaceAllString(input, "")
	return d
}

// WithDOB sets the date of birth and derives the age from it as of now.
// An empty input clears both.
func (d Draft) WithDOB(input string, now time.Time) (Draft, error) {
	if input == "" {
		d.DOB, d.Age = "", 0
		return d, nil
	}
	dob, err := time.Parse(models.DateLayout, input)
	if err != nil {
		return d, &ValidationError{Field: "dob", Message: "Please enter a valid date of birth."}
	}
	age := Age(dob, now)
	if age < MinAge {
		return d, &ValidationError{Field: "dob", Message: "You must be at least 20 years old."}
	}
	d.DOB = input
	d.Age = age
	return d, nil
}

func (d Draft) WithCurrentAddress(input string) Draft {
	d.CurrentAddress = input
	if d.SameAddress {
		d.PermanentAddress = input
	}
	return d
}

// WithPermanentAddress is a no-op while the same-address flag is set.
func (d Draft) WithPermanentAddress(input string) Draft {
	if d.SameAddress {
		return d
	}
	d.PermanentAddress = input
	return d
}

// WithSameAddress copies the current address into the permanent address when
// the flag is turned on. While on, the permanent address follows the current one.
func (d Draft) WithSameAddress(same bool) Draft {
	d.SameAddress = same
	if same {
		d.PermanentAddress = d.CurrentAddress
	}
	return d
}

func (d Draft) WithDepartment(input string) (Draft, error) {
	dept := models.Department(input)
	if input != "" && !dept.Valid() {
		return d, &ValidationError{Field: "department", Message: "Please select a valid department."}
	}
	d.Department = dept
	return d, nil
}

func (d Draft) WithDesignation(input string) (Draft, error) {
	desig := models.Designation(input)
	if input != "" && !desig.Valid() {
		return d, &ValidationError{Field: "designation", Message: "Please select a valid designation."}
	}
	d.Designation = desig
	return d, nil
}

// EffectivePermanentAddress is the address that gets submitted.
func (d Draft) EffectivePermanentAddress() string {
	if d.SameAddress {
		return d.CurrentAddress
	}
	return d.PermanentAddress
}

func (d Draft) checkStep1() error {
	if strings.TrimSpace(d.Name) == "" || d.Salary == "" || d.DOB == "" || strings.TrimSpace(d.CurrentAddress) == "" {
		return &ValidationError{Message: "Please fill out all required fields."}
	}
	return nil
}

func (d Draft) checkStep2() error {
	if d.Department == "" {
		return &ValidationError{Field: "department", Message: "Please select a department."}
	}
	if d.Designation == "" {
		return &ValidationError{Field: "designation", Message: "Please select a designation."}
	}
	if strings.TrimSpace(d.EffectivePermanentAddress()) == "" {
		return &ValidationError{Field: "permanentAddress", Message: "Please enter a permanent address."}
	}
	return nil
}

// Record converts the draft into the record sent to the registry.
func (d Draft) Record(requestID string) models.Employee {
	rec := models.Employee{
		Name:             d.Name,
		Salary:           d.Salary,
		DOB:              d.DOB,
		Age:              d.Age,
		CurrentAddress:   d.CurrentAddress,
		PermanentAddress: d.EffectivePermanentAddress(),
		Department:       d.Department,
		Designation:      d.Designation,
	}
	if requestID != "" {
		rec.RequestID = &requestID
	}
	return rec
}

// Age returns full years between dob and now, counting the birthday only once
// its month and day have been reached.
func Age(dob, now time.Time) int {
	ny, nm, nd := now.Date()
	by, bm, bd := dob.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}
