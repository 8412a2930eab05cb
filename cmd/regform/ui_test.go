package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"iris_registry/cache"
	"iris_registry/form"
	"iris_registry/models"
	"iris_registry/services"
	"iris_registry/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	errs     []error
	received []models.Employee
}

func (g *stubGateway) Submit(_ context.Context, rec models.Employee) error {
	g.received = append(g.received, rec)
	if len(g.errs) == 0 {
		return nil
	}
	err := g.errs[0]
	g.errs = g.errs[1:]
	return err
}

func runScript(t *testing.T, gw session.Submitter, lines ...string) (string, *session.Session) {
	t.Helper()
	return runScriptWith(t, gw, cache.NewMemoryStorage(), lines...)
}

func runScriptWith(t *testing.T, gw session.Submitter, store cache.Storage, lines ...string) (string, *session.Session) {
	t.Helper()
	sess := session.New(form.New(), cache.New(store), gw, 10)
	require.NoError(t, sess.Start())

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, newUI(sess, in, &out).Run(context.Background()))
	return out.String(), sess
}

func TestUISubmitsEntry(t *testing.T) {
	gw := &stubGateway{}
	out, sess := runScript(t, gw,
		"Jo3hn_ Do#e", "12a3b4", "1990-05-20", "12 Oak St", "y",
		"IT", "faculty", "s",
		"q",
	)

	require.Len(t, gw.received, 1)
	rec := gw.received[0]
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, "1234", rec.Salary)
	assert.Equal(t, "12 Oak St", rec.PermanentAddress)
	assert.Equal(t, models.DepartmentIT, rec.Department)

	assert.Contains(t, out, "Permanent address: 12 Oak St")
	assert.Contains(t, out, "Form submitted successfully!")
	assert.Contains(t, out, "Employee Entries")
	assert.Contains(t, out, "Page 1 of 1")
	assert.Equal(t, 1, sess.Entries())
}

func TestUIShowsValidationAlerts(t *testing.T) {
	gw := &stubGateway{}
	out, _ := runScript(t, gw,
		strings.Repeat("a", 31), "Ann Lee", "", "", "", "n",
		// page 1 is repeated because salary, dob and address are missing
		"", "900", "2020-01-01", "1990-01-01", "1 Main St", "n",
		":q",
	)

	assert.Contains(t, out, "! Name should be within 30 characters.")
	assert.Contains(t, out, "! Please fill out all required fields.")
	assert.Contains(t, out, "! You must be at least 20 years old.")
	assert.Contains(t, out, "-- Page 2 of 2 --")
	assert.Empty(t, gw.received)
}

func TestUIRetriesAfterGatewayError(t *testing.T) {
	gw := &stubGateway{errs: []error{&services.GatewayError{Status: 500, Message: "Database error"}}}
	out, sess := runScript(t, gw,
		"Ann Lee", "900", "1990-01-01", "1 Main St", "n",
		"2 High St", "CSBS", "student", "s",
		// step 2 again with the kept values
		"", "", "", "s",
		"q",
	)

	assert.Contains(t, out, "! Failed to add employee. Please try again. (Database error)")
	require.Len(t, gw.received, 2)
	assert.Equal(t, *gw.received[0].RequestID, *gw.received[1].RequestID)
	assert.Equal(t, "2 High St", gw.received[1].PermanentAddress)
	assert.Equal(t, 1, sess.Entries())
}

func TestUIListCommandsFromFirstPage(t *testing.T) {
	store := cache.NewMemoryStorage()
	seed := cache.New(store)
	require.NoError(t, seed.Append(models.Employee{Name: "Ann Lee", Salary: "900", DOB: "1990-01-01", Age: 36}))

	gw := &stubGateway{}
	out, sess := runScriptWith(t, gw, store,
		":l",
		":r",
		":q",
	)

	assert.NotContains(t, out, "Form submitted successfully!")
	assert.Contains(t, out, "-- Page 1 of 2 --")
	assert.Contains(t, out, "Employee Entries")
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "Employee list cleared.")
	assert.Equal(t, 0, sess.Entries())
	assert.Equal(t, form.Step1, sess.Form().Step())
	assert.Empty(t, gw.received)

	_, found, err := store.Get(cache.Key)
	require.NoError(t, err)
	assert.False(t, found)
}
