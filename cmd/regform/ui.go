package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"iris_registry/form"
	"iris_registry/services"
	"iris_registry/session"
)

var errQuit = errors.New("quit")

// ui is the line oriented rendition of the two page form.
type ui struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

func newUI(sess *session.Session, in io.Reader, out io.Writer) *ui {
	return &ui{sess: sess, in: bufio.NewScanner(in), out: out}
}

// Run drives the wizard until the user quits or input ends.
func (u *ui) Run(ctx context.Context) error {
	fmt.Fprintln(u.out, "We welcome you to the IRIS company's employee details form")
	fmt.Fprintln(u.out, "Commands at any prompt: :l list entries, :n/:p next/previous page, :r reset list, :q quit")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var err error
		switch u.sess.Form().Step() {
		case form.Step1:
			err = u.step1()
		case form.Step2:
			err = u.step2(ctx)
		case form.Submitted:
			err = u.submitted()
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (u *ui) step1() error {
	f := u.sess.Form()
	fmt.Fprintln(u.out, "\n-- Page 1 of 2 --")

	if err := u.field("Name", f.Draft().Name, f.SetName); err != nil {
		return err
	}
	if err := u.field("Salary", f.Draft().Salary, func(v string) error { f.SetSalary(v); return nil }); err != nil {
		return err
	}
	if err := u.field("Date of birth (YYYY-MM-DD)", f.Draft().DOB, f.SetDOB); err != nil {
		return err
	}
	fmt.Fprintf(u.out, "Age: %d\n", f.Draft().Age)
	if err := u.field("Current address", f.Draft().CurrentAddress, func(v string) error { f.SetCurrentAddress(v); return nil }); err != nil {
		return err
	}
	same, err := u.confirm("Permanent address same as current address", f.Draft().SameAddress)
	if err != nil {
		return err
	}
	f.SetSameAddress(same)

	return u.check(f.Next())
}

func (u *ui) step2(ctx context.Context) error {
	f := u.sess.Form()
	fmt.Fprintln(u.out, "\n-- Page 2 of 2 --")

	if f.Draft().SameAddress {
		fmt.Fprintf(u.out, "Permanent address: %s\n", f.Draft().EffectivePermanentAddress())
	} else if err := u.field("Permanent address", f.Draft().PermanentAddress, func(v string) error { f.SetPermanentAddress(v); return nil }); err != nil {
		return err
	}
	if err := u.field("Department (IT/CSE/CSBS)", string(f.Draft().Department), f.SetDepartment); err != nil {
		return err
	}
	if err := u.field("Designation (student/faculty)", string(f.Draft().Designation), f.SetDesignation); err != nil {
		return err
	}

	for {
		choice, err := u.ask("[s]ubmit, [b]ack, [e]dit")
		if err != nil {
			return err
		}
		switch choice {
		case "s":
			return u.submit(ctx)
		case "b":
			return u.check(f.Back())
		case "e":
			return nil
		}
	}
}

func (u *ui) submit(ctx context.Context) error {
	out, err := u.sess.Submit(ctx)
	var gwErr *services.GatewayError
	switch {
	case errors.As(err, &gwErr):
		u.alert("Failed to add employee. Please try again. (" + gwErr.Message + ")")
		return nil
	case errors.Is(err, session.ErrSubmitInProgress):
		u.alert(err.Error())
		return nil
	case err != nil:
		return u.check(err)
	}
	if out.StorageErr != nil {
		u.alert("Saved on the server, but the local list could not be updated: " + out.StorageErr.Error())
	}
	return nil
}

func (u *ui) submitted() error {
	fmt.Fprintln(u.out, "\nForm submitted successfully!")
	if u.sess.ShowTable() {
		renderTable(u.out, u.sess)
	}

	for {
		choice, err := u.ask("[a]nother entry, [n]ext page, [p]revious page, [r]eset list, [q]uit")
		if err != nil {
			return err
		}
		switch choice {
		case "a":
			u.sess.ResetForm()
			return nil
		case "n":
			u.sess.NextPage()
			return nil
		case "p":
			u.sess.PrevPage()
			return nil
		case "r":
			if err := u.sess.ClearCache(); err != nil {
				u.alert(err.Error())
			}
			return nil
		case "q":
			return errQuit
		}
	}
}

// field prompts until set accepts the value. Empty input keeps current.
func (u *ui) field(label, current string, set func(string) error) error {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	for {
		v, err := u.ask(prompt)
		if err != nil {
			return err
		}
		if v == "" {
			v = current
		}
		err = set(v)
		if err == nil {
			return nil
		}
		if err = u.check(err); err != nil {
			return err
		}
	}
}

func (u *ui) confirm(label string, current bool) (bool, error) {
	def := "n"
	if current {
		def = "y"
	}
	v, err := u.ask(fmt.Sprintf("%s (y/n) [%s]", label, def))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return current, nil
}

// ask reads one answer. The list commands are available at every prompt:
// :l shows the list, :n and :p page through it, :r clears it, :q quits.
func (u *ui) ask(prompt string) (string, error) {
	for {
		fmt.Fprintf(u.out, "%s: ", prompt)
		if !u.in.Scan() {
			if err := u.in.Err(); err != nil {
				return "", err
			}
			return "", errQuit
		}
		line := strings.TrimSpace(u.in.Text())
		switch line {
		case ":q":
			return "", errQuit
		case ":l":
			u.sess.SetShowTable(true)
		case ":n":
			u.sess.NextPage()
			u.sess.SetShowTable(true)
		case ":p":
			u.sess.PrevPage()
			u.sess.SetShowTable(true)
		case ":r":
			if err := u.sess.ClearCache(); err != nil {
				u.alert(err.Error())
			} else {
				fmt.Fprintln(u.out, "Employee list cleared.")
			}
			continue
		default:
			return line, nil
		}
		renderTable(u.out, u.sess)
	}
}

// check shows validation failures to the user and passes anything else up.
func (u *ui) check(err error) error {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		u.alert(ve.Message)
		return nil
	}
	if errors.Is(err, form.ErrInvalidTransition) {
		u.alert(err.Error())
		return nil
	}
	return err
}

func (u *ui) alert(msg string) {
	fmt.Fprintf(u.out, "! %s\n", msg)
}

func renderTable(out io.Writer, sess *session.Session) {
	fmt.Fprintln(out, "\nEmployee Entries")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tSalary\tDate of Birth\tAge\tCurrent Address\tPermanent Address\tDepartment\tDesignation")
	for _, e := range sess.CurrentPage() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			e.Name, e.Salary, e.DOB, e.Age, e.CurrentAddress, e.PermanentAddress, e.Department, e.Designation)
	}
	tw.Flush()
	p := sess.Pager()
	fmt.Fprintf(out, "Page %d of %d\n", p.Current, p.Total())
}
