package ui

import (
	"errors"
	"fmt"
	"strings"

	"weekplan/internal/schedule"
	"weekplan/internal/timewindow"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formKind selects what a submitted form does.
type formKind int

const (
	formAddActivity formKind = iota
	formEditActivity
	formNewSchedule
)

// Field keys.
const (
	fieldDay         = "day"
	fieldName        = "name"
	fieldTime        = "time"
	fieldDescription = "description"
	fieldTests       = "tests"
	fieldDates       = "dates"
)

// listSeparator splits the tests and dates fields.
const listSeparator = ";"

// formResult tells the app what a key press did to the form.
type formResult int

const (
	formContinue formResult = iota
	formCancel
	formSubmit
)

type formField struct {
	key   string
	label string
	input textinput.Model
}

// Form is a small multi-field editor. Tab moves between fields, enter
// submits and esc cancels.
type Form struct {
	kind     formKind
	title    string
	targetID string // activity being edited
	fields   []formField
	focus    int
	err      string
	width    int

	keys   InputKeyMap
	styles *Styles
}

func newField(key, label, placeholder, value string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	ti.SetValue(value)
	return formField{key: key, label: label, input: ti}
}

func newForm(kind formKind, title string, styles *Styles, keys InputKeyMap, fields ...formField) *Form {
	f := &Form{
		kind:   kind,
		title:  title,
		fields: fields,
		keys:   keys,
		styles: styles,
	}
	f.setFocus(0)
	return f
}

// newAddActivityForm opens an empty activity form preset to day.
func newAddActivityForm(styles *Styles, keys InputKeyMap, day string) *Form {
	f := newForm(formAddActivity, "Add activity", styles, keys,
		newField(fieldDay, "Day", "Monday", day, 10),
		newField(fieldName, "Name", "Web Development", "", 100),
		newField(fieldTime, "Time", "9:00 AM - 10:30 AM", "", 40),
		newField(fieldDescription, "Description", "optional", "", 200),
		newField(fieldTests, "Upcoming tests", "Midterm; Quiz 3", "", 300),
		newField(fieldDates, "Important dates", "Project due Apr 5", "", 300),
	)
	// The day is usually right; start on the name.
	f.setFocus(1)
	return f
}

// newEditActivityForm opens a form prefilled from a.
func newEditActivityForm(styles *Styles, keys InputKeyMap, a schedule.Activity) *Form {
	f := newForm(formEditActivity, "Edit activity", styles, keys,
		newField(fieldName, "Name", "", a.Name, 100),
		newField(fieldTime, "Time", "9:00 AM - 10:30 AM", a.Time, 40),
		newField(fieldDescription, "Description", "optional", a.Description, 200),
		newField(fieldTests, "Upcoming tests", "Midterm; Quiz 3", strings.Join(a.UpcomingTests, listSeparator+" "), 300),
		newField(fieldDates, "Important dates", "Project due Apr 5", strings.Join(a.ImportantDates, listSeparator+" "), 300),
	)
	f.targetID = a.ID
	return f
}

// newScheduleForm opens the form for a new schedule.
func newScheduleForm(styles *Styles, keys InputKeyMap) *Form {
	return newForm(formNewSchedule, "New schedule", styles, keys,
		newField(fieldName, "Name", "Fall 2024 Semester", "", 100),
		newField(fieldDescription, "Description", "optional", "", 200),
	)
}

func (f *Form) setFocus(i int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// SetWidth resizes the inputs to fit width.
func (f *Form) SetWidth(width int) {
	f.width = width
	for i := range f.fields {
		f.fields[i].input.Width = max(10, min(60, width-24))
	}
}

// Value returns the trimmed text of the field with the given key.
func (f *Form) Value(key string) string {
	for _, fld := range f.fields {
		if fld.key == key {
			return strings.TrimSpace(fld.input.Value())
		}
	}
	return ""
}

// SetError shows msg under the fields until the next key press.
func (f *Form) SetError(msg string) {
	f.err = msg
}

// Update handles one message. Only key messages can end the form.
func (f *Form) Update(msg tea.Msg) (formResult, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		f.err = ""
		switch {
		case key.Matches(km, f.keys.Cancel):
			return formCancel, nil
		case key.Matches(km, f.keys.Confirm):
			return formSubmit, nil
		case key.Matches(km, f.keys.NextField):
			f.setFocus(f.focus + 1)
			return formContinue, nil
		case key.Matches(km, f.keys.PrevField):
			f.setFocus(f.focus - 1)
			return formContinue, nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return formContinue, cmd
}

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.styles.PaneTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i, fld := range f.fields {
		label := f.styles.InputLabelStyle.Render(fld.label)
		if i == f.focus {
			label = f.styles.InputPromptStyle.Inherit(f.styles.InputLabelStyle).Render(fld.label)
		}
		b.WriteString(label + " " + f.styles.InputTextStyle.Render(fld.input.View()) + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + f.styles.ErrorStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(f.styles.RenderHelp("tab", "next field", "enter", "save", "esc", "cancel"))

	style := f.styles.PaneFocusedStyle
	if f.width > 0 {
		style = style.Width(max(30, min(80, f.width-4)))
	}
	return style.Render(b.String())
}

// =============================================================================
// Submission
// =============================================================================

var errUnknownDay = errors.New("unknown day")

// activityInput is the validated content of an activity form.
type activityInput struct {
	day   string
	draft schedule.ActivityDraft
}

// activityFromForm validates the activity fields. The time is converted to
// its canonical "H:MM AM - H:MM PM" form before it reaches the store.
func activityFromForm(f *Form) (activityInput, error) {
	var in activityInput
	if f.kind == formAddActivity {
		in.day = schedule.CanonicalDay(f.Value(fieldDay))
		if in.day == "" {
			return in, fmt.Errorf("%w %q", errUnknownDay, f.Value(fieldDay))
		}
	}

	name := f.Value(fieldName)
	if name == "" {
		return in, schedule.ErrNameRequired
	}
	raw := f.Value(fieldTime)
	if raw == "" {
		return in, schedule.ErrTimeRequired
	}
	canonical, err := timewindow.Canonical(raw)
	if err != nil {
		return in, err
	}

	in.draft = schedule.ActivityDraft{
		Name:           name,
		Time:           canonical,
		Description:    f.Value(fieldDescription),
		UpcomingTests:  splitList(f.Value(fieldTests)),
		ImportantDates: splitList(f.Value(fieldDates)),
	}
	return in, nil
}

// patchFromDraft overwrites every editable field.
func patchFromDraft(d schedule.ActivityDraft) schedule.ActivityPatch {
	return schedule.ActivityPatch{
		Name:              &d.Name,
		Time:              &d.Time,
		Description:       &d.Description,
		UpcomingTests:     d.UpcomingTests,
		ImportantDates:    d.ImportantDates,
		SetUpcomingTests:  true,
		SetImportantDates: true,
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, listSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
