// Package ui provides the terminal interface for weekplan.
// This file contains the main App model which routes keys, runs store
// commands and renders the current view using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"weekplan/internal/config"
	"weekplan/internal/layout"
	"weekplan/internal/reports"
	"weekplan/internal/schedule"
	"weekplan/internal/views"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewOrder is the cycle order of the view-mode tabs.
var viewOrder = []schedule.ViewMode{schedule.ViewDaily, schedule.ViewWeekly, schedule.ViewSchedule}

// viewLabels are the tab titles of each view mode.
var viewLabels = map[schedule.ViewMode]string{
	schedule.ViewDaily:    "Daily",
	schedule.ViewWeekly:   "Weekly",
	schedule.ViewSchedule: "Grid",
}

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	ConfirmClear          bool
	NarrowLayoutThreshold int

	// Slots are the grid rows; nil means 8 AM to 6 PM.
	Slots []layout.Slot

	// ExportDir receives schedule-backup-YYYY-MM-DD.json files.
	ExportDir string

	Now func() time.Time
}

// App is the main application model.
type App struct {
	store       *schedule.Store
	styles      *Styles
	config      *AppConfig
	helpOverlay *HelpOverlay
	history     *History
	undoBusy    bool
	confirm     *confirmState
	form        *Form
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	now         func() time.Time

	// Selection: a weekday and an activity index within it.
	dayIdx int
	cursor int

	// Key bindings
	keys         GlobalKeyMap
	activityKeys ActivityKeyMap
	scheduleKeys ScheduleKeyMap
	inputKeys    InputKeyMap
	helpKeys     HelpKeyMap
}

type confirmState struct {
	title  string
	body   string
	action string // verb shown on the confirm hint
	cmd    tea.Cmd
}

// NewApp creates the application around store. The selected day starts on
// today's weekday.
func NewApp(store *schedule.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			ConfirmClear:          true,
			NarrowLayoutThreshold: 100,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Slots == nil {
		cfg.Slots = layout.DefaultSlots()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	app := &App{
		store:        store,
		styles:       styles,
		config:       cfg,
		helpOverlay:  NewHelpOverlay(styles),
		history:      NewHistory(store, 0),
		now:          now,
		dayIdx:       max(0, schedule.DayIndex(views.Weekday(now()))),
		keys:         NewGlobalKeyMap(cfg.Keys),
		activityKeys: NewActivityKeyMap(cfg.Keys),
		scheduleKeys: NewScheduleKeyMap(cfg.Keys),
		inputKeys:    NewInputKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}
	app.helpOverlay.SetKeys(app.keys, app.activityKeys, app.scheduleKeys, app.inputKeys)
	return app
}

// tickMsg is sent periodically to expire status messages and refresh the
// clock.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the clock. The store is already loaded.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// ===== Selection helpers =====

func (a *App) day() string {
	return schedule.Weekdays[a.dayIdx]
}

func (a *App) mode() schedule.ViewMode {
	if m := a.store.ViewMode(); m.Valid() {
		return m
	}
	return schedule.ViewWeekly
}

func (a *App) dayActivities() []schedule.Activity {
	days := a.store.CurrentDays()
	if a.dayIdx < 0 || a.dayIdx >= len(days) {
		return nil
	}
	return days[a.dayIdx].Activities
}

func (a *App) selected() (schedule.Activity, bool) {
	acts := a.dayActivities()
	if a.cursor < 0 || a.cursor >= len(acts) {
		return schedule.Activity{}, false
	}
	return acts[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.dayActivities())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selectActivity moves the selection onto the activity with the given id.
func (a *App) selectActivity(day, id string) {
	if i := schedule.DayIndex(day); i >= 0 {
		a.dayIdx = i
	}
	for i, act := range a.dayActivities() {
		if act.ID == id {
			a.cursor = i
			return
		}
	}
	a.clampCursor()
}

func (a *App) moveDay(delta int) {
	n := len(schedule.Weekdays)
	a.dayIdx = ((a.dayIdx+delta)%n + n) % n
	a.clampCursor()
}

// pushSnapshot records an undo step unless the mutation was a no-op.
func (a *App) pushSnapshot(desc string, before, after schedule.State) {
	if len(before.Schedules) == 0 {
		return
	}
	a.history.Record(desc, before, after)
}

// ===== Update =====

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Store command results are handled first, whatever is on screen.
	switch msg := msg.(type) {
	case activitySavedMsg:
		if msg.err != nil {
			a.SetStatus("Save activity: "+msg.err.Error(), true)
			return a, nil
		}
		verb := "Added"
		if msg.edited {
			verb = "Edited"
		}
		a.pushSnapshot(verb+": "+truncateText(msg.activity.Name, 20), msg.before, msg.after)
		a.selectActivity(msg.day, msg.activity.ID)
		a.SetStatus(fmt.Sprintf("%s %s on %s", verb, msg.activity.Name, msg.day), false)
		return a, nil

	case activityDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete activity: "+msg.err.Error(), true)
			return a, nil
		}
		a.pushSnapshot("Deleted: "+truncateText(msg.name, 20), msg.before, msg.after)
		a.clampCursor()
		a.SetStatus("Deleted "+msg.name, false)
		return a, nil

	case scheduleChangedMsg:
		if msg.err != nil {
			a.SetStatus(fmt.Sprintf("%s schedule: %s", msg.op, msg.err.Error()), true)
			return a, nil
		}
		a.pushSnapshot(fmt.Sprintf("%s schedule: %s", msg.op, truncateText(msg.schedule.Name, 20)), msg.before, msg.after)
		a.cursor = 0
		a.clampCursor()
		a.SetStatus(fmt.Sprintf("%s schedule %s", msg.op, msg.schedule.Name), false)
		return a, nil

	case scheduleSelectedMsg:
		a.cursor = 0
		a.clampCursor()
		if cur, ok := a.store.Current(); ok {
			a.SetStatus("Schedule: "+cur.Name, false)
		}
		return a, nil

	case viewModeChangedMsg:
		if msg.err != nil {
			a.SetStatus("View: "+msg.err.Error(), true)
		}
		return a, nil

	case clearedMsg:
		a.pushSnapshot("Cleared all schedules", msg.before, msg.after)
		a.cursor = 0
		a.SetStatus("All schedules cleared", false)
		return a, nil

	case exportedMsg:
		if msg.err != nil {
			a.SetStatus("Export: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Exported to "+msg.path, false)
		return a, nil

	case undoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Undid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to undo", false)
		}
		a.clampCursor()
		return a, nil

	case redoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Redid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to redo", false)
		}
		a.clampCursor()
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.helpOverlay.SetSize(a.width, a.height)
		if a.form != nil {
			a.form.SetWidth(a.width)
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.confirm != nil || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.cursor--
			a.clampCursor()
		case tea.MouseButtonWheelDown:
			a.cursor++
			a.clampCursor()
		}
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Anything else (cursor blinks) belongs to the open form.
	if a.form != nil {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirm.cmd
			a.confirm = nil
			return a, cmd
		case "n", "N", "esc":
			a.confirm = nil
			a.SetStatus("Canceled", false)
			return a, nil
		default:
			return a, nil
		}
	}

	if a.form != nil {
		result, cmd := a.form.Update(msg)
		switch result {
		case formCancel:
			a.form = nil
			a.SetStatus("Canceled", false)
			return a, nil
		case formSubmit:
			return a, a.submitForm()
		}
		return a, cmd
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.ViewDaily):
		return a, setViewModeCmd(a.store, schedule.ViewDaily)

	case key.Matches(msg, a.keys.ViewWeekly):
		return a, setViewModeCmd(a.store, schedule.ViewWeekly)

	case key.Matches(msg, a.keys.ViewGrid):
		return a, setViewModeCmd(a.store, schedule.ViewSchedule)

	case key.Matches(msg, a.keys.CycleView):
		return a, setViewModeCmd(a.store, nextViewMode(a.mode()))

	case key.Matches(msg, a.keys.Export):
		return a, exportCmd(a.store, a.config.ExportDir, a.now())

	case key.Matches(msg, a.keys.Undo):
		if a.undoBusy {
			a.SetStatus("Undo: busy", true)
			return a, nil
		}
		a.undoBusy = true
		return a, undoCmd(a.history)

	case key.Matches(msg, a.keys.Redo):
		if a.undoBusy {
			a.SetStatus("Redo: busy", true)
			return a, nil
		}
		a.undoBusy = true
		return a, redoCmd(a.history)

	// Navigation
	case key.Matches(msg, a.activityKeys.Up):
		a.cursor--
		a.clampCursor()
		return a, nil

	case key.Matches(msg, a.activityKeys.Down):
		a.cursor++
		a.clampCursor()
		return a, nil

	case key.Matches(msg, a.activityKeys.Top):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, a.activityKeys.Bottom):
		a.cursor = len(a.dayActivities()) - 1
		a.clampCursor()
		return a, nil

	case key.Matches(msg, a.activityKeys.PrevDay):
		a.moveDay(-1)
		return a, nil

	case key.Matches(msg, a.activityKeys.NextDay):
		a.moveDay(1)
		return a, nil

	// Activities
	case key.Matches(msg, a.activityKeys.Add):
		a.openForm(newAddActivityForm(a.styles, a.inputKeys, a.day()))
		return a, nil

	case key.Matches(msg, a.activityKeys.Edit):
		act, ok := a.selected()
		if !ok {
			a.SetStatus("No activity selected", true)
			return a, nil
		}
		a.openForm(newEditActivityForm(a.styles, a.inputKeys, act))
		return a, nil

	case key.Matches(msg, a.activityKeys.Delete):
		act, ok := a.selected()
		if !ok {
			a.SetStatus("No activity selected", true)
			return a, nil
		}
		cmd := deleteActivityCmd(a.store, act.ID)
		if a.config.ConfirmDeletions {
			a.confirm = &confirmState{
				title:  "Delete activity?",
				body:   truncateText(act.Name+" ("+act.Time+")", 60),
				action: "delete",
				cmd:    cmd,
			}
			return a, nil
		}
		return a, cmd

	// Schedules
	case key.Matches(msg, a.scheduleKeys.Next):
		return a, a.cycleSchedule(1)

	case key.Matches(msg, a.scheduleKeys.Prev):
		return a, a.cycleSchedule(-1)

	case key.Matches(msg, a.scheduleKeys.New):
		a.openForm(newScheduleForm(a.styles, a.inputKeys))
		return a, nil

	case key.Matches(msg, a.scheduleKeys.Duplicate):
		cur, ok := a.store.Current()
		if !ok {
			a.SetStatus("No schedule selected", true)
			return a, nil
		}
		return a, duplicateScheduleCmd(a.store, cur.ID)

	case key.Matches(msg, a.scheduleKeys.Delete):
		cur, ok := a.store.Current()
		if !ok {
			a.SetStatus("No schedule selected", true)
			return a, nil
		}
		if len(a.store.Snapshot().Schedules) <= 1 {
			a.SetStatus(schedule.ErrLastSchedule.Error(), true)
			return a, nil
		}
		cmd := deleteScheduleCmd(a.store, cur.ID)
		if a.config.ConfirmDeletions {
			a.confirm = &confirmState{
				title:  "Delete schedule?",
				body:   fmt.Sprintf("%s (%d activities)", truncateText(cur.Name, 40), cur.ActivityCount()),
				action: "delete",
				cmd:    cmd,
			}
			return a, nil
		}
		return a, cmd

	case key.Matches(msg, a.scheduleKeys.ClearAll):
		cmd := clearAllCmd(a.store)
		if a.config.ConfirmClear {
			a.confirm = &confirmState{
				title:  "Clear everything?",
				body:   "Every schedule is replaced by one empty schedule.",
				action: "clear",
				cmd:    cmd,
			}
			return a, nil
		}
		return a, cmd
	}

	return a, nil
}

func nextViewMode(m schedule.ViewMode) schedule.ViewMode {
	for i, v := range viewOrder {
		if v == m {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return schedule.ViewWeekly
}

// cycleSchedule selects the schedule delta positions away from the current
// one, wrapping around.
func (a *App) cycleSchedule(delta int) tea.Cmd {
	st := a.store.Snapshot()
	n := len(st.Schedules)
	if n < 2 {
		a.SetStatus("Only one schedule", false)
		return nil
	}
	idx := 0
	for i, s := range st.Schedules {
		if s.ID == st.CurrentScheduleID {
			idx = i
			break
		}
	}
	next := st.Schedules[((idx+delta)%n+n)%n]
	return selectScheduleCmd(a.store, next.ID)
}

func (a *App) openForm(f *Form) {
	f.SetWidth(a.width)
	a.form = f
}

// submitForm validates the open form. Invalid input keeps the form open
// with an error; valid input closes it and returns the store command.
func (a *App) submitForm() tea.Cmd {
	f := a.form
	switch f.kind {
	case formNewSchedule:
		name := f.Value(fieldName)
		if name == "" {
			f.SetError(schedule.ErrNameRequired.Error())
			return nil
		}
		a.form = nil
		return createScheduleCmd(a.store, name, f.Value(fieldDescription))

	case formAddActivity, formEditActivity:
		in, err := activityFromForm(f)
		if err != nil {
			f.SetError(err.Error())
			return nil
		}
		a.form = nil
		if f.kind == formEditActivity {
			return editActivityCmd(a.store, f.targetID, patchFromDraft(in.draft))
		}
		return addActivityCmd(a.store, in.day, in.draft)
	}
	a.form = nil
	return nil
}

// ===== View =====

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirm != nil {
		return a.renderConfirm()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.renderViewTabs())
	b.WriteString("\n")

	if a.form != nil {
		b.WriteString(a.form.View())
	} else {
		v := views.Project(a.store.Snapshot(), a.mode(), views.Options{
			Focus: a.day(),
			Slots: a.config.Slots,
			Now:   a.now,
		})
		b.WriteString(a.renderView(v))
	}
	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirm.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("[y/enter] %s    [n/esc] cancel", a.confirm.action)))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows an exit message with a summary of the current week.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if cur, ok := a.store.Current(); ok {
		gen := reports.NewGenerator()
		gen.SetNowFunc(a.now)
		r := gen.GenerateWeekly(cur)
		if r.TotalActivities > 0 {
			b.WriteString(fmt.Sprintf("  %s:\n", cur.Name))
			b.WriteString(fmt.Sprintf("     Activities: %d\n", r.TotalActivities))
			b.WriteString(fmt.Sprintf("     Scheduled:  %s per week\n", formatMinutes(r.TotalMinutes)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderTitleBar shows the app name, the current schedule and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" weekplan ")

	name := views.FallbackTitle
	st := a.store.Snapshot()
	pos := 0
	for i, s := range st.Schedules {
		if s.ID == st.CurrentScheduleID {
			name = s.Name
			pos = i + 1
			break
		}
	}
	label := a.styles.StatValueStyle.Render(truncateText(name, 40))
	if len(st.Schedules) > 1 && pos > 0 {
		label += a.styles.StatLabelStyle.Render(fmt.Sprintf(" (%d/%d)", pos, len(st.Schedules)))
	}

	date := a.styles.DateStyle.Render(a.now().Format("Mon Jan 2 · 15:04"))

	used := lipgloss.Width(title) + lipgloss.Width(label) + lipgloss.Width(date) + 2
	spacer := a.width - used
	if spacer < 2 {
		spacer = 2
	}
	return title + "  " + label + strings.Repeat(" ", spacer) + date
}

// renderViewTabs renders the view-mode tab bar.
func (a *App) renderViewTabs() string {
	current := a.mode()
	var parts []string
	for _, m := range viewOrder {
		label := viewLabels[m]
		if m == current {
			parts = append(parts, a.styles.TabActiveStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, a.styles.TabInactiveStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, "  ")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.form != nil {
		return a.styles.RenderHelp(
			"tab", "next field",
			"enter", "save",
			"esc", "cancel",
		)
	}

	return a.styles.RenderHelp(
		"a", "add",
		"e", "edit",
		"x", "del",
		"h/l", "day",
		"1/2/3", "view",
		"[/]", "schedule",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program around store.
func Run(store *schedule.Store, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
