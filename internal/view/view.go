// Package view renders tracker data for the terminal using lipgloss.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/GokulM8/taskflow/internal/model"
)

// Status icons
const (
	iconTodo       = "○"
	iconInProgress = "◐"
	iconCompleted  = "●"
)

// histogramWidth is the length of the longest weekday bar.
const histogramWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusColors = map[model.Status]lipgloss.Color{
		model.StatusTodo:       lipgloss.Color("252"),
		model.StatusInProgress: lipgloss.Color("214"),
		model.StatusCompleted:  lipgloss.Color("42"),
	}

	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityLow:    lipgloss.Color("245"),
		model.PriorityMedium: lipgloss.Color("39"),
		model.PriorityHigh:   lipgloss.Color("196"),
	}
)

var weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusTodo:
		return iconTodo
	case model.StatusInProgress:
		return iconInProgress
	case model.StatusCompleted:
		return iconCompleted
	default:
		return "?"
	}
}

func styledStatus(s model.Status) string {
	style := lipgloss.NewStyle().Foreground(statusColors[s])
	return style.Render(statusIcon(s) + " " + string(s))
}

func styledPriority(p model.Priority) string {
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render(string(p))
}

func timestamp(t time.Time) string {
	return dimStyle.Render(t.Local().Format("2006-01-02 15:04"))
}

// Dashboard renders the status counts, recent tasks and the weekday
// histogram of completed tasks.
func Dashboard(d *model.Dashboard) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Projects:   "), d.TotalProjects)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Tasks:      "), d.TotalTasks)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Todo:       "), d.Todo)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("In progress:"), d.InProgress)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Completed:  "), d.Completed)

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Recent tasks"))
	b.WriteString("\n")
	if len(d.RecentTasks) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, t := range d.RecentTasks {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			lipgloss.NewStyle().Foreground(statusColors[t.Status]).Render(statusIcon(t.Status)),
			t.Title,
			dimStyle.Render("("+t.ProjectTitle+")"),
			styledPriority(t.Priority))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Completed by weekday created"))
	b.WriteString("\n")
	b.WriteString(Histogram(d.Weekday))

	return b.String()
}

// Histogram renders one bar per weekday, scaled to the busiest day.
func Histogram(counts [7]int) string {
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}

	var b strings.Builder
	for i, n := range counts {
		width := 0
		if peak > 0 {
			width = n * histogramWidth / peak
		}
		if n > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "  %s %s %d\n", weekdays[i], barStyle.Render(strings.Repeat("█", width)), n)
	}
	return b.String()
}

// Projects renders a project listing.
func Projects(projects []model.ProjectSummary) string {
	if len(projects) == 0 {
		return dimStyle.Render("No projects") + "\n"
	}
	var b strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			dimStyle.Render(fmt.Sprintf("#%-4d", p.ID)),
			titleStyle.Render(p.Title),
			styledStatus(p.Status),
			dimStyle.Render(fmt.Sprintf("[%d tasks]", p.TaskCount)))
	}
	return b.String()
}

// Project renders a single project.
func Project(p *model.Project) string {
	lines := []string{
		titleStyle.Render(p.Title),
		"",
		labelStyle.Render("ID:      ") + fmt.Sprint(p.ID),
		labelStyle.Render("Status:  ") + styledStatus(p.Status),
		labelStyle.Render("Created: ") + timestamp(p.CreatedAt),
	}
	if p.Description != "" {
		lines = append(lines, "", labelStyle.Render("Description:"), p.Description)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Tasks renders a task listing.
func Tasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks") + "\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		line := fmt.Sprintf("%s %s %s  %s",
			dimStyle.Render(fmt.Sprintf("#%-4d", t.ID)),
			lipgloss.NewStyle().Foreground(statusColors[t.Status]).Render(statusIcon(t.Status)),
			t.Title,
			styledPriority(t.Priority))
		if t.DueDate != nil {
			line += dimStyle.Render(" due " + *t.DueDate)
		}
		if t.ProjectTitle != "" {
			line += dimStyle.Render(" (" + t.ProjectTitle + ")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Task renders a single task.
func Task(t *model.Task) string {
	lines := []string{
		titleStyle.Render(t.Title),
		"",
		labelStyle.Render("ID:       ") + fmt.Sprint(t.ID),
		labelStyle.Render("Project:  ") + fmt.Sprintf("%s (#%d)", t.ProjectTitle, t.ProjectID),
		labelStyle.Render("Status:   ") + styledStatus(t.Status),
		labelStyle.Render("Priority: ") + styledPriority(t.Priority),
	}
	if t.DueDate != nil {
		lines = append(lines, labelStyle.Render("Due:      ")+*t.DueDate)
	}
	lines = append(lines, labelStyle.Render("Created:  ")+timestamp(t.CreatedAt))
	if t.Description != "" {
		lines = append(lines, "", labelStyle.Render("Description:"), t.Description)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Activity renders activity entries, newest first as given.
func Activity(entries []model.ActivityEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No activity") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		task := dimStyle.Render("(deleted)")
		if e.TaskID != nil {
			task = fmt.Sprintf("#%d", *e.TaskID)
		}
		fmt.Fprintf(&b, "%s %s %s\n", timestamp(e.CreatedAt), e.Action, task)
	}
	return b.String()
}

// User renders an account summary.
func User(u *model.User) string {
	return fmt.Sprintf("%s %s\n%s %s\n",
		labelStyle.Render("Name: "), u.Name,
		labelStyle.Render("Email:"), u.Email)
}
