package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Title       string
	Description string
	Date        string
	Completed   bool
	Selected    bool
}

type FormData struct {
	Heading          string
	Date             string
	TitleView        string
	DescriptionView  string
	FocusDescription bool
}

type DetailData struct {
	Title        string
	Date         string
	Completed    bool
	UserID       int64
	ViewportView string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderLoading(spinnerView string) string {
	return fmt.Sprintf("%s Loading tasks...", spinnerView)
}

// RenderError shows one message for every failure kind.
func RenderError(detail string) string {
	out := errorStyle.Render("Something went wrong while loading tasks.")
	if strings.TrimSpace(detail) != "" {
		out += "\n" + mutedStyle.Render(detail)
	}
	return out
}

func RenderEmpty() string {
	return mutedStyle.Render("No tasks yet. Press n to create one.")
}

func RenderNoMatches(query string) string {
	return mutedStyle.Render(fmt.Sprintf("No tasks match %q.", query))
}

func RenderTaskRows(rows []TaskRowData) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := " "
		if row.Selected {
			marker = selectedMarker
		}
		check := "[ ]"
		title := row.Title
		if row.Completed {
			check = accentStyle.Render("[x]")
			title = doneStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s %s %s", marker, check, title)
		if desc := firstLine(row.Description); desc != "" {
			fmt.Fprintf(&b, "\n      %s", mutedStyle.Render(desc))
		}
		if row.Date != "" {
			fmt.Fprintf(&b, "\n      %s", mutedStyle.Render(row.Date))
		}
	}
	return b.String()
}

func RenderSearchBar(inputView string, active bool) string {
	if active {
		return accentStyle.Render("search ") + inputView
	}
	return mutedStyle.Render("search ") + inputView
}

func RenderForm(data FormData) string {
	descLabel := "description"
	titleLabel := "title"
	if data.FocusDescription {
		descLabel = accentStyle.Render(descLabel)
	} else {
		titleLabel = accentStyle.Render(titleLabel)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n%s\n\n%s",
		headerStyle.Render(data.Heading),
		mutedStyle.Render(data.Date),
		titleLabel,
		data.TitleView,
		descLabel,
		data.DescriptionView,
		footerStyle.Render("tab switch field | ctrl+s or esc save and go back"),
	)
}

func RenderDetail(data DetailData) string {
	state := "open"
	if data.Completed {
		state = "completed"
	}
	return fmt.Sprintf("%s\n%s\n\n%s",
		headerStyle.Render(data.Title),
		mutedStyle.Render(fmt.Sprintf("%s | %s | user %d", data.Date, state, data.UserID)),
		data.ViewportView,
	)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command:\n%s\n\n%s", inputView,
		mutedStyle.Render("add <title> | search [query] | toggle | delete | share"))
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// RenderTaskCount formats the footer counter, e.g. "3 Tasks".
func RenderTaskCount(n int) string {
	if n == 1 {
		return "1 Task"
	}
	return fmt.Sprintf("%d Tasks", n)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return s
}
