package commands

import (
	"fmt"
	"strings"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// fillColor picks a color for an assigned/requested pair:
// green when full, yellow when at least half full, red otherwise
func fillColor(assigned, requested int, green, yellow, red string) string {
	if assigned >= requested {
		return green
	}
	if assigned*2 >= requested {
		return yellow
	}
	return red
}

// formatAssigned lists the names assigned to a role, marking empty places
func formatAssigned(role model.RoleAllocation) string {
	names := make([]string, 0, role.Requested)
	for _, staff := range role.Assigned {
		name := staff.DisplayName
		if name == "" {
			name = staff.StaffID
		}
		if staff.Band > 0 {
			name = fmt.Sprintf("%s (B%d)", name, staff.Band)
		}
		names = append(names, name)
	}
	for i := 0; i < role.Unfilled(); i++ {
		names = append(names, "[unfilled]")
	}
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// printSessionTable prints one row per role for each session
func printSessionTable(sessions []model.SessionAllocation) {
	sessionColWidth := 24
	for _, session := range sessions {
		if len(session.SessionID)+2 > sessionColWidth {
			sessionColWidth = len(session.SessionID) + 2
		}
	}
	typeColWidth := 10
	roleColWidth := 22
	fillColWidth := 7

	fmt.Printf("%s%-*s%-*s%-*s%-*s%s%s\n",
		colorBold,
		sessionColWidth, "Session",
		typeColWidth, "Type",
		roleColWidth, "Role",
		fillColWidth, "Fill",
		"Staff",
		colorReset)
	fmt.Println(strings.Repeat("-", sessionColWidth+typeColWidth+roleColWidth+fillColWidth+30))

	for _, session := range sessions {
		if len(session.Roles) == 0 {
			fmt.Printf("%-*s%-*s%s(closed)%s\n", sessionColWidth, session.SessionID, typeColWidth, session.SessionType, colorDim, colorReset)
			continue
		}

		for i, role := range session.Roles {
			sessionCell, typeCell := "", ""
			if i == 0 {
				sessionCell, typeCell = session.SessionID, session.SessionType
			}

			fill := fmt.Sprintf("%d/%d", len(role.Assigned), role.Requested)
			color := fillColor(len(role.Assigned), role.Requested, colorGreen, colorYellow, colorRed)

			fmt.Printf("%-*s%-*s%-*s%s%-*s%s%s\n",
				sessionColWidth, sessionCell,
				typeColWidth, typeCell,
				roleColWidth, role.Role,
				color, fillColWidth, fill, colorReset,
				formatAssigned(role))
		}
	}
}
