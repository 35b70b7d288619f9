// Package filter formats edit statuses for templates and terminals.
package filter

import (
	"html/template"

	"github.com/emrgen/wiki/internal/model"
)

// StatusColor returns grey for pending, green for accepted and red otherwise.
func StatusColor(status model.EditStatus) string {
	switch status {
	case model.StatusPending:
		return "grey"
	case model.StatusAccepted:
		return "green"
	default:
		return "red"
	}
}

// StatusName returns the display name of a status. Unknown values read as Declined.
func StatusName(status model.EditStatus) string {
	switch status {
	case model.StatusPending:
		return "Pending"
	case model.StatusAccepted:
		return "Accepted"
	default:
		return "Declined"
	}
}

// FuncMap registers the status filters for html/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"statusColor": StatusColor,
		"statusName":  StatusName,
	}
}
