package filter

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/emrgen/wiki/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFilters(t *testing.T) {
	tests := []struct {
		name   string
		status model.EditStatus
		color  string
		label  string
	}{
		{name: "pending", status: model.StatusPending, color: "grey", label: "Pending"},
		{name: "accepted", status: model.StatusAccepted, color: "green", label: "Accepted"},
		{name: "declined", status: model.StatusDeclined, color: "red", label: "Declined"},
		{name: "unknown", status: model.EditStatus(42), color: "red", label: "Declined"},
		{name: "zero", status: model.EditStatus(0), color: "red", label: "Declined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.color, StatusColor(tt.status))
			assert.Equal(t, tt.label, StatusName(tt.status))
		})
	}
}

func TestFuncMap(t *testing.T) {
	tmpl, err := template.New("edit").Funcs(FuncMap()).
		Parse(`<span style="color:{{statusColor .}}">{{statusName .}}</span>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, model.StatusAccepted))
	assert.Equal(t, `<span style="color:green">Accepted</span>`, buf.String())
}
