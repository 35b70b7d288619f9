package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_DefaultImage(t *testing.T) {
	page := NewPage("p1", "bob", "orig", "", "2024-01-01")
	assert.Equal(t, DefaultImage, page.Image)
	assert.NotNil(t, page.Edits)
	assert.Empty(t, page.Edits)

	page = NewPage("p2", "bob", "orig", "https://img", "2024-01-01")
	assert.Equal(t, "https://img", page.Image)
}

func TestPage_HasPendingEdit(t *testing.T) {
	page := NewPage("p1", "bob", "orig", "", "2024-01-01")
	assert.False(t, page.HasPendingEdit())

	page.AppendEdit("alice", "new text", "2024-01-02")
	assert.True(t, page.HasPendingEdit())

	last, ok := page.LastEdit()
	require.True(t, ok)
	last.Status = StatusDeclined
	assert.False(t, page.HasPendingEdit())
	assert.Equal(t, StatusDeclined, page.Edits[0].Status)
}

func TestPage_EncodeDecode(t *testing.T) {
	page := NewPage("p1", "Bob", "orig", "", "2024-01-01")
	page.AppendEdit("alice", "new text", "2024-01-02")

	data, err := page.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Name":"p1","Author":"Bob","Content":"orig","Image":"`+DefaultImage+`","Date":"2024-01-01",
		"Edits":[{"Content":"new text","Date":"2024-01-02","Status":1,"Editor":"alice"}]
	}`, string(data))

	got, err := DecodePage(data)
	require.NoError(t, err)
	assert.Equal(t, page, got)
}

func TestDecodePage_KeepsStoredImage(t *testing.T) {
	stored := `{"Name":"p1","Author":"bob","Content":"orig","Image":"","Date":"2024-01-01","Edits":[]}`

	page, err := DecodePage([]byte(stored))
	require.NoError(t, err)
	assert.Empty(t, page.Image)

	data, err := page.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(data))
}

func TestPage_EncodeNilEdits(t *testing.T) {
	page := &Page{Name: "p1", Author: "bob"}
	data, err := page.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Edits":[]`)
	assert.Nil(t, page.Edits)
}

func TestDecodePage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not json`},
		{name: "missing name", data: `{"Author":"bob","Content":"","Edits":[]}`},
		{name: "missing author", data: `{"Name":"p1","Content":"","Edits":[]}`},
		{name: "missing content", data: `{"Name":"p1","Author":"bob","Edits":[]}`},
		{name: "missing edits", data: `{"Name":"p1","Author":"bob","Content":""}`},
		{name: "edit without editor", data: `{"Name":"p1","Author":"bob","Content":"","Edits":[{"Content":"x","Status":1}]}`},
		{name: "edit with bad status", data: `{"Name":"p1","Author":"bob","Content":"","Edits":[{"Content":"x","Status":7,"Editor":"a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePage([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	page := NewPage("p1", "Bob", "orig", "", "")
	assert.True(t, page.IsAuthoredBy("bob"))
	assert.True(t, page.IsAuthoredBy("BOB"))
	assert.False(t, page.IsAuthoredBy("alice"))

	edit := Edit{Editor: "alice"}
	assert.True(t, edit.IsBy("Alice"))
}

func TestEditStatus(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.False(t, EditStatus(0).Valid())
	assert.False(t, EditStatus(4).Valid())
}
