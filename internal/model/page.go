package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// PagePrefix is the blob key prefix of every page record.
	PagePrefix = "uploaded-pages/"
	// UserPrefix is the blob key prefix of every user credential.
	UserPrefix = "users-data/"
	// FlashcardPrefix is reserved for flashcard blobs, nothing in this module reads it.
	FlashcardPrefix = "flashcards/"

	// DefaultImage is used when a page is uploaded without an image.
	DefaultImage = "https://storage.googleapis.com/wikis-content/default-page-image.png"
)

// ErrMalformedRecord is returned when a stored page cannot be decoded into a Page.
var ErrMalformedRecord = errors.New("malformed page record")

// Page is a wiki article together with its edit history.
// The json field names are the persisted layout and must not change.
type Page struct {
	Name    string `json:"Name"`
	Author  string `json:"Author"`
	Content string `json:"Content"`
	Image   string `json:"Image"`
	Date    string `json:"Date"`
	Edits   []Edit `json:"Edits"`
}

// NewPage creates a page with no edits.
func NewPage(name, author, content, image, date string) *Page {
	if image == "" {
		image = DefaultImage
	}

	return &Page{
		Name:    name,
		Author:  author,
		Content: content,
		Image:   image,
		Date:    date,
		Edits:   make([]Edit, 0),
	}
}

// PageKey returns the blob key of the named page.
func PageKey(name string) string {
	return PagePrefix + name
}

// LastEdit returns a pointer to the most recently submitted edit.
func (p *Page) LastEdit() (*Edit, bool) {
	if len(p.Edits) == 0 {
		return nil, false
	}

	return &p.Edits[len(p.Edits)-1], true
}

// HasPendingEdit reports whether the latest edit still awaits the author's decision.
// Only the latest edit can be pending, so this is the single-pending check.
func (p *Page) HasPendingEdit() bool {
	last, ok := p.LastEdit()
	return ok && last.Status == StatusPending
}

// IsAuthoredBy compares usernames case-insensitively.
func (p *Page) IsAuthoredBy(username string) bool {
	return strings.EqualFold(p.Author, username)
}

// AppendEdit adds a pending edit proposed by editor.
func (p *Page) AppendEdit(editor, content, date string) {
	p.Edits = append(p.Edits, Edit{
		Content: content,
		Date:    date,
		Status:  StatusPending,
		Editor:  editor,
	})
}

func (p *Page) Encode() ([]byte, error) {
	if p.Edits == nil {
		// keep "Edits":[] so the record always decodes
		clone := *p
		clone.Edits = make([]Edit, 0)
		return json.Marshal(&clone)
	}

	return json.Marshal(p)
}

// pageRecord mirrors Page with pointer fields so missing keys can be told apart
// from empty values.
type pageRecord struct {
	Name    *string       `json:"Name"`
	Author  *string       `json:"Author"`
	Content *string       `json:"Content"`
	Image   *string       `json:"Image"`
	Date    *string       `json:"Date"`
	Edits   *[]editRecord `json:"Edits"`
}

type editRecord struct {
	Content *string     `json:"Content"`
	Date    *string     `json:"Date"`
	Status  *EditStatus `json:"Status"`
	Editor  *string     `json:"Editor"`
}

// DecodePage parses a stored page and validates the required fields.
func DecodePage(data []byte) (*Page, error) {
	var rec pageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	switch {
	case rec.Name == nil || *rec.Name == "":
		return nil, fmt.Errorf("%w: missing Name", ErrMalformedRecord)
	case rec.Author == nil:
		return nil, fmt.Errorf("%w: missing Author", ErrMalformedRecord)
	case rec.Content == nil:
		return nil, fmt.Errorf("%w: missing Content", ErrMalformedRecord)
	case rec.Edits == nil:
		return nil, fmt.Errorf("%w: missing Edits", ErrMalformedRecord)
	}

	page := &Page{
		Name:    *rec.Name,
		Author:  *rec.Author,
		Content: *rec.Content,
		Image:   deref(rec.Image),
		Date:    deref(rec.Date),
		Edits:   make([]Edit, 0, len(*rec.Edits)),
	}

	for i, e := range *rec.Edits {
		if e.Editor == nil {
			return nil, fmt.Errorf("%w: edit %d missing Editor", ErrMalformedRecord, i)
		}
		if e.Content == nil {
			return nil, fmt.Errorf("%w: edit %d missing Content", ErrMalformedRecord, i)
		}
		if e.Status == nil || !e.Status.Valid() {
			return nil, fmt.Errorf("%w: edit %d has invalid Status", ErrMalformedRecord, i)
		}

		page.Edits = append(page.Edits, Edit{
			Content: *e.Content,
			Date:    deref(e.Date),
			Status:  *e.Status,
			Editor:  *e.Editor,
		})
	}

	return page, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
