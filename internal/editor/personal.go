package editor

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/cv-builder/internal/types"
)

// PhotoError is returned when an uploaded file is not an image.
type PhotoError struct {
	MIME string
}

func (e *PhotoError) Error() string {
	return fmt.Sprintf("photo must be an image, got %s", e.MIME)
}

// PersonalEditor edits the singleton PersonalInfo record. Every edit
// replaces the whole record.
type PersonalEditor struct {
	load  func() types.PersonalInfo
	store func(types.PersonalInfo)
}

// NewPersonal creates an editor over the given record accessors.
func NewPersonal(load func() types.PersonalInfo, store func(types.PersonalInfo)) *PersonalEditor {
	return &PersonalEditor{load: load, store: store}
}

// Info returns the current record.
func (p *PersonalEditor) Info() types.PersonalInfo {
	return p.load()
}

// Update replaces one field and emits the new record.
func (p *PersonalEditor) Update(field string, value any) error {
	updated, err := p.load().WithField(field, value)
	if err != nil {
		return err
	}
	p.store(updated)
	return nil
}

// SetPhoto embeds raw file contents as a data URL on the record.
// Anything that does not sniff as an image is rejected.
func (p *PersonalEditor) SetPhoto(content []byte) (string, error) {
	dataURL, err := PhotoDataURL(content)
	if err != nil {
		return "", err
	}
	return dataURL, p.Update("photo", dataURL)
}

// ClearPhoto removes the photo.
func (p *PersonalEditor) ClearPhoto() {
	info := p.load()
	info.Photo = nil
	p.store(info)
}

// PhotoDataURL encodes an image file as an inline data URL.
func PhotoDataURL(content []byte) (string, error) {
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", &PhotoError{MIME: mtype.String()}
	}
	// Drop parameters such as "; charset=utf-8" that svg detection can add.
	mediaType := strings.SplitN(mtype.String(), ";", 2)[0]
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}
