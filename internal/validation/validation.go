// Package validation checks user-supplied form and JSON fields. Messages
// are shown to users as is, so they are in Turkish like the pages.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field limits, matching the column sizes. Post content is a text column
// and has no limit.
const (
	MaxUsernameLength = 150
	MaxPasswordLength = 150
	MaxPlantField     = 100
	MaxSpeciesLength  = 100
	MaxNoteLength     = 200
)

// Field labels used in messages.
const (
	LabelUsername = "Kullanıcı adı"
	LabelPassword = "Şifre"
	LabelName     = "Bitki adı"
	LabelSpecies  = "Tür"
	LabelContent  = "İçerik"
	LabelNote     = "Not"
)

func requiredMessage(label string) error {
	return fmt.Errorf("%s boş bırakılamaz.", label)
}

func tooLongMessage(label string, max int) error {
	return fmt.Errorf("%s en fazla %d karakter olabilir.", label, max)
}

func required(label, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return requiredMessage(label)
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return tooLongMessage(label, max)
	}
	return nil
}

// ValidateUsername expects an already trimmed username. Inner spaces are
// allowed.
func ValidateUsername(username string) error {
	return required(LabelUsername, username, MaxUsernameLength)
}

// ValidatePassword only bounds the length; passwords are stored as given.
func ValidatePassword(password string) error {
	if password == "" {
		return requiredMessage(LabelPassword)
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return tooLongMessage(LabelPassword, MaxPasswordLength)
	}
	return nil
}

func ValidatePlant(name, species string) error {
	if err := required(LabelName, name, MaxPlantField); err != nil {
		return err
	}
	return required(LabelSpecies, species, MaxSpeciesLength)
}

func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return tooLongMessage(LabelNote, MaxNoteLength)
	}
	return nil
}

// ValidatePost checks a forum post's species tag and body.
func ValidatePost(species, content string) error {
	if err := required(LabelSpecies, species, MaxSpeciesLength); err != nil {
		return err
	}
	return required(LabelContent, content, 0)
}
