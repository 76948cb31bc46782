package i18n

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"

	"apmdigest/internal/domain/localization"
)

// unit is one translated string addressed by "<family>.<name>".
type unit struct {
	ID    string
	Value string
}

type xliffDocument struct {
	XMLName xml.Name    `xml:"xliff"`
	Files   []xliffFile `xml:"file"`
}

type xliffFile struct {
	Units []xliffUnit `xml:"body>trans-unit"`
}

type xliffUnit struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source"`
	Target string `xml:"target"`
}

var unmarshalFuncs = map[string]goi18n.UnmarshalFunc{
	"toml": toml.Unmarshal,
}

// readDocument extracts translation units from an XLIFF 1.2 or go-i18n TOML
// document, chosen by the document's file extension.
func readDocument(doc *localization.Document, locale string) ([]unit, error) {
	if doc == nil || len(doc.Data) == 0 {
		return nil, errors.New("empty translation document")
	}

	switch strings.ToLower(path.Ext(doc.Name)) {
	case ".toml":
		return readTOML(doc.Data, locale)
	default:
		return readXLIFF(doc.Data)
	}
}

func readXLIFF(data []byte) ([]unit, error) {
	var doc xliffDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse xliff: %w", err)
	}
	if len(doc.Files) == 0 {
		return nil, errors.New("parse xliff: no file element")
	}

	var units []unit
	for _, f := range doc.Files {
		for _, u := range f.Units {
			target := strings.TrimSpace(u.Target)
			if u.ID == "" || target == "" {
				continue
			}
			units = append(units, unit{ID: u.ID, Value: target})
		}
	}
	return units, nil
}

func readTOML(data []byte, locale string) ([]unit, error) {
	// go-i18n derives the language from the file name
	mf, err := goi18n.ParseMessageFileBytes(data, locale+".toml", unmarshalFuncs)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	units := make([]unit, 0, len(mf.Messages))
	for _, m := range mf.Messages {
		if strings.TrimSpace(m.Other) == "" {
			continue
		}
		units = append(units, unit{ID: m.ID, Value: m.Other})
	}
	return units, nil
}

// escapeFor reports whether values of key are HTML-escaped when the catalog is built.
// The subject is used raw in the mail header and escaped only where the body embeds it.
func escapeFor(key localization.Key) bool {
	return key != localization.DigestSubject
}
