package resume

import (
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Converter turns a stored résumé file into plain text. PDF and DOCX go
// through docconv; anything else is treated as already-plain text.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) ConvertPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", err
		}
		return res.Body, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

