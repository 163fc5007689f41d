package cv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Parser extracts plain text from uploaded CV documents. Files are staged
// on disk because docconv converts by path.
type Parser struct {
	uploadsDir string
}

// ParsedCV holds the raw extraction output before candidate analysis
type ParsedCV struct {
	Filename string
	FileType string
	FileSize int64
	FullText string
}

func NewParser(uploadsDir string) *Parser {
	return &Parser{uploadsDir: uploadsDir}
}

// ParseFile extracts text from PDF/DOCX/TXT files
func (p *Parser) ParseFile(filename string, reader io.Reader) (*ParsedCV, error) {
	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	fileType := strings.ToLower(filepath.Ext(filename))

	// Staged under a unique name so concurrent uploads of the same
	// filename never share a path. The extension is kept because docconv
	// dispatches on it.
	file, err := os.CreateTemp(p.uploadsDir, "cv-*"+fileType)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	filePath := file.Name()
	defer file.Close()
	defer os.Remove(filePath)

	size, err := io.Copy(file, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	var text string

	switch fileType {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	return &ParsedCV{
		Filename: filename,
		FileType: fileType,
		FileSize: size,
		FullText: text,
	}, nil
}
