package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type PDFReader interface {
	Text(ctx context.Context, pdf []byte) (string, error)
}

// PDFToText shells out to poppler's pdftotext.
type PDFToText struct {
	Binary string
}

func (p PDFToText) Text(ctx context.Context, pdf []byte) (string, error) {
	binary := p.Binary
	if binary == "" {
		binary = "pdftotext"
	}

	tempDir, err := os.MkdirTemp("", "pdftext_temp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	inputPath := filepath.Join(tempDir, "input.pdf")
	if err := os.WriteFile(inputPath, pdf, 0644); err != nil {
		return "", fmt.Errorf("failed to write pdf to temp file: %v", err)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-layout", "-enc", "UTF-8", inputPath, "-")
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext error: %v, details: %s", err, stderr.String())
	}

	return normalizeSpace(out.String()), nil
}

// StaticPDF stands in for pdftotext when the binary is not installed.
type StaticPDF string

func (s StaticPDF) Text(context.Context, []byte) (string, error) {
	return string(s), nil
}

// normalizeSpace collapses runs of blank lines and trailing spaces.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\f")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
