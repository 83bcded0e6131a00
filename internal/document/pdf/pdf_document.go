// Package pdf adapts a PDF file to the pipeline's document contract using
// pdfcpu. Text comes from page content streams; page rendering is out of
// scope here, so vision-style parsing needs an external renderer.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is a pdfcpu-backed implementation of port.Document.
type Document struct {
	raw   []byte
	ctx   *model.Context
	title string
}

// New validates and opens a PDF from raw bytes.
func New(raw []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	title := ""
	if ctx.XRefTable != nil {
		title = strings.TrimSpace(ctx.XRefTable.Title)
	}
	return &Document{raw: raw, ctx: ctx, title: title}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageText extracts the text of the 0-indexed page from its content stream.
func (d *Document) PageText(page int) (string, error) {
	if page < 0 || page >= d.ctx.PageCount {
		return "", fmt.Errorf("page %d out of range [0,%d)", page, d.ctx.PageCount)
	}
	reader, err := pdfcpu.ExtractPageContent(d.ctx, page+1)
	if err != nil {
		return "", fmt.Errorf("extracting page %d content: %w", page, err)
	}
	if reader == nil {
		return "", nil
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading page %d content: %w", page, err)
	}
	return textFromContentStream(string(content)), nil
}

// PageImage is unsupported: pdfcpu does not rasterize pages.
func (d *Document) PageImage(int) ([]byte, error) {
	return nil, fmt.Errorf("page rendering not supported by the pdf adapter")
}

// Bytes returns the raw PDF content.
func (d *Document) Bytes() ([]byte, error) {
	return d.raw, nil
}

// Title returns the document title metadata, or "".
func (d *Document) Title() string {
	return d.title
}

// textFromContentStream pulls the literal strings shown by text operators
// (Tj, TJ, ', ") out of a PDF content stream. Layout positioning is ignored;
// strings come out in stream order, one per line.
func textFromContentStream(content string) string {
	var out strings.Builder
	i := 0
	for i < len(content) {
		if content[i] != '(' {
			i++
			continue
		}
		str, next := literalString(content, i)
		if next == i {
			i++
			continue
		}
		i = next
		if decoded := decodeLiteral(str); strings.TrimSpace(decoded) != "" {
			out.WriteString(decoded)
			out.WriteString("\n")
		}
	}
	return out.String()
}

// literalString reads one parenthesized string starting at start, handling
// escapes and nested parentheses. Returns the inner content and the index
// after the closing parenthesis; next == start signals no string.
func literalString(content string, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(content) {
		ch := content[i]
		if ch == '\\' && i+1 < len(content) {
			sb.WriteByte(ch)
			sb.WriteByte(content[i+1])
			i += 2
			continue
		}
		switch ch {
		case '(':
			depth++
			if depth > 1 {
				sb.WriteByte(ch)
			}
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(ch)
		default:
			sb.WriteByte(ch)
		}
		i++
	}
	return "", start
}

// decodeLiteral resolves the PDF string escape sequences.
func decodeLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '(', ')', '\\':
			sb.WriteByte(s[i])
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
