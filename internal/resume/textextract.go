package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"github.com/justsurfingit/job-portal/internal/logger"
)

// maxDocumentXML bounds the decompressed size of word/document.xml.
const maxDocumentXML = 20 << 20

var errDocumentTooLarge = errors.New("docx body exceeds size limit")

// SupportedExtensions lists the resume formats that yield text.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// TextExtractor converts uploaded resume files into plain text.
type TextExtractor struct {
	pdf     *pdf.PDFParser
	timeout time.Duration
}

// NewTextExtractor prepares the PDF parser. The whole document is returned as one text.
func NewTextExtractor(ctx context.Context) (*TextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser: %w", err)
	}
	return &TextExtractor{pdf: p, timeout: 30 * time.Second}, nil
}

// Extract reads r and returns its text based on the extension of name.
// Unsupported formats and extraction failures yield "".
func (x *TextExtractor) Extract(ctx context.Context, name string, r io.Reader) string {
	ext := strings.ToLower(filepath.Ext(name))
	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = x.extractPDF(ctx, name, r)
	case ".docx":
		text, err = extractDOCX(r)
	case ".txt":
		var b []byte
		b, err = io.ReadAll(r)
		text = strings.ToValidUTF8(string(b), "")
	default:
		logger.Ctx(ctx).Debug().Str("file", name).Msg("unsupported resume format")
		return ""
	}
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("file", name).Msg("resume text extraction failed")
		return ""
	}
	return text
}

func (x *TextExtractor) extractPDF(ctx context.Context, name string, r io.Reader) (string, error) {
	if x == nil || x.pdf == nil {
		return "", fmt.Errorf("pdf parser not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	docs, err := x.pdf.Parse(ctx, r, einoParser.WithURI(name))
	if err != nil {
		return "", fmt.Errorf("parse pdf %s: %w", name, err)
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}

// extractDOCX pulls paragraph text out of word/document.xml.
func extractDOCX(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		if f.UncompressedSize64 > maxDocumentXML {
			return "", errDocumentTooLarge
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return readDocumentXML(rc)
	}
	return "", fmt.Errorf("open docx: word/document.xml not found")
}

// readDocumentXML stops once more than maxDocumentXML bytes were read,
// whatever size the zip header claims.
func readDocumentXML(r io.Reader) (string, error) {
	lr := &io.LimitedReader{R: r, N: maxDocumentXML + 1}
	text, err := docxParagraphs(lr)
	if lr.N == 0 {
		return "", errDocumentTooLarge
	}
	return text, err
}

func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
