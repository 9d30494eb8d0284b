package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTextExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	x := &TextExtractor{}

	t.Run("txt", func(t *testing.T) {
		got := x.Extract(ctx, "cv.TXT", strings.NewReader("Python developer"))
		assert.Equal(t, "Python developer", got)
	})

	t.Run("docx", func(t *testing.T) {
		doc := buildDOCX(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills: Python,</w:t></w:r><w:r><w:t xml:space="preserve"> SQL</w:t></w:r></w:p>
</w:body>
</w:document>`)
		got := x.Extract(ctx, "cv.docx", bytes.NewReader(doc))
		assert.Equal(t, "Jane Doe\nSkills: Python, SQL", got)
	})

	t.Run("corrupt docx", func(t *testing.T) {
		assert.Equal(t, "", x.Extract(ctx, "cv.docx", strings.NewReader("not a zip")))
	})

	t.Run("docx without body", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		require.NoError(t, zw.Close())
		assert.Equal(t, "", x.Extract(ctx, "cv.docx", &buf))
	})

	t.Run("oversized docx body", func(t *testing.T) {
		body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
			strings.Repeat("A", maxDocumentXML+1) + `</w:t></w:r></w:p></w:body></w:document>`
		doc := buildDOCX(t, body)
		require.Less(t, len(doc), 1<<20)
		assert.Equal(t, "", x.Extract(ctx, "cv.docx", bytes.NewReader(doc)))
	})

	t.Run("understated docx size", func(t *testing.T) {
		body := `<w:document><w:body><w:p><w:r><w:t>` + strings.Repeat("B", maxDocumentXML+1) + `</w:t></w:r></w:p></w:body></w:document>`
		text, err := readDocumentXML(strings.NewReader(body))
		assert.ErrorIs(t, err, errDocumentTooLarge)
		assert.Empty(t, text)

		text, err = readDocumentXML(strings.NewReader(`<w:document><w:p><w:t>ok</w:t></w:p></w:document>`))
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Equal(t, "", x.Extract(ctx, "cv.rtf", strings.NewReader("text")))
	})

	t.Run("pdf without parser", func(t *testing.T) {
		assert.Equal(t, "", x.Extract(ctx, "cv.pdf", strings.NewReader("%PDF-1.4")))
	})
}
