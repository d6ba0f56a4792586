package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
)

func TestExtractor_PlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("text/plain; charset=utf-8", []byte("Python developer\nSQL"))
	require.NoError(t, err)
	assert.Equal(t, "Python developer\nSQL", text)

	text, err = e.Extract(MIMEMarkdown, []byte("# Skills\n- Go"))
	require.NoError(t, err)
	assert.Equal(t, "# Skills\n- Go", text)
}

func TestExtractor_HTML(t *testing.T) {
	e := NewExtractor()
	page := `<html><head><title>Job</title><style>.x{color:red}</style></head>
<body><h1>Backend Engineer</h1><script>var tracking = 1;</script>
<p>We use <b>Go</b> &amp; Postgres.</p></body></html>`

	text, err := e.Extract(MIMEHTML, []byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer We use Go & Postgres.", text)
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color")
}

func TestExtractor_Errors(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(MIMEPlainText, nil)
	assert.True(t, errors.Is(err, ierrors.ErrEmptyDocument))

	_, err = e.Extract("image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.True(t, errors.Is(err, ierrors.ErrUnsupportedDocument))
	var unsupported *ierrors.UnsupportedDocumentError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "image/png", unsupported.MIMEType)

	_, err = e.Extract(MIMEPDF, []byte("definitely not a pdf"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pdf")

	_, err = e.Extract(MIMEDocx, []byte("definitely not a zip"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docx")
}

// buildPDF assembles a minimal PDF with one page per entry. An empty entry
// produces a page without a content stream.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()

	// objects: 1 catalog, 2 page tree, 3 font, then a page object and an
	// optional content stream per page
	var objects []string
	objects = append(objects, "", "", "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	kids := make([]string, 0, len(pages))
	for _, text := range pages {
		pageNum := len(objects) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		if text == "" {
			objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
			continue
		}
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return buf.Bytes()
}

// buildDocx zips a minimal word document with one paragraph per entry.
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractor_PDF(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  []string
	}{
		{"single page", []string{"Python developer SQL"}, []string{"Python", "developer", "SQL"}},
		{"empty second page skipped", []string{"Python developer SQL", ""}, []string{"Python", "developer", "SQL"}},
		{"pages joined in order", []string{"Go engineer", "", "Kubernetes AWS"}, []string{"Go", "engineer", "Kubernetes", "AWS"}},
		{"no text at all", []string{""}, []string{}},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.Extract(MIMEPDF, buildPDF(t, tt.pages))
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.Fields(text))
		})
	}
}

func TestExtractor_Docx(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(MIMEDocx, buildDocx(t, []string{"Senior Go Engineer", "Kubernetes &amp; AWS"}))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\nKubernetes & AWS", strings.TrimSpace(text))
}

func TestWordXMLText(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document><w:body>
<w:p><w:r><w:t>Senior</w:t></w:r><w:r><w:t xml:space="preserve"> Go Engineer</w:t></w:r></w:p>
<w:p><w:r><w:t>Kubernetes</w:t><w:tab/><w:t>AWS &amp; GCP</w:t></w:r></w:p>
</w:body></w:document>`

	got := wordXMLText(content)
	assert.Contains(t, got, "Senior Go Engineer\n")
	assert.Contains(t, got, "Kubernetes AWS & GCP")
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"pdf extension", "resume.PDF", nil, MIMEPDF},
		{"docx extension", "cv.docx", nil, MIMEDocx},
		{"text extension", "jd.txt", nil, MIMEPlainText},
		{"markdown extension", "jd.md", nil, MIMEMarkdown},
		{"html extension", "posting.html", nil, MIMEHTML},
		{"sniff pdf", "upload", []byte("%PDF-1.7\n..."), MIMEPDF},
		{"sniff html", "", []byte("<!DOCTYPE html><html><body>hi</body></html>"), MIMEHTML},
		{"sniff text", "", []byte("just some words"), MIMEPlainText},
		{"empty without extension", "", nil, MIMEPlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIME(tt.filename, tt.data))
		})
	}
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	assert.Contains(t, types, MIMEPDF)
	assert.Contains(t, types, MIMEDocx)
	assert.Len(t, types, 5)

	_, err := NewExtractor().Extract("image/png", []byte{0x89})
	require.Error(t, err)
	for _, mimeType := range types {
		assert.Contains(t, err.Error(), mimeType)
	}
}
