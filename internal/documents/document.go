package documents

import "fmt"

// Document is an open text document tracked by the language server.
// Content updates are versioned; stale versions are rejected.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
}

func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI.
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier.
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version.
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's current content.
func (d *Document) Content() string {
	return d.content
}

// SetContent replaces the document content. Updates older than the
// current version are rejected.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}
