package storage

// Document is one rendered output waiting to be persisted.
type Document struct {
	source    string // as given by the user, for reporting
	identity  string // canonical form hashed into the filename
	content   []byte
	extension string
}

func NewDocument(
	source string,
	identity string,
	content []byte,
	extension string,
) Document {
	return Document{
		source:    source,
		identity:  identity,
		content:   content,
		extension: extension,
	}
}

func (d *Document) Source() string {
	return d.source
}

func (d *Document) Identity() string {
	return d.identity
}

func (d *Document) Content() []byte {
	return d.content
}

func (d *Document) Extension() string {
	return d.extension
}

// Persistence

type WriteResult struct {
	sourceHash  string // identity (filename without extension)
	path        string
	contentHash string
}

func NewWriteResult(
	sourceHash string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		sourceHash:  sourceHash,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) SourceHash() string {
	return w.sourceHash
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
