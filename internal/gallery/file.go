package gallery

import (
	"io"
	"mime"
	"os"
	"path/filepath"
)

// DiskFile stages a file from the local filesystem. The content type is
// inferred from the extension at construction time so it matches what gets
// declared at issuance.
type DiskFile struct {
	path        string
	contentType string
}

// NewDiskFile wraps a filesystem path as a stageable file.
func NewDiskFile(path string) *DiskFile {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &DiskFile{path: path, contentType: contentType}
}

func (f *DiskFile) Name() string        { return filepath.Base(f.path) }
func (f *DiskFile) ContentType() string { return f.contentType }

func (f *DiskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// PathPreview previews a staged disk file by pointing at the file itself.
// Closing it is a no-op since the preview owns no extra resource.
type PathPreview struct {
	path string
}

// PreviewFromPath is a PreviewFunc for DiskFile-backed sessions. A file that
// is not disk-backed gets no preview; the list tolerates a nil preview and
// its display URL stays empty until the entry is uploaded.
func PreviewFromPath(f LocalFile) Preview {
	df, ok := f.(*DiskFile)
	if !ok {
		return nil
	}
	return &PathPreview{path: df.path}
}

func (p *PathPreview) URL() string  { return "file://" + p.path }
func (p *PathPreview) Close() error { return nil }
