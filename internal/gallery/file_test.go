package gallery

import "testing"

func TestDiskFileInfersContentType(t *testing.T) {
	if ct := NewDiskFile("/tmp/photo.png").ContentType(); ct != "image/png" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if ct := NewDiskFile("/tmp/blob").ContentType(); ct != "application/octet-stream" {
		t.Fatalf("expected fallback content type, got %q", ct)
	}
}

func TestPreviewFromPathPointsAtFile(t *testing.T) {
	preview := PreviewFromPath(NewDiskFile("/tmp/a.png"))
	if preview == nil {
		t.Fatalf("expected a preview for a disk file")
	}
	if preview.URL() != "file:///tmp/a.png" {
		t.Fatalf("unexpected preview URL: %q", preview.URL())
	}
}

func TestPreviewFromPathNonDiskFileGetsNoPreview(t *testing.T) {
	if preview := PreviewFromPath(newFakeFile("x.png")); preview != nil {
		t.Fatalf("expected no preview for a non-disk file, got %q", preview.URL())
	}

	// the list must tolerate the nil preview end to end
	list := NewList(PreviewFromPath)
	list.AddLocal(newFakeFile("x.png"))

	it := list.Items()[0]
	if url := it.DisplayURL("https://cdn.test"); url != "" {
		t.Fatalf("expected empty display URL without a preview, got %q", url)
	}
	list.Remove(it.ID())
	if list.Len() != 0 {
		t.Fatalf("expected entry removed, %d remain", list.Len())
	}
}
