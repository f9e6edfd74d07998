package media

import (
	"strings"
	"testing"
	"time"
)

func pinnedKeyMaker(entropy string) *KeyMaker {
	km := NewKeyMaker("restaurants/images")
	km.now = func() time.Time { return time.UnixMilli(1700000000000) }
	km.entropy = func() string { return entropy }
	return km
}

func TestMakePreservesExtension(t *testing.T) {
	km := pinnedKeyMaker("abc123")

	key := km.Make("Holiday Photo.JPG")
	if key != "restaurants/images/1700000000000-abc123.jpg" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestMakeWithoutExtension(t *testing.T) {
	km := pinnedKeyMaker("abc123")

	key := km.Make("photo")
	if key != "restaurants/images/1700000000000-abc123" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestMakeTrimsPrefixSlashes(t *testing.T) {
	km := pinnedKeyMaker("abc123")
	km.prefix = strings.Trim("/restaurants/images/", "/")

	key := km.Make("a.png")
	if strings.HasPrefix(key, "/") || strings.Contains(key, "//") {
		t.Fatalf("malformed key: %q", key)
	}
}

func TestMakeDistinctForConcurrentEntropy(t *testing.T) {
	km := NewKeyMaker("restaurants/images")
	km.now = func() time.Time { return time.UnixMilli(1700000000000) }

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := km.Make("a.png")
		if seen[key] {
			t.Fatalf("duplicate key within one millisecond: %q", key)
		}
		seen[key] = true
	}
}
