package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyMaker derives globally-unique storage keys for uploaded files.
// Keys keep the original file extension so content-type inference keeps
// working downstream: <prefix>/<unix-ms>-<entropy><.ext>.
//
// The clock and entropy source are injectable so tests can pin keys.
type KeyMaker struct {
	prefix  string
	now     func() time.Time
	entropy func() string
}

// NewKeyMaker builds a KeyMaker namespacing keys under prefix.
func NewKeyMaker(prefix string) *KeyMaker {
	return &KeyMaker{
		prefix:  strings.Trim(prefix, "/"),
		now:     time.Now,
		entropy: shortRandom,
	}
}

// Make derives a storage key for the given original filename.
func (k *KeyMaker) Make(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", k.prefix, k.now().UnixMilli(), k.entropy(), ext)
}

// shortRandom returns a compact collision-resistant disambiguator. The
// timestamp already separates keys minted in different milliseconds; the
// random suffix separates concurrent callers.
func shortRandom() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
