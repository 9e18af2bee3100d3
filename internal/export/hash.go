package export

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns the hex BLAKE3 digest of a rendered document.
func Hash(doc string) string {
	sum := blake3.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}
