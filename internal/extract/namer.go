package extract

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/quantmind-br/unpakr/internal/utils"
)

// numberedName matches a final path component of the form
// "<name><space><digits>", optionally followed by other trailing
// characters. The space anchor is deliberate: "test2" carries no number
// and collides to "test2 1", never "test3".
var numberedName = regexp.MustCompile(`^(.*) (\d+).*$`)

// UniqueDirPath returns a path that does not currently exist on disk,
// derived from candidate by appending or incrementing a numeric suffix on
// the final path component. Probing is iterative, one round per existing
// collision, so collision count never translates into stack depth.
func UniqueDirPath(candidate string) string {
	for utils.PathExists(candidate) {
		parent := filepath.Dir(candidate)
		base := filepath.Base(candidate)

		if m := numberedName.FindStringSubmatch(base); m != nil {
			n, _ := strconv.Atoi(m[2])
			candidate = filepath.Join(parent, m[1]+" "+strconv.Itoa(n+1))
			continue
		}

		// No trailing number yet: start the sequence at 1. The stem
		// drops a final extension, so an existing "archive.tar"
		// directory probes "archive 1" next.
		candidate = filepath.Join(parent, utils.Stem(base)+" 1")
	}
	return candidate
}
