package classical

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------

const (
	dataVersion = 1
)

const (
	pathCodebookPrefix     = "codebook:"
	pathCodebookParameters = "codebook:parameters"
	pathCodebookKeyPrefix  = "codebook:key-"
)

// -----------------------------------------------------------------------------

// IsCodebookPath returns true if the given storage key belongs to a codebook. Storage
// implementations shared with other data can use it to route codebook entries.
func IsCodebookPath(path string) bool {
	if !strings.HasPrefix(path, pathCodebookPrefix) {
		return false
	}
	if path == pathCodebookParameters {
		return true
	}
	if strings.HasPrefix(path, pathCodebookKeyPrefix) {
		digits := path[len(pathCodebookKeyPrefix):]
		if len(digits) == 0 || digits[0] == '0' {
			return false
		}
		for idx := 0; idx < len(digits); idx++ {
			if digits[idx] < '0' || digits[idx] > '9' {
				return false
			}
		}
		return true
	}
	return false
}

func codebookKeyPath(idx int) string {
	return fmt.Sprintf("%s%d", pathCodebookKeyPrefix, idx)
}
