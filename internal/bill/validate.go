package bill

import "strings"

// allowedExtensions are the receipt attachment formats the store accepts.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// AllowedExtension reports whether the filename carries an allowed receipt
// extension. The check is case-insensitive and looks at the substring after
// the last dot; a filename without an extension is rejected.
func AllowedExtension(fileName string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(fileName[idx+1:])]
}
