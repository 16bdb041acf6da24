package validation

import (
	"regexp"
)

const (
	namespaceCharFmt      = "[a-z0-9_.-]"
	pathCharFmt           = "[a-z0-9_./-]"
	namespacedIDFmt       = "(" + namespaceCharFmt + "+:)?" + pathCharFmt + "+"
	NamespacedIDErrMsg    = "must be a lower-case namespaced id like minecraft:cow"
	tagFmt                = "[-+._A-Za-z0-9]+"
	TagErrMsg             = "must consist of alphanumeric characters, '-', '+', '_' or '.'"
	namespacedIDMaxLength = 256
)

var (
	namespacedIDRegexp = regexp.MustCompile("^" + namespacedIDFmt + "$")
	tagRegexp          = regexp.MustCompile("^" + tagFmt + "$")
)

// ValidNamespacedID reports whether str is a resource location
// like minecraft:cow or cow.
func ValidNamespacedID(str string) bool {
	return str != "" && len(str) <= namespacedIDMaxLength && namespacedIDRegexp.MatchString(str)
}

// ValidTag reports whether str is a valid scoreboard tag.
func ValidTag(str string) bool {
	return tagRegexp.MatchString(str)
}
