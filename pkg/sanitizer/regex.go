package sanitizer

import "regexp"

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)
