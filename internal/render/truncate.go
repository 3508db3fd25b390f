package render

import (
	"fmt"
	"strings"

	"github.com/jmeppley/duhist/internal/errs"
)

// ellipsis marks an elided label middle.
const ellipsis = "***"

// MinLabelWidth is the narrowest label column that can hold the ellipsis
// marker plus one character of each end.
const MinLabelWidth = len(ellipsis) + 2

// Truncate fits label into exactly width characters: labels that are too
// long lose their middle to the ellipsis marker, short ones are right-padded
// with spaces. Width counts characters, not bytes, so multibyte names keep
// the column aligned. Widths below MinLabelWidth are a configuration error.
func Truncate(label string, width int) (string, error) {
	if width < MinLabelWidth {
		return "", &errs.ConfigError{
			Param:  "name column width",
			Reason: fmt.Sprintf("%d is below the minimum of %d", width, MinLabelWidth),
		}
	}

	runes := []rune(label)
	if len(runes) <= width {
		return label + strings.Repeat(" ", width-len(runes)), nil
	}

	lead := (width - len(ellipsis) + 1) / 2
	tail := width - len(ellipsis) - lead

	return string(runes[:lead]) + ellipsis + string(runes[len(runes)-tail:]), nil
}
