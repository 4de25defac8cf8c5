package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// GenerateReport writes the report in the named format (or every format for
// "all") into dir and returns the files written.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, fmt.Errorf("%s: %w", f.Name(), err)
			}
			files = append(files, name)
		}
		return files, nil
	}
	f, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// Lookup resolves a format name, returning an error that lists the choices when
// nothing matches.
func Lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
