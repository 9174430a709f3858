package output

import (
	"github.com/ramp/cost-calculator/internal/domain"
)

// GenerateReport writes the named report to a timestamped file in dir and
// returns the written paths. "all" writes the console, detailed CSV and JSON reports.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if format == "all" {
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			path, err := WriteFormatted(f, results, dir)
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormatError(format)
	}
	path, err := WriteFormatted(f, results, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Render formats results with the named formatter.
func Render(results *domain.ScenarioComparison, format string) ([]byte, Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, nil, unsupportedFormatError(format)
	}
	data, err := f.Format(results)
	if err != nil {
		return nil, f, err
	}
	return data, f, nil
}
