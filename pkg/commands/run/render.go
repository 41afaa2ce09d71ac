package run

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/config"
)

// reportsDocument is the top level document of the structured output formats. TOML requires a
// table at the top level.
type reportsDocument struct {
	Reports []operations.Report `json:"reports" yaml:"reports" toml:"reports"`
}

func render(w io.Writer, format string, reports []operations.Report) error {
	doc := reportsDocument{Reports: reports}

	switch format {
	case config.OutputText:
		return renderText(w, reports)
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}

		return enc.Close()
	case config.OutputTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// renderText prints "The <name> is <value>" for every successful result. With more than one
// report each block is headed by the dataset name.
func renderText(w io.Writer, reports []operations.Report) error {
	for i, rep := range reports {
		if len(reports) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "# %s\n", datasetLabel(rep.Dataset)); err != nil {
				return err
			}
		}

		results := make([]operations.Result, 0, len(rep.Results))
		for _, rr := range rep.Results {
			if rr.Value == nil {
				continue
			}
			results = append(results, operations.Result{Name: rr.Name, Value: *rr.Value})
		}

		if err := operations.FormatResults(w, results); err != nil {
			return err
		}
	}

	return nil
}
