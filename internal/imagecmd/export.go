package imagecmd

import (
	"fmt"
	"io"

	"github.com/cmxu/geoimages/internal/landmarks"
)

func executeExport(jsonFile, outputFile string, out io.Writer) error {
	results, err := landmarks.LoadResults(jsonFile)
	if err != nil {
		return err
	}

	if err := landmarks.ExportParquet(outputFile, results); err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %d landmarks to %s\n", len(results), outputFile)
	return nil
}
