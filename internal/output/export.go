package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"todo/internal/task"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV, FormatPDF}

// Export writes tasks to w in the given format.
func Export(w io.Writer, format string, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		return exportJSON(w, tasks)
	case FormatYAML, "yml":
		return exportYAML(w, tasks)
	case FormatCSV:
		return exportCSV(w, tasks)
	case FormatPDF:
		return exportPDF(w, tasks)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func exportJSON(w io.Writer, tasks []task.Task) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func exportYAML(w io.Writer, tasks []task.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

func exportCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"number", "text", "completed"}); err != nil {
		return err
	}
	for i, t := range tasks {
		row := []string{strconv.Itoa(i + 1), t.Text, strconv.FormatBool(t.Completed)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportPDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("To-do list", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "To-do list", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	if len(tasks) == 0 {
		pdf.CellFormat(0, 8, EmptyMessage, "", 1, "L", false, 0, "")
	}
	for i, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.CellFormat(12, 8, strconv.Itoa(i+1), "", 0, "R", false, 0, "")
		pdf.CellFormat(12, 8, mark, "", 0, "C", false, 0, "")
		pdf.MultiCell(0, 8, tr(normalizeText(t.Text)), "", "L", false)
	}
	return pdf.Output(w)
}
