package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"todolist/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

type document struct {
	Username string       `json:"username"`
	Stats    model.Stats  `json:"stats"`
	Tasks    []model.Task `json:"tasks"`
}

// Export renders a user's tasks in the given format.
func Export(username string, tasks []model.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(document{
			Username: username,
			Stats:    model.CountTasks(tasks),
			Tasks:    tasks,
		}, "", "  ")
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "text", "completed", "created_at"})
		for _, t := range tasks {
			_ = w.Write([]string{
				strconv.FormatInt(t.ID, 10),
				t.Text,
				strconv.FormatBool(t.Completed),
				t.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		return exportPDF(username, tasks)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func exportPDF(username string, tasks []model.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr("Tasks for "+username))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks found", "0", "L", false)
	}
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s)", mark, t.Text, t.CreatedAt.UTC().Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	st := model.CountTasks(tasks)
	pdf.Ln(4)
	pdf.Cell(40, 6, fmt.Sprintf("%d active tasks, %d completed", st.Active, st.Completed))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
