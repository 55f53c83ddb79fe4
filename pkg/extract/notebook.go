package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Notebook diagnostics.
const (
	notebookInvalidShape = "# Error: Invalid Jupyter Notebook format\n# The file does not contain the expected notebook structure"
	notebookEmpty        = "# Empty Jupyter Notebook\n# No cells found in this notebook"
)

// Notebook renders a Jupyter notebook as delimited cells. The file is decoded as plain
// JSON; only the top-level "cells" array and the handful of cell and output keys used
// below are interpreted.
func Notebook(path string, opts Options) string {
	data, err := os.ReadFile(path)
	if err != nil {
		opts.logger().Warn("Failed to read notebook", zap.String("filePath", path), zap.Error(err))
		return notebookReadError(err)
	}
	return RenderNotebook(data, opts)
}

// RenderNotebook renders notebook JSON held in memory.
func RenderNotebook(data []byte, opts Options) string {
	if !utf8.Valid(data) {
		return notebookReadError(errors.New("file is not valid UTF-8"))
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		opts.logger().Debug("Notebook is not valid JSON", zap.Error(err))
		return fmt.Sprintf("# Error: Invalid JSON format\n# %s\n# The file may be corrupted or not a valid Jupyter Notebook", err)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return notebookInvalidShape
	}
	rawCells, ok := root["cells"]
	if !ok {
		return notebookInvalidShape
	}
	cells, ok := rawCells.([]any)
	if !ok {
		return notebookInvalidShape
	}

	var lines []string
	cellNum := 1

	for _, raw := range cells {
		cell, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		cellType := "unknown"
		if s, ok := cell["cell_type"].(string); ok {
			cellType = s
		}
		label := strings.ToUpper(cellType)
		if cellType == "code" {
			label = "CODE"
		}

		lines = append(lines, fmt.Sprintf("%s\nBegin Cell %d - %s", DashLine, cellNum, label))
		lines = append(lines, textValue(cell["source"], ""))

		if cellType == "code" && !opts.HideNotebookOutputs {
			if outputs, ok := cell["outputs"].([]any); ok && len(outputs) > 0 {
				lines = append(lines, fmt.Sprintf("\n%s\nCell Outputs:", DashLine))
				lines = append(lines, renderOutputs(outputs)...)
			}
		}

		lines = append(lines, fmt.Sprintf("End Cell %d - %s\n%s", cellNum, label, DashLine))
		cellNum++
	}

	if cellNum == 1 {
		return notebookEmpty
	}

	return strings.Join(lines, "\n")
}

// renderOutputs renders stream, result and error outputs in their original order.
func renderOutputs(outputs []any) []string {
	var lines []string
	for _, raw := range outputs {
		output, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		outputType, _ := output["output_type"].(string)
		switch outputType {
		case "stream":
			lines = append(lines, "[Stream Output]\n"+textValue(output["text"], ""))
		case "execute_result", "display_data":
			data, ok := output["data"].(map[string]any)
			if !ok {
				continue
			}
			if plain, ok := data["text/plain"]; ok {
				lines = append(lines, "[Result]\n"+textValue(plain, ""))
			}
		case "error":
			ename := textValue(output["ename"], "Error")
			evalue := textValue(output["evalue"], "")
			lines = append(lines, fmt.Sprintf("[Error] %s: %s", ename, evalue))
		}
	}
	return lines
}

// textValue flattens a notebook text field, which is either a string or a list of
// line strings. Missing fields yield def.
func textValue(v any, def string) string {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		return t
	case []any:
		var b strings.Builder
		for _, part := range t {
			if s, ok := part.(string); ok {
				b.WriteString(s)
			} else {
				fmt.Fprint(&b, part)
			}
		}
		return b.String()
	default:
		return fmt.Sprint(t)
	}
}

func notebookReadError(err error) string {
	return fmt.Sprintf("# Error reading Jupyter Notebook\n# %s\n# The file may be corrupted or in an incompatible format", err)
}
