// Package telemetry emits structured JSON log lines to stdout, one object per
// line, so platform log collectors can index them without extra parsing.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info writes an info-level line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Error writes an error-level line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":%q,"level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(line))
}
