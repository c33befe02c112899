package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lzjever/project-audit/internal/panel"
)

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRows(out io.Writer, rows []panel.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No users found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AVATAR\tUSER NAME\tEMAIL\tGROUPS\tSAP ID\tALT ID")
	for _, r := range rows {
		c := r.Cells
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c[0].Avatar, truncate(c[0].Content, 32), c[1].Content, truncate(c[2].Content, 40), c[3].Content, c[4].Content)
	}
	w.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
