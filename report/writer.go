package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	yaml "go.yaml.in/yaml/v3"

	"github.com/a-bouts/rally-pacer/units"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case JSON:
		return WriteJSON(w, r)
	case YAML:
		return WriteYAML(w, r)
	}
	return WriteText(w, r)
}

func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}

// WriteText renders the report as aligned columns followed by the warnings and the
// average ranges
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0 /* min width */, 1 /* tab width */, 2 /* padding */, ' ', 0)

	if r.Failed() {
		fmt.Fprintln(tw, "LINE\tFAILURE")
		for _, f := range r.Failures {
			fmt.Fprintf(tw, "%s\t%s\n", f.Line, f.Reason)
		}
		return tw.Flush()
	}

	fmt.Fprintln(tw, "LINE\tDIST\tZONE\tTIME\tZONE TIMES\tODO\tASTRO\tGO AT\tNOTES")
	for _, row := range r.Rows {
		if row.Distance == nil {
			fmt.Fprintf(tw, "%s\t\t\t\t\t\t\t\t// %s\n", row.Line, row.Comment)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Line,
			row.Distance,
			zone(row),
			row.Time,
			strings.Join(row.Times, " "),
			odo(row.Odo),
			row.Astro,
			goAt(row.GoAt),
			row.Modifiers,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warn.Message)
		}
	}

	if len(r.Averages) > 0 {
		fmt.Fprintln(w)
		for _, a := range r.Averages {
			fmt.Fprintf(w, "average %s..%s: %s km in %s, %s km/h\n", a.From, a.To, a.Distance, a.Time, a.Speed)
		}
	}

	return nil
}

func zone(row Row) string {
	if row.Zone == nil {
		return ""
	}
	var parts []string
	for _, c := range row.Zone.Closes {
		parts = append(parts, fmt.Sprintf("%d]", c))
	}
	if row.Zone.Opens != 0 {
		parts = append(parts, fmt.Sprintf("[%d", row.Zone.Opens))
	}
	return strings.Join(parts, " ")
}

func odo(d *units.Distance) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func goAt(s *units.Speed) string {
	if s == nil {
		return ""
	}
	return s.String()
}
