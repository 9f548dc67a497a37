package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"

	"gopkg.in/yaml.v3"
)

// encode writes v as json or yaml
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return perr.InvalidArgf("unknown output format %q", format)
	}
}

// writeState prints st in the requested format. text is one line per item
func writeState(w io.Writer, format string, st domain.State) error {
	if format != "text" {
		return encode(w, format, st)
	}
	if len(st.Items) == 0 {
		_, err := fmt.Fprintln(w, "no activity")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range st.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.When, it.Network, summary(it))
	}
	if st.HasMore {
		fmt.Fprintln(tw, "...\t\tmore available")
	}
	return tw.Flush()
}

// summary reads an item as a sentence: actor verb [target] [subject] [amounts] [post]
func summary(it domain.Item) string {
	d := it.Descriptor
	parts := []string{d.Actor.Display}
	if d.Verb != "" {
		parts = append(parts, d.Verb)
	}
	if d.Target != nil && d.Target.Display != "" {
		// transfer verbs already end with their preposition
		if !strings.HasSuffix(d.Verb, " to") {
			parts = append(parts, "to")
		}
		parts = append(parts, d.Target.Display)
	}
	if d.Subject != "" {
		parts = append(parts, d.Subject)
	}
	for _, tk := range d.Tokens {
		if amt := strings.TrimSpace(tk.Amount + " " + tk.Symbol); amt != "" {
			parts = append(parts, "("+amt+")")
		}
	}
	if d.Post != nil && d.Post.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", d.Post.Text))
	}
	return strings.Join(parts, " ")
}
