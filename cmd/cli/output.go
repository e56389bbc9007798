package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/markdown"

	"libdb-finder/classifier"
	"libdb-finder/extractor"
	"libdb-finder/locator"
	"libdb-finder/services"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type extraction struct {
	classifier.Result
	Candidates []extractor.Candidate `json:"candidates,omitempty"`
}

type reportWriter interface {
	WriteReport(r *services.Report) error
	WriteLocated(org string, l locator.Located) error
	WriteExtraction(e extraction) error
}

func newReportWriter(format string, out io.Writer) (reportWriter, error) {
	switch strings.ToLower(format) {
	case "", formatText:
		return textWriter{out: out}, nil
	case formatMarkdown, "md":
		return markdownWriter{out: out}, nil
	case formatJSON:
		return jsonWriter{out: out}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (text, markdown, json)", format)
	}
}

type jsonWriter struct{ out io.Writer }

func (w jsonWriter) encode(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (w jsonWriter) WriteReport(r *services.Report) error { return w.encode(r) }

func (w jsonWriter) WriteLocated(org string, l locator.Located) error {
	return w.encode(struct {
		Organization string `json:"organization"`
		locator.Located
	}{org, l})
}

func (w jsonWriter) WriteExtraction(e extraction) error {
	return w.encode(struct {
		Chinese      []string              `json:"chinese"`
		Other        []string              `json:"other"`
		ChineseCount int                   `json:"chinese_count"`
		OtherCount   int                   `json:"other_count"`
		Total        int                   `json:"total"`
		Candidates   []extractor.Candidate `json:"candidates,omitempty"`
	}{e.Chinese, e.Other, len(e.Chinese), len(e.Other), e.Total(), e.Candidates})
}

type textWriter struct{ out io.Writer }

func (w textWriter) WriteReport(r *services.Report) error {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Outcome:\t%s\n", r.Outcome)
	if r.Reason != "" {
		fmt.Fprintf(tw, "Reason:\t%s\n", r.Reason)
	}
	if r.Organization != "" {
		fmt.Fprintf(tw, "Organization:\t%s\n", r.Organization)
	}
	if r.FinalURL != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", r.FinalURL)
	} else if r.SourceURL != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", r.SourceURL)
	}
	if r.PageTitle != "" {
		fmt.Fprintf(tw, "Title:\t%s\n", r.PageTitle)
	}
	fmt.Fprintf(tw, "Mode:\t%s (probed: %t)\n", r.Mode, r.Probed)
	fmt.Fprintf(tw, "Chinese:\t%d\n", r.ChineseCount)
	fmt.Fprintf(tw, "Other:\t%d\n", r.OtherCount)
	fmt.Fprintf(tw, "Total:\t%d\n", r.Total)
	if err := tw.Flush(); err != nil {
		return err
	}
	return w.writeLists(r.Chinese, r.Other)
}

func (w textWriter) writeLists(chinese, other []string) error {
	for _, section := range []struct {
		title string
		names []string
	}{{"Chinese databases", chinese}, {"Foreign-language databases", other}} {
		if len(section.names) == 0 {
			continue
		}
		fmt.Fprintf(w.out, "\n%s (%d)\n", section.title, len(section.names))
		for i, name := range section.names {
			if _, err := fmt.Fprintf(w.out, "%4d  %s\n", i+1, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w textWriter) WriteLocated(org string, l locator.Located) error {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Organization:\t%s\n", org)
	fmt.Fprintf(tw, "URL:\t%s\n", l.URL)
	fmt.Fprintf(tw, "Title:\t%s\n", l.Title)
	fmt.Fprintf(tw, "Query:\t%s\n", l.Query)
	fmt.Fprintf(tw, "Provider:\t%s\n", l.Provider)
	return tw.Flush()
}

func (w textWriter) WriteExtraction(e extraction) error {
	fmt.Fprintf(w.out, "Chinese: %d  Other: %d  Total: %d\n", len(e.Chinese), len(e.Other), e.Total())
	if err := w.writeLists(e.Chinese, e.Other); err != nil {
		return err
	}
	if len(e.Candidates) > 0 {
		fmt.Fprintf(w.out, "\nRaw candidates (%d)\n", len(e.Candidates))
		tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
		for _, c := range e.Candidates {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Source, c.Text)
		}
		return tw.Flush()
	}
	return nil
}

type markdownWriter struct{ out io.Writer }

func (w markdownWriter) WriteReport(r *services.Report) error {
	md := markdown.NewMarkdown(w.out)

	title := "Library Database Report"
	if r.Organization != "" {
		title += ": " + r.Organization
	}
	md.H1(title)
	md.PlainText("")

	source := r.FinalURL
	if source == "" {
		source = r.SourceURL
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Outcome", string(r.Outcome)},
			{"Source", source},
			{"Page title", r.PageTitle},
			{"Mode", r.Mode},
			{"Probed", strconv.FormatBool(r.Probed)},
			{"Chinese", strconv.Itoa(r.ChineseCount)},
			{"Other", strconv.Itoa(r.OtherCount)},
			{"**Total**", "**" + strconv.Itoa(r.Total) + "**"},
		},
	})
	md.PlainText("")

	switch r.Outcome {
	case services.OutcomeZeroResults:
		md.Note("The page was fetched but no database names were recognised. Try the listing page URL directly.")
		md.PlainText("")
	case services.OutcomeNoURL, services.OutcomeFetchFailed, services.OutcomeInvalidInput:
		md.Warningf("Analysis did not complete: %s (%s). Re-run with --url to supply the page manually.", r.Outcome, r.Reason)
		md.PlainText("")
	}

	writeNameTables(md, r.Chinese, r.Other)
	return md.Build()
}

func writeNameTables(md *markdown.Markdown, chinese, other []string) {
	for _, section := range []struct {
		title string
		names []string
	}{{"Chinese databases", chinese}, {"Foreign-language databases", other}} {
		if len(section.names) == 0 {
			continue
		}
		md.H2(fmt.Sprintf("%s (%d)", section.title, len(section.names)))
		md.PlainText("")
		rows := make([][]string, 0, len(section.names))
		for i, name := range section.names {
			rows = append(rows, []string{strconv.Itoa(i + 1), name})
		}
		md.Table(markdown.TableSet{Header: []string{"#", "Name"}, Rows: rows})
		md.PlainText("")
	}
}

func (w markdownWriter) WriteLocated(org string, l locator.Located) error {
	md := markdown.NewMarkdown(w.out)
	md.H1("Located: " + org)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", l.URL},
			{"Title", l.Title},
			{"Query", l.Query},
			{"Provider", l.Provider},
		},
	})
	return md.Build()
}

func (w markdownWriter) WriteExtraction(e extraction) error {
	md := markdown.NewMarkdown(w.out)
	md.H1("Extracted Databases")
	md.PlainText("")
	if e.Empty() {
		md.Note("No database names were recognised in this document.")
		md.PlainText("")
	}
	writeNameTables(md, e.Chinese, e.Other)
	if len(e.Candidates) > 0 {
		md.H2("Raw candidates")
		md.PlainText("")
		items := make([]string, 0, len(e.Candidates))
		for _, c := range e.Candidates {
			items = append(items, fmt.Sprintf("%s (%s)", c.Text, c.Source))
		}
		md.BulletList(items...)
	}
	return md.Build()
}
