package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra/doc"

	"github.com/coolify-notifications/push-relay/builtin"
	"github.com/coolify-notifications/push-relay/cmd/tools"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func generateCatalogDocs(out io.Writer) {
	_, _ = fmt.Fprintln(out, "# Events and Filters Catalog")
	_, _ = fmt.Fprintln(out, "## Events")
	_, _ = fmt.Fprintln(out, "")

	kinds := newTable(out, "EVENT", "GROUP", "TITLE", "BODY")
	for _, e := range builtin.Catalog {
		title := e.Title
		if e.PreviewTitle != "" {
			title = fmt.Sprintf("%s / %s", e.Title, e.PreviewTitle)
		}
		kinds.Append([]string{fmt.Sprintf("`%s`", e.Kind), e.Group, title, fmt.Sprintf("`%s`", e.Body)})
	}
	kinds.Render()

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "Any other event is delivered with the title `Event: <event>` and the payload `message` as body.")
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "## Filters")
	_, _ = fmt.Fprintln(out, "")

	filters := newTable(out, "NAME", "DESCRIPTION", "CONDITION")
	for _, f := range builtin.Filters {
		filters.Append([]string{f.Name, f.Description, fmt.Sprintf("`%s`", f.When)})
	}
	filters.Render()
}

func generateCommandsDocs(out io.Writer) error {
	toolsCmd := tools.NewToolsCommand()
	for _, subCommand := range toolsCmd.Commands() {
		for _, cmd := range subCommand.Commands() {
			var cmdDesc bytes.Buffer
			if err := doc.GenMarkdown(cmd, &cmdDesc); err != nil {
				return err
			}
			for _, line := range strings.Split(cmdDesc.String(), "\n") {
				if strings.HasPrefix(line, "### SEE ALSO") {
					break
				}
				_, _ = fmt.Fprintf(out, "%s\n", line)
			}
		}
	}
	return nil
}

func main() {
	var catalogDocs bytes.Buffer
	generateCatalogDocs(&catalogDocs)
	if err := ioutil.WriteFile("./docs/catalog.md", catalogDocs.Bytes(), 0644); err != nil {
		log.Fatal(err)
	}
	var commandDocs bytes.Buffer
	dieOnError(generateCommandsDocs(&commandDocs), "Failed to generate commands docs")
	if err := ioutil.WriteFile("./docs/troubleshooting-commands.md", commandDocs.Bytes(), 0644); err != nil {
		log.Fatal(err)
	}
}

func dieOnError(err error, msg string) {
	if err != nil {
		fmt.Printf("[ERROR] %s: %v", msg, err)
		os.Exit(1)
	}
}
