package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/garden/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName string
	Today    string
}

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new garden with a starter vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd.OutOrStdout(), args[0], time.Now())
	},
}

func runNew(out io.Writer, dir string, now time.Time) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	data := scaffoldData{
		SiteName: toTitle(filepath.Base(dir)),
		Today:    now.Format("2006-01-02"),
	}

	fmt.Fprintf(out, "Creating new garden: %s\n\n", dir)

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		src, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Fprintf(out, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  garden serve --watch")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit garden.yaml to set your site name, URL and author.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-garden" -> "My Garden"
func toTitle(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}
