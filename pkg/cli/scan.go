package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/getmockd/factories/pkg/cli/internal/output"
	"github.com/getmockd/factories/pkg/naming"
	"github.com/getmockd/factories/pkg/util"
)

// ErrMissingFactories is returned by scan --check when a subject has no
// factory file.
var ErrMissingFactories = errors.New("missing factories")

// ErrOutsideProject is returned by scan when a factory root leaves the
// project directory.
var ErrOutsideProject = errors.New("factory path outside the project directory")

// ScanEntry is one subject found by scan.
type ScanEntry struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Factory string `json:"factory"`
	Found   bool   `json:"found"`
}

type scanOptions struct {
	dir     string
	kind    string
	missing bool
	check   bool
	json    bool
}

func newScanCommand(a *app) *cobra.Command {
	var opts scanOptions
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List subjects and whether their factory exists",
		Long: `Walk the subject roots for Go source files and report, for each one, the
factory file the convention resolver expects.

A subject file "app/http/requests/user/StoreRequest.go" names the subject
"app/http/requests/user/StoreRequest". Test files are skipped.`,
		Example: `  factories scan
  factories scan --kind resource --missing
  factories scan --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := a.kit()
			if err != nil {
				return err
			}

			kinds := []string{KindRequest, KindResource}
			if opts.kind != "" {
				kinds = []string{opts.kind}
			}

			fsys := os.DirFS(opts.dir)
			var entries []ScanEntry
			for _, kind := range kinds {
				r, err := resolverFor(k, kind)
				if err != nil {
					return err
				}
				found, err := scan(fsys, kind, r)
				if err != nil {
					return err
				}
				entries = append(entries, found...)
			}
			k.Logger.Debug("scanned subjects", "dir", opts.dir, "count", len(entries))

			missing := 0
			shown := make([]ScanEntry, 0, len(entries))
			for _, e := range entries {
				if !e.Found {
					missing++
				}
				if !opts.missing || !e.Found {
					shown = append(shown, e)
				}
			}

			if opts.json {
				if err := output.JSON(cmd.OutOrStdout(), shown); err != nil {
					return err
				}
			} else if err := printScan(cmd, shown); err != nil {
				return err
			}

			if opts.check && missing > 0 {
				return fmt.Errorf("%w: %d of %d subjects", ErrMissingFactories, missing, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "project directory the roots are relative to")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "only scan this kind (request or resource)")
	cmd.Flags().BoolVar(&opts.missing, "missing", false, "only list subjects without a factory")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail when a subject has no factory")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output JSON")
	return cmd
}

// scan globs the Go files under the subject root of r.
func scan(fsys fs.FS, kind string, r naming.Resolver) ([]ScanEntry, error) {
	root := strings.TrimSuffix(r.SubjectRoot, "/")
	if root == "" {
		root = "."
	}
	pattern := path.Join(root, "**", "*.go")
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}

	entries := make([]ScanEntry, 0, len(matches))
	for _, m := range matches {
		if strings.HasSuffix(m, "_test.go") {
			continue
		}
		subject := strings.TrimSuffix(m, ".go")
		factory := r.ResolveFactory(subject)
		file, ok := util.SafeFilePath(factory + ".go")
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOutsideProject, factory)
		}
		entries = append(entries, ScanEntry{
			Kind:    kind,
			Subject: subject,
			Factory: factory,
			Found:   fileExists(fsys, filepath.ToSlash(file)),
		})
	}
	return entries, nil
}

func printScan(cmd *cobra.Command, entries []ScanEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No subjects found")
		return nil
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		status := "ok"
		if !e.Found {
			status = "missing"
		}
		rows[i] = []string{e.Kind, e.Subject, e.Factory, status}
	}
	return output.Table(cmd.OutOrStdout(), []string{"Kind", "Subject", "Factory", "Status"}, rows)
}

// fileExists reports whether name is a regular file in fsys.
func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
