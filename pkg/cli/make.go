package cli

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/factories/pkg/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ErrFileExists is returned when make would overwrite a file without --force.
var ErrFileExists = errors.New("file already exists")

// scaffold is the data handed to a factory template.
type scaffold struct {
	Package     string
	Type        string
	Subject     string
	Name        string
	SubjectName string
}

type makeOptions struct {
	pkg    string
	output string
	force  bool
}

func newMakeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Scaffold a request or resource factory",
	}
	cmd.AddCommand(
		newMakeKindCommand(a, KindRequest),
		newMakeKindCommand(a, KindResource),
	)
	return cmd
}

func newMakeKindCommand(a *app, kind string) *cobra.Command {
	var opts makeOptions
	cmd := &cobra.Command{
		Use:   kind + " SUBJECT",
		Short: "Scaffold a " + kind + " factory",
		Long: `Render the skeleton of the factory of SUBJECT.

SUBJECT is a qualified name, or a name relative to the configured subject
root. Its last segment is turned into an exported Go identifier, so
"user/store_post_request" names the subject StorePostRequest.`,
		Example: "  factories make " + kind + " user/store_post_" + kind + " -o factory.go",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.kit()
			if err != nil {
				return err
			}
			r, err := resolverFor(k, kind)
			if err != nil {
				return err
			}

			data, err := newScaffold(r, args[0], opts.pkg)
			if err != nil {
				return err
			}
			src, err := render(kind, data)
			if err != nil {
				return err
			}
			k.Logger.Debug("rendered factory", "kind", kind, "factory", data.Name)

			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := writeFile(opts.output, src, opts.force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s in %s\n", data.Name, opts.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the factory to this file instead of stdout")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "package clause (default is the last directory of the factory name)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing output file")
	return cmd
}

// newScaffold resolves the subject and factory names for arg.
func newScaffold(r naming.Resolver, arg, pkg string) (scaffold, error) {
	subject, err := subjectName(r.SubjectRoot, arg)
	if err != nil {
		return scaffold{}, err
	}
	factory := r.ResolveFactory(subject)
	if pkg == "" {
		pkg = packageName(factory)
	}
	return scaffold{
		Package:     pkg,
		Type:        naming.Base(factory),
		Subject:     naming.Base(subject),
		Name:        factory,
		SubjectName: subject,
	}, nil
}

// subjectName qualifies arg with root and turns its last segment into an
// exported identifier.
func subjectName(root, arg string) (string, error) {
	dir, base := path.Split(strings.Trim(arg, "/"))
	name := identifier(base)
	if name == "" {
		return "", fmt.Errorf("invalid subject name %q", arg)
	}
	if unicode.IsDigit(rune(name[0])) {
		return "", fmt.Errorf("invalid subject name %q: starts with a digit", arg)
	}
	if !strings.HasPrefix(dir, root) {
		dir = root + dir
	}
	return dir + name, nil
}

// identifier joins the words of s in title case. Letters after the first
// of each word keep their case, so "storePost" stays "StorePost".
func identifier(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	caser := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// packageName derives a package clause from the directory of a qualified
// factory name.
func packageName(factory string) string {
	dir := path.Base(path.Dir(factory))
	pkg := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, dir)
	if pkg == "" || unicode.IsDigit(rune(pkg[0])) {
		return "factories"
	}
	return pkg
}

func render(kind string, data scaffold) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, kind+".go.tmpl", data); err != nil {
		return nil, fmt.Errorf("render %s factory: %w", kind, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s factory: %w", kind, err)
	}
	return src, nil
}

func writeFile(name string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, name)
		}
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
