package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// EnvPrefix is the prefix of every environment variable read by the CLI.
const EnvPrefix = "FACTORIES"

// app is the state shared by the commands of one invocation.
type app struct {
	root *cobra.Command
	v    *viper.Viper
}

// NewRootCommand builds the factories command tree.
func NewRootCommand() *cobra.Command {
	return newApp().root
}

func newApp() *app {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "factories",
		Short: "Inspect and scaffold request and resource factories",
		Long: `factories resolves the names that link form requests and API resources to
their test factories, scaffolds new factories and reports subjects that
have none.

Configuration can be provided via flags, environment variables, or a configuration file.
By default, factories looks for a configuration file at ./factories.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.root = root

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./"+DefaultConfigFile+")")
	flags.String(keyRequestDirectory, "", "root of form request names")
	flags.String(keyRequestFactoriesDirectory, "", "root of request factory names")
	flags.String(keyResourceDirectory, "", "root of API resource names")
	flags.String(keyResourceFactoriesDirectory, "", "root of resource factory names")
	flags.Bool(keyDebug, false, "expose error messages in rendered server errors")
	flags.String(keyLogLevel, "", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "", "log format (text, json)")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newResolveCommand(a),
		newSubjectCommand(a),
		newMakeCommand(a),
		newScanCommand(a),
		newConfigCommand(a),
		newVersionCommand(),
	)
	return a
}

// Main runs the command line with args and returns the process exit code.
func Main(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
