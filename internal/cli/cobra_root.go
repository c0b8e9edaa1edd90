package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// APIFactory builds the api once the configuration is final
type APIFactory func(cfg *config.Config) (api.API, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	api     api.API
	config  *config.Config
	factory APIFactory
}

// NewRootCommand creates the root cobra command with global flags.
// The api is built by factory after flag overrides have been applied.
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line task list",
		Long: `Task manager (tm) keeps a list of tasks, each with a title and a description.

Run without a command to start an interactive session that works on one list
in memory. Nothing is written until you type "save".

EXAMPLES:
  tm                                       # Start the interactive session
  tm add "Buy milk" "2% whole"             # Add a task to the data file
  tm list                                  # List tasks in the data file
  tm show 2                                # Show task 2 in full
  tm delete 2                              # Delete task 2 from the data file
  tm export format=pdf tasks.pdf           # Export the data file as PDF

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Storage Configuration:
    TM_DATA_DIR                            Data directory (default: .)
    TM_DATA_FILENAME                       Data filename (default: tasks.dat)
    TM_STORE_FORMAT                        File format, json or sqlite (default: json)
    TM_IO_TIMEOUT                          Save and load timeout (default: 10s)
    TM_DATA_FILE_PERMISSIONS               Data file mode, octal (default: 0644)
    TM_DATA_DIR_PERMISSIONS                Data directory mode, octal (default: 0755)

  Validation Configuration:
    TM_VALIDATION_TITLE_MAX                Max title length (default: 255)
    TM_VALIDATION_DESCRIPTION_MAX          Max description length (default: 10000)

  Display Configuration:
    TM_DISPLAY_PREVIEW_WIDTH               List column width (default: 60)
    TM_APP_VERBOSE                         Show descriptions in lists (default: false)

  Command Configuration:
    TM_EXPORT_DEFAULT_FORMAT               Default export format (default: csv)

  Set TM_DEBUG=1 for debug output on stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.newApp(cmd).Shell(cmd.Context())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("data-dir", "", "Data directory (overrides TM_DATA_DIR)")
	flags.String("data-file", "", "Data filename (overrides TM_DATA_FILENAME)")
	flags.String("format", "", "Data file format, json or sqlite (overrides TM_STORE_FORMAT)")
	flags.Duration("io-timeout", 0, "Save and load timeout (overrides TM_IO_TIMEOUT)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum title length (overrides TM_VALIDATION_TITLE_MAX)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TM_VALIDATION_DESCRIPTION_MAX)")

	// Display configuration
	flags.Int("preview-width", 0, "List column width (overrides TM_DISPLAY_PREVIEW_WIDTH)")
	flags.Bool("verbose", false, "Show descriptions in lists (overrides TM_APP_VERBOSE)")

	// Commands configuration
	flags.String("export-format", "", "Default export format (overrides TM_EXPORT_DEFAULT_FORMAT)")
}

func (r *RootCommand) addSubcommands() {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive session",
		Long: `Start an interactive session over one task list held in memory.

Use "load" to read the data file and "save" to write it back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.newApp(cmd).Shell(cmd.Context())
		},
	}

	addCmd := &cobra.Command{
		Use:   "add TITLE DESCRIPTION...",
		Short: "Add a task to the data file",
		Long: `Add a task to the data file. Words after the title are joined into the description.

Example:
  tm add "Pay bills" "due Friday"`,
		Args: cobra.MinimumNArgs(2),
		RunE: r.oneShot("add", true),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete N",
		Short: "Delete task N from the data file",
		Long:  "Delete the task at position N, counting from 1. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.oneShot("delete", true),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in the data file",
		Args:  cobra.NoArgs,
		RunE:  r.oneShot("list", false),
	}

	showCmd := &cobra.Command{
		Use:   "show N",
		Short: "Show task N in full",
		Args:  cobra.ExactArgs(1),
		RunE:  r.oneShot("show", false),
	}

	exportCmd := &cobra.Command{
		Use:   "export [format=csv|pdf] [path]",
		Short: "Export the data file as csv or pdf",
		Long: `Export the tasks in the data file.

Supported formats:
  csv - Comma-separated values
  pdf - A printable table

Without a path the export is written to standard output.

Examples:
  tm export format=csv > tasks.csv
  tm export pdf tasks.pdf`,
		Args: cobra.MaximumNArgs(2),
		RunE: r.oneShot("export", false),
	}

	r.cmd.AddCommand(
		shellCmd,
		addCmd,
		deleteCmd,
		listCmd,
		showCmd,
		exportCmd,
	)
}

// oneShot runs a registry command against the data file
func (r *RootCommand) oneShot(name string, persist bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.newApp(cmd).RunWithDataFile(cmd.Context(), append([]string{name}, args...), persist)
	}
}

func (r *RootCommand) newApp(cmd *cobra.Command) *App {
	return NewAppWithIO(r.api, r.config, cmd.InOrStdin(), cmd.OutOrStdout())
}

// setup applies flag overrides, validates the result and builds the api
func (r *RootCommand) setup(cmd *cobra.Command) error {
	config.ApplyOverrides(r.config, r.getOverridesFromFlags(cmd))
	if err := r.config.Validate(); err != nil {
		return err
	}

	if r.factory == nil {
		return fmt.Errorf("no api factory configured")
	}
	apiInstance, err := r.factory(r.config)
	if err != nil {
		return err
	}
	r.api = apiInstance

	logging.Debugf("data file %s (%s)\n", r.config.GetDataPath(), r.config.Storage.Format)
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides.DataDir = &v
	}
	if flags.Changed("data-file") {
		v, _ := flags.GetString("data-file")
		overrides.DataFilename = &v
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		overrides.Format = &v
	}
	if flags.Changed("io-timeout") {
		v, _ := flags.GetDuration("io-timeout")
		overrides.IOTimeout = &v
	}

	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}
	if flags.Changed("description-max-length") {
		v, _ := flags.GetInt("description-max-length")
		overrides.DescriptionMaxLength = &v
	}

	if flags.Changed("preview-width") {
		v, _ := flags.GetInt("preview-width")
		overrides.PreviewWidth = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	if flags.Changed("export-format") {
		v, _ := flags.GetString("export-format")
		overrides.ExportDefaultFormat = &v
	}

	return overrides
}
