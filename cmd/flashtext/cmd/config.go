package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows project root, config values, DB path, socket path, and daemon status. No daemon required.",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .flashtext/config.yaml",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)
	sockPath := socket.SocketPath(root)

	pc, err := app.LoadProjectConfig(paths.Config)
	if err != nil {
		return err
	}

	client := socket.NewClient(sockPath)
	daemonRunning := client.Ping()
	daemonStatus := fmt.Sprintf("%s✗ not running%s", colorYellow, colorReset)
	if daemonRunning {
		daemonStatus = fmt.Sprintf("%s✓ running%s", colorGreen, colorReset)
	}

	configSource := paths.Config
	if _, err := os.Stat(paths.Config); err != nil {
		configSource += "  (missing, using defaults)"
	}
	dbInfo := paths.DB
	if info, err := os.Stat(paths.DB); err == nil {
		dbInfo += fmt.Sprintf("  (%s)", humanize.Bytes(uint64(info.Size())))
	}

	mode := "insensitive"
	if pc.CaseSensitive {
		mode = "sensitive"
	}

	fmt.Printf("%s⚡ flashtext config%s\n", colorBold, colorReset)
	fmt.Printf("  Project:       %s\n", filepath.Base(root))
	fmt.Printf("  Root:          %s\n", root)
	fmt.Printf("  Config:        %s\n", configSource)
	fmt.Printf("  DB:            %s\n", dbInfo)
	fmt.Printf("  Socket:        %s\n", sockPath)
	fmt.Printf("  Daemon:        %s\n", daemonStatus)
	fmt.Printf("  Case:          %s\n", mode)
	fmt.Printf("  Tokenizer:     %s\n", pc.Policy())
	fmt.Printf("  Vocabularies:  %s\n", listOrNone(pc.Vocabularies))
	fmt.Printf("  Sets:          %s\n", listOrNone(pc.Sets))

	if daemonRunning {
		if portData, err := os.ReadFile(paths.PortFile); err == nil {
			fmt.Printf("  HTTP API:      http://localhost:%s\n", strings.TrimSpace(string(portData)))
		}
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)
	if _, err := os.Stat(paths.Config); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", paths.Config)
	}
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	if err := app.DefaultProjectConfig().Save(paths.Config); err != nil {
		return err
	}
	fmt.Printf("⚡ wrote %s\n", paths.Config)
	return nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return colorGray + "(none)" + colorReset
	}
	return strings.Join(items, ", ")
}
