package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
	"github.com/spf13/cobra"
)

var daemonConsoleLog bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the flashtext daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the foreground",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon health",
	RunE:  runDaemonStatus,
}

var daemonReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload vocabularies and keyword sets",
	RunE:  runDaemonReload,
}

func init() {
	daemonStartCmd.Flags().BoolVar(&daemonConsoleLog, "console", false, "Log to the console instead of .flashtext/log/daemon.log")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonReloadCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := socket.SocketPath(root)

	// Check if already running
	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⚡ daemon already running")
		return nil
	}

	paths := app.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create %s: %w", paths.Root, err)
	}
	logFile := paths.DaemonLog
	if daemonConsoleLog {
		logFile = ""
	}

	// Loads vocabularies and keyword sets; fails fast on a bad config or vocabulary
	a, err := app.New(app.Config{ProjectRoot: root, LogFile: logFile})
	if err != nil {
		return wrapStoreError(root, fmt.Errorf("init: %w", err))
	}

	if err := a.Start(); err != nil {
		a.Watcher.Stop()
		a.Log.Close()
		return err
	}
	if err := os.WriteFile(paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		a.Log.Warnf("write pid file: %v", err)
	}
	defer paths.CleanEphemeral()

	fmt.Printf("⚡ flashtext daemon started at %s (%d keywords)\n", sockPath, a.Engine.KeywordCount())
	if a.WebServer != nil && a.WebServer.Port() > 0 {
		fmt.Printf("  HTTP API:  %s\n", a.WebServer.URL())
	}

	// Wait for a signal or a shutdown request over the socket
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		fmt.Println("\n⚡ shutting down...")
	case <-a.Server.ShutdownCh():
		fmt.Println("⚡ shutdown requested")
	}
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := socket.SocketPath(root)
	client := socket.NewClient(sockPath)

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⚡ daemon stopped")
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	client, err := requireDaemon()
	if err != nil {
		return err
	}
	h, err := client.Health()
	if err != nil {
		return err
	}
	fmt.Print(formatHealth(h))
	return nil
}

func runDaemonReload(cmd *cobra.Command, args []string) error {
	client, err := requireDaemon()
	if err != nil {
		return err
	}
	res, err := client.Reload()
	if err != nil {
		return err
	}
	fmt.Printf("⚡ reloaded %d keywords from %d sources in %dms\n",
		res.KeywordCount, res.SourceCount, res.ElapsedMs)
	return nil
}

// requireDaemon returns a client for a running daemon or an error telling
// the user how to start one.
func requireDaemon() (*socket.Client, error) {
	client := socket.NewClient(socket.SocketPath(projectRoot()))
	if !client.Ping() {
		return nil, fmt.Errorf("daemon not running. Start with: flashtext daemon start")
	}
	return client, nil
}
