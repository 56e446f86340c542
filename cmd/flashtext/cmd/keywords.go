package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/app"
	"github.com/corey/flashtext/internal/domain/vocab"
	"github.com/corey/flashtext/internal/ports"
	"github.com/spf13/cobra"
)

var (
	keywordsSet     string
	keywordsJSON    bool
	keywordsReplace bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage stored keyword sets",
	Long: "Keyword sets live in .flashtext/flashtext.db. The daemon reloads them when\n" +
		"they change; only sets listed under `sets:` in config.yaml are loaded.",
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <keyword> [clean word]",
	Short: "Add or overwrite a keyword",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runKeywordsAdd,
}

var keywordsRemoveCmd = &cobra.Command{
	Use:     "remove <keyword>",
	Aliases: []string{"rm"},
	Short:   "Remove a keyword",
	Args:    cobra.ExactArgs(1),
	RunE:    runKeywordsRemove,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the keywords of a set",
	Args:  cobra.NoArgs,
	RunE:  runKeywordsList,
}

var keywordsImportCmd = &cobra.Command{
	Use:   "import <file|dir> [...]",
	Short: "Import vocabulary files (or every vocabulary file in a directory) into a set",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKeywordsImport,
}

var keywordsDropCmd = &cobra.Command{
	Use:   "drop <set>",
	Short: "Delete a whole keyword set",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsDrop,
}

var keywordsSetsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List stored keyword sets",
	Args:  cobra.NoArgs,
	RunE:  runKeywordsSets,
}

func init() {
	for _, c := range []*cobra.Command{keywordsAddCmd, keywordsRemoveCmd, keywordsListCmd, keywordsImportCmd} {
		c.Flags().StringVar(&keywordsSet, "set", app.DefaultSet, "Keyword set name")
	}
	keywordsListCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print entries as JSON")
	keywordsImportCmd.Flags().BoolVar(&keywordsReplace, "replace", false, "Replace the set instead of merging into it")

	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsRemoveCmd)
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsImportCmd)
	keywordsCmd.AddCommand(keywordsDropCmd)
	keywordsCmd.AddCommand(keywordsSetsCmd)
}

// openStore returns the project's keyword store, creating .flashtext/ if needed.
func openStore(root string) (*bbolt.PathStore, *app.Paths, error) {
	paths := app.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, err
	}
	return bbolt.NewPathStore(paths.DB), paths, nil
}

// warnUnloaded tells the user when a set they edited is not in config.yaml.
func warnUnloaded(paths *app.Paths, set string) {
	pc, err := app.LoadProjectConfig(paths.Config)
	if err != nil || slices.Contains(pc.Sets, set) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s⚠ set %q is not listed in config.yaml; add it under sets: to load it%s\n",
		colorYellow, set, colorReset)
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, paths, err := openStore(root)
	if err != nil {
		return err
	}
	entry := ports.Entry{Keyword: args[0], Clean: args[0]}
	if len(args) == 2 {
		entry.Clean = args[1]
	}
	if err := store.PutEntry(keywordsSet, entry); err != nil {
		return wrapStoreError(root, err)
	}
	fmt.Printf("⚡ %s => %s  (set %s)\n", entry.Keyword, entry.Clean, keywordsSet)
	warnUnloaded(paths, keywordsSet)
	return nil
}

func runKeywordsRemove(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, _, err := openStore(root)
	if err != nil {
		return err
	}
	removed, err := store.DeleteEntry(keywordsSet, args[0])
	if err != nil {
		return wrapStoreError(root, err)
	}
	if !removed {
		return fmt.Errorf("keyword %q not in set %s", args[0], keywordsSet)
	}
	fmt.Printf("⚡ removed %s  (set %s)\n", args[0], keywordsSet)
	return nil
}

func runKeywordsList(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, _, err := openStore(root)
	if err != nil {
		return err
	}
	entries, err := store.LoadSet(keywordsSet)
	if err != nil {
		return wrapStoreError(root, err)
	}
	if keywordsJSON {
		if entries == nil {
			entries = []ports.Entry{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if entries == nil {
		return fmt.Errorf("no keyword set %q", keywordsSet)
	}
	fmt.Print(formatEntries(entries))
	return nil
}

func runKeywordsImport(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, paths, err := openStore(root)
	if err != nil {
		return err
	}

	var imported []ports.Entry
	for _, path := range args {
		entries, err := loadVocabulary(path)
		if err != nil {
			return err
		}
		fmt.Printf("  %s%s%s  %d entries\n", colorCyan, path, colorReset, len(entries))
		imported = append(imported, entries...)
	}

	merged := imported
	if !keywordsReplace {
		existing, err := store.LoadSet(keywordsSet)
		if err != nil {
			return wrapStoreError(root, err)
		}
		merged = append(existing, imported...)
	}
	if err := store.SaveSet(keywordsSet, merged); err != nil {
		return wrapStoreError(root, err)
	}

	loaded, err := store.LoadSet(keywordsSet)
	if err != nil {
		return wrapStoreError(root, err)
	}
	fmt.Printf("⚡ set %s now holds %d keywords\n", keywordsSet, len(loaded))
	warnUnloaded(paths, keywordsSet)
	return nil
}

func runKeywordsDrop(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, _, err := openStore(root)
	if err != nil {
		return err
	}
	if err := store.DeleteSet(args[0]); err != nil {
		return wrapStoreError(root, err)
	}
	fmt.Printf("⚡ dropped set %s\n", args[0])
	return nil
}

func runKeywordsSets(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	store, paths, err := openStore(root)
	if err != nil {
		return err
	}
	sets, err := store.ListSets()
	if err != nil {
		return wrapStoreError(root, err)
	}
	var loaded []string
	if pc, err := app.LoadProjectConfig(paths.Config); err == nil {
		loaded = pc.Sets
	}
	fmt.Print(formatSets(sets, loaded))
	return nil
}

// loadVocabulary reads a vocabulary file, or every supported file directly
// under a directory.
func loadVocabulary(path string) ([]ports.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return vocab.LoadFS(os.DirFS(path), ".")
	}
	return vocab.LoadFile(path)
}
