package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/logging"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/storage"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for lmdb.

To load completions:

Bash:
  $ source <(lmdb completion bash)
  # To load completions for each session, execute once:
  $ lmdb completion bash > /etc/bash_completion.d/lmdb

Zsh:
  $ lmdb completion zsh > "${fpath[1]}/_lmdb"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ lmdb completion fish | source
  # To load completions for each session, execute once:
  $ lmdb completion fish > ~/.config/fish/completions/lmdb.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeFilmIDs offers the IDs of catalog films, described by title.
// Completion must stay silent, so load failures yield no suggestions.
func completeFilmIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := storage.LoadConfig(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	s := storage.Open(cfg.ResolveDataPath(dir), logging.NewNop())
	return filmIDCompletions(s.List(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filmIDCompletions(films []model.Film, toComplete string) []string {
	prefix := strings.TrimPrefix(toComplete, "#")

	var completions []string
	for _, f := range films {
		id := strconv.Itoa(f.ID)
		if strings.HasPrefix(id, prefix) {
			completions = append(completions, id+"\t"+f.Title)
		}
	}
	return completions
}
