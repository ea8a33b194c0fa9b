package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipsight/clipsight/internal/agent"
	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/history"
	"github.com/clipsight/clipsight/internal/intent"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/pkg/logger"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
)

var (
	cfgFile     string
	interactive bool
	recommend   bool
	listVideos  bool
	verbose     bool
	showVer     bool
)

var rootCmd = &cobra.Command{
	Use:   "clipsight [query]",
	Short: "Video intelligence query agent",
	Long: `clipsight answers natural-language questions from a video library:
it searches transcripts via the remote video intelligence backend,
synthesizes an answer, and cites the exact video moment backing it.`,
	Example: `  clipsight "What are the key risks in AI investments?"
  clipsight --recommend "most popular"
  clipsight --list
  clipsight --interactive`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if showVer {
			fmt.Printf("clipsight %s (built %s)\n", Version, BuildDate)
			return
		}

		cfg := config.Load(cfgFile)
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		defer logger.Sync()

		logger.Info("starting",
			zap.String("version", Version),
			zap.String("backend", cfg.Backend.BaseURL),
		)

		a := agent.New(cfg)
		store := openHistory(cfg)
		if store != nil {
			defer store.Close()
		}

		ctx := context.Background()

		switch {
		case listVideos:
			resp, err := a.ListVideos(ctx)
			exitOn(err)
			render(resp)
		case recommend:
			hint := strings.Join(args, " ")
			resp, err := a.GetRecommendations(ctx, hint)
			exitOn(err)
			render(resp)
		case interactive || len(args) == 0:
			runInteractive(ctx, a, store)
		default:
			query := strings.Join(args, " ")
			resp, err := a.Query(ctx, query)
			exitOn(err)
			record(store, query, resp)
			render(resp)
			if !resp.Success {
				os.Exit(1)
			}
		}
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check backend reachability",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(cfgFile)
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		defer logger.Sync()

		a := agent.New(cfg)
		if err := a.Ping(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "backend unavailable: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("backend is healthy")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent queries",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(cfgFile)
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		defer logger.Sync()

		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		records, err := store.Recent(20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read history: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("no queries recorded yet")
			return
		}
		for _, rec := range records {
			status := "ok"
			if !rec.Success {
				status = "failed"
			}
			fmt.Printf("%s  [%s] %-7s  %s\n",
				rec.AskedAt.Local().Format("2006-01-02 15:04"), rec.Intent, status, rec.Query)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start interactive mode")
	rootCmd.Flags().BoolVarP(&recommend, "recommend", "r", false, "get video recommendations")
	rootCmd.Flags().BoolVarP(&listVideos, "list", "l", false, "list available videos")
	rootCmd.Flags().BoolVarP(&showVer, "version", "v", false, "show version")
	rootCmd.AddCommand(pingCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openHistory(cfg *config.Config) *history.Store {
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		// History is best-effort; queries still work without it
		logger.Warn("history disabled", zap.Error(err))
		return nil
	}
	return store
}

func record(store *history.Store, query string, resp models.AgentResponse) {
	if store == nil {
		return
	}
	rec := history.Record{
		ID:      uuid.NewString(),
		Query:   query,
		Intent:  intent.Classify(query).String(),
		Success: resp.Success,
	}
	if resp.VideoInfo != nil {
		rec.VideoID = resp.VideoInfo.VideoID
	}
	if err := store.Append(rec); err != nil {
		logger.Warn("failed to record query", zap.Error(err))
	}
}

func render(resp models.AgentResponse) {
	fmt.Println()
	fmt.Println(resp.Content)

	if resp.VideoInfo != nil {
		v := resp.VideoInfo
		fmt.Println()
		fmt.Printf("Watch: %s at %s\n", v.Title, v.Timestamp)
		fmt.Printf("       %s\n", v.URL)
	}

	if len(resp.ClickableExamples) > 0 {
		fmt.Println()
		fmt.Println("Try asking:")
		for _, example := range resp.ClickableExamples {
			fmt.Printf("  - %s\n", example)
		}
	}
}

func runInteractive(ctx context.Context, a *agent.Agent, store *history.Store) {
	fmt.Println("clipsight - video intelligence agent")
	fmt.Println("Ask about the video library. Type 'quit' to leave, 'help' for suggestions.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(query) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		case "?":
			query = "help"
		}

		resp, err := a.Query(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		record(store, query, resp)
		render(resp)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
