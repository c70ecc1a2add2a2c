package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/pipeline"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	stdinName   = "-"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume-file>",
	Short: "Extract a profile from a resume and rank job listings against it",
	Long: "Reads a plain text or markdown resume (use - for stdin), extracts a structured profile, " +
		"collects listings from the configured job sources and prints them ranked by relevance.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSliceP("keywords", "k", nil, "search keywords; when set, job search runs while the resume is analysed")
	matchCmd.Flags().StringP("location", "l", "", "job location (default India)")
	matchCmd.Flags().Float64("min-score", 0, "hide matches scoring below this value")
	matchCmd.Flags().Bool("use-samples", false, "fall back to built-in sample listings when no source returns results")
	matchCmd.Flags().BoolP("interactive", "i", false, "browse the results interactively")
	matchCmd.Flags().String("details", "", "print the full match of the listing with this id")
	matchCmd.Flags().StringP("output", "o", outputTable, "output format: table or json")

	viper.BindPFlag("jobs.location", matchCmd.Flags().Lookup("location"))
	viper.BindPFlag("matching.min-score", matchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("jobs.use-samples", matchCmd.Flags().Lookup("use-samples"))
}

// runMatch is the main command for the cli.
func runMatch(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output != outputTable && output != outputJSON {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	text, err := readResume(cmd.InOrStdin(), path)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedFormat) {
			logger.Fatal("reading resume", zap.Error(err), zap.String("hint", "convert the resume to .txt or .md first"))
		}
		logger.Fatal("reading resume", zap.Error(err))
	}

	p, gateway, err := newPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	if !gateway.Available() {
		logger.Warn("no completion provider configured, results rely on keyword matching",
			zap.String("hint", "set GROQ_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY or ANTHROPIC_API_KEY"),
		)
	} else {
		logger.Info("using completion provider",
			zap.String("provider", string(gateway.Provider())),
			zap.String("model", gateway.Model()),
		)
	}

	keywords, _ := cmd.Flags().GetStringSlice("keywords")

	report, err := p.ProcessResume(ctx, pipeline.Input{
		ResumeText: text,
		Keywords:   keywords,
		Location:   config.Jobs.Location,
	})
	if err != nil {
		logger.Fatal("processing resume", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if output == outputJSON {
		if err := renderJSON(out, report); err != nil {
			logger.Fatal("rendering report", zap.Error(err))
		}
	} else {
		renderTable(out, report)
	}

	if id, _ := cmd.Flags().GetString("details"); id != "" {
		fmt.Fprintln(out)
		if err := renderDetails(out, report, id); err != nil {
			logger.Warn("showing match details", zap.Error(err))
		}
	}

	if len(report.Matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches found"))
		return
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	if err := browse(out, logger, report); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func readResume(stdin io.Reader, path string) (string, error) {
	extractor := document.PlainText{}

	var (
		text string
		err  error
	)
	if path == stdinName {
		text, err = extractor.Extract("stdin.txt", stdin)
	} else {
		text, err = document.ReadFile(extractor, path)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("resume %s is empty: %w", path, pipeline.ErrEmptyInput)
	}
	return text, nil
}
