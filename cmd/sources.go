package cmd

import (
	"context"
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the selected completion provider and the configured job sources",
	Run: func(cmd *cobra.Command, _ []string) {
		runSources(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	creds, err := providerCredentials(config.AI)
	if err != nil {
		logger.Fatal("loading provider credentials", zap.Error(err))
	}

	jobsCfg, err := jobsConfig(config.Jobs)
	if err != nil {
		logger.Fatal("loading job source credentials", zap.Error(err))
	}

	gateway, err := newGateway(context.Background(), config.AI, zap.NewNop())
	if err != nil {
		logger.Fatal("building the gateway", zap.Error(err))
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tCONFIGURED\tSELECTED")
	for _, p := range ai.Priority {
		fmt.Fprintf(tw, "provider\t%s\t%t\t%t\n", p, creds.For(p) != "", gateway.Provider() == p)
	}
	fmt.Fprintf(tw, "source\t%s\t%t\t-\n", jobs.JSearchName, jobsCfg.JSearch.APIKey != "")
	fmt.Fprintf(tw, "source\t%s\t%t\t-\n", jobs.AdzunaName, jobsCfg.Adzuna.AppID != "" && jobsCfg.Adzuna.AppKey != "")
	fmt.Fprintf(tw, "source\tsamples\t%t\t-\n", config.Jobs.UseSamples)
	tw.Flush()

	if gateway.Available() {
		fmt.Fprintf(cmd.OutOrStdout(), "\nmodel: %s\n", gateway.Model())
	}
}
