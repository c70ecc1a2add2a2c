package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-matcher"
)

type Config struct {
	AI       AIConfig       `mapstructure:"ai"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Matching MatchingConfig `mapstructure:"matching"`
}

type AIConfig struct {
	Groq              ProviderConfig `mapstructure:"groq"`
	OpenAI            ProviderConfig `mapstructure:"openai"`
	Gemini            ProviderConfig `mapstructure:"gemini"`
	Anthropic         ProviderConfig `mapstructure:"anthropic"`
	Timeout           time.Duration  `mapstructure:"timeout" validate:"gte=0"`
	MaxRetries        int            `mapstructure:"max-retries" validate:"gte=0,lte=5"`
	RequestsPerSecond float64        `mapstructure:"requests-per-second" validate:"gte=0"`
	MaxLogLength      int            `mapstructure:"max-log-length" validate:"gte=0"`
}

type ProviderConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type JobsConfig struct {
	Location    string        `mapstructure:"location"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Threshold   int           `mapstructure:"threshold" validate:"gte=0"`
	MaxListings int           `mapstructure:"max-listings" validate:"gte=0,lte=50"`
	UseSamples  bool          `mapstructure:"use-samples"`
	JSearch     JSearchConfig `mapstructure:"jsearch"`
	Adzuna      AdzunaConfig  `mapstructure:"adzuna"`
}

type JSearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppIDFile  string `mapstructure:"app-id-file"`
	AppKey     string `mapstructure:"app-key"`
	AppKeyFile string `mapstructure:"app-key-file"`
}

type MatchingConfig struct {
	Concurrency int     `mapstructure:"concurrency" validate:"gte=0,lte=50"`
	MinScore    float64 `mapstructure:"min-score" validate:"gte=0,lte=100"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher extracts a profile from a resume and ranks job listings against it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.max-retries", 0)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("jobs.location", "India")
	v.SetDefault("jobs.timeout", "15s")
	v.SetDefault("jobs.threshold", 20)
	v.SetDefault("jobs.max-listings", 50)
	v.SetDefault("matching.concurrency", 8)
}

func initConfig() {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &config, nil
}
