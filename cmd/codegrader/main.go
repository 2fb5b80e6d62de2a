package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/pavelanni/codegrader/internal/eval"
	"github.com/pavelanni/codegrader/internal/handler"
	appI18n "github.com/pavelanni/codegrader/internal/i18n"
	"github.com/pavelanni/codegrader/internal/llm"
	"github.com/pavelanni/codegrader/internal/model"
	"github.com/pavelanni/codegrader/internal/render"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codegrader",
		Short: "AI-assisted scoring for coding-interview submissions",
	}

	grade := gradeCmd()
	root.AddCommand(grade, serveCmd())

	// Make "grade" the default when no subcommand is given.
	root.RunE = grade.RunE

	// Register grade flags on root so bare `codegrader -i ...` still works.
	root.Flags().AddFlagSet(grade.Flags())

	return root
}

func gradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Score a batch of submissions and write the final report",
		RunE:  runGrade,
	}
	f := cmd.Flags()
	f.StringP("input", "i", "-", "Submissions JSON file (- for stdin)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("format", "json", "Output format (json, text)")
	f.StringP("lang", "l", "en", "Language for text output (en, ru)")
	addLLMFlags(f)
	addScoringFlags(f)
	addLogFlags(f)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP scoring server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("auth-password", "", "Basic auth password for the API (empty disables auth)")
	addLLMFlags(f)
	addScoringFlags(f)
	addLogFlags(f)
	return cmd
}

func addLLMFlags(f *pflag.FlagSet) {
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
}

func addScoringFlags(f *pflag.FlagSet) {
	f.Float64("pass-threshold", model.DefaultPassThreshold, "Overall average required to pass (inclusive)")
	f.Int("concurrency", 1, "Submissions analyzed in parallel (1 = sequential)")
	w := model.DefaultWeights()
	f.Float64("weight-syntax", w.Syntax, "Points awarded flat for compiling code")
	f.Float64("weight-logic", w.Logic, "Points scaled by test pass rate")
	f.Float64("weight-efficiency", w.Efficiency, "Points scaled by efficiency score")
	f.Float64("weight-quality", w.Quality, "Points scaled by style score (quality share)")
	f.Float64("weight-style", w.Style, "Points scaled by style score (style share)")
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("CODEGRADER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("codegrader")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/codegrader")
	v.AddConfigPath("/etc/codegrader")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func scoringConfig(v *viper.Viper) model.ScoringConfig {
	return model.ScoringConfig{
		Weights: model.Weights{
			Syntax:     v.GetFloat64("weight-syntax"),
			Logic:      v.GetFloat64("weight-logic"),
			Efficiency: v.GetFloat64("weight-efficiency"),
			Quality:    v.GetFloat64("weight-quality"),
			Style:      v.GetFloat64("weight-style"),
		},
		PassThreshold: v.GetFloat64("pass-threshold"),
		Concurrency:   v.GetInt("concurrency"),
	}
}

func runGrade(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	subs, err := readSubmissions(v.GetString("input"))
	if err != nil {
		return err
	}

	cfg := scoringConfig(v)
	if total := cfg.Weights.Total(); total != 100 {
		slog.Warn("scoring weights do not sum to 100", "total", total)
	}

	client := llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
	)
	reporter := eval.NewReporter(client, cfg)

	slog.Info("grading submissions",
		"count", len(subs),
		"model", v.GetString("llm-model"),
		"llm_url", v.GetString("llm-url"),
		"concurrency", cfg.Concurrency,
	)
	report := reporter.Generate(cmd.Context(), subs)

	var data []byte
	switch strings.ToLower(v.GetString("format")) {
	case "text":
		lang := v.GetString("lang")
		if err := appI18n.Init(lang); err != nil {
			return fmt.Errorf("init i18n: %w", err)
		}
		ctx := appI18n.WithLocalizer(context.Background(), appI18n.NewLocalizer(lang))
		data = []byte(render.Text(ctx, report))
	default:
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
	}

	return writeOutput(v.GetString("output"), data)
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	client := llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
	)
	if err := client.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))

	reporter := eval.NewReporter(client, scoringConfig(v))

	passwordHash := ""
	if pw := v.GetString("auth-password"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash auth password: %w", err)
		}
		passwordHash = string(hash)
	}

	h := handler.New(reporter, passwordHash)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"model", v.GetString("llm-model"),
		"llm_url", v.GetString("llm-url"),
		"auth", passwordHash != "",
	)
	return http.ListenAndServe(addr, r)
}

func readSubmissions(path string) ([]model.Submission, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}

	var subs []model.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parse submissions: %w", err)
	}
	return subs, nil
}

func writeOutput(path string, data []byte) error {
	var w io.Writer
	if path == "" || path == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}
