package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/whoknowsla/AsciiVision/accessibility"
	"github.com/whoknowsla/AsciiVision/codec"
	"github.com/whoknowsla/AsciiVision/configstore"
	"github.com/whoknowsla/AsciiVision/core"
	"github.com/whoknowsla/AsciiVision/db"
	"github.com/whoknowsla/AsciiVision/describe"
	"github.com/whoknowsla/AsciiVision/logging"
	"github.com/whoknowsla/AsciiVision/quantize"
	"github.com/whoknowsla/AsciiVision/rasterize"
	"github.com/whoknowsla/AsciiVision/secrets"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// options holds the parsed command line for one invocation.
type options struct {
	InputPath string
	Output    string
	ASCIIText string

	FontName    string
	FontSizePx  int
	Background  string
	Foreground  string
	PaddingPx   int
	LineSpacing float64
	Antialias   bool
	WrapWidth   int

	CharWidth int

	Describe     bool
	ToggleAuto   bool
	Model        string
	HistoryLimit int
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env file: %v\n", err)
	}

	isDevelopment := os.Getenv("DEV_MODE") == "true"
	config := core.LoadConfig()

	opts, err := parseFlags(os.Args[1:], config)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(core.ExitCodeSuccess)
		}
		color.Red("%v", err)
		os.Exit(core.ExitCodeError)
	}

	logger, err := logging.NewLogger(isDevelopment, config.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := finalExitCode(ctx, run(ctx, opts, config, logger))
	stop()
	os.Exit(code)
}

// finalExitCode maps an interrupted run to the conventional 128+SIGINT code.
func finalExitCode(ctx context.Context, code int) int {
	if ctx.Err() != nil {
		return core.ExitCodeSIGINT
	}
	return code
}

func parseFlags(args []string, config *core.Config) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("asciivision", flag.ContinueOnError)
	fs.StringVar(&opts.InputPath, "i", "", "input file (.txt for rasterizing, image for quantizing)")
	fs.StringVar(&opts.Output, "o", "", "output file (default derived from input, - for stdout)")
	fs.StringVar(&opts.ASCIIText, "a", "", "ASCII art text to rasterize directly")
	fs.StringVar(&opts.FontName, "font", config.FontName, "monospaced font name")
	fs.IntVar(&opts.FontSizePx, "font-size", config.FontSizePx, "font size in pixels")
	fs.StringVar(&opts.Background, "bg", config.Background, "background color (name or #rrggbb)")
	fs.StringVar(&opts.Foreground, "fg", config.Foreground, "text color (name or #rrggbb)")
	fs.IntVar(&opts.PaddingPx, "padding", config.PaddingPx, "canvas padding in pixels")
	fs.Float64Var(&opts.LineSpacing, "spacing", 0, "extra spacing between lines in pixels")
	fs.BoolVar(&opts.Antialias, "antialias", true, "antialias rendered glyphs")
	fs.IntVar(&opts.WrapWidth, "wrap", config.WrapWidth, "wrap lines at this many characters (0 disables)")
	fs.IntVar(&opts.CharWidth, "w", config.OutputCharWidth, "output width in characters when quantizing")
	fs.BoolVar(&opts.Describe, "d", false, "describe the image with the vision model")
	fs.BoolVar(&opts.ToggleAuto, "D", false, "toggle automatic descriptions on or off and exit")
	fs.StringVar(&opts.Model, "m", "", "vision model for descriptions")
	fs.IntVar(&opts.HistoryLimit, "history", 0, "show the last N conversions and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(ctx context.Context, opts *options, config *core.Config, logger *logging.Logger) int {
	correlationID := core.NewCorrelationID()
	log := logger.With(zap.String("correlation_id", correlationID))

	if opts.ToggleAuto {
		return toggleAutoDescribe(log)
	}
	if opts.HistoryLimit > 0 {
		return showHistory(ctx, config, opts.HistoryLimit, log)
	}

	prefs := loadPreferences(log)

	if opts.InputPath == "" && opts.ASCIIText == "" {
		color.Red("%v", core.ErrInputMissing("", nil))
		return core.ExitCodeError
	}

	direction, err := detectDirection(opts)
	if err != nil {
		color.Red("%v", err)
		return core.ExitCodeError
	}

	log.Info("Starting conversion",
		zap.String("direction", direction),
		zap.String("input", opts.InputPath),
		zap.String("output", opts.Output),
	)

	record := db.ConversionRecord{
		CorrelationID: correlationID,
		Direction:     direction,
		InputPath:     opts.InputPath,
		Status:        db.StatusSuccess,
	}
	started := time.Now()

	var runErr error
	switch direction {
	case db.DirectionRasterize:
		runErr = runRasterize(ctx, opts, config, prefs, log, &record)
	case db.DirectionQuantize:
		runErr = runQuantize(ctx, opts, config, prefs, log, &record)
	}

	record.DurationMS = time.Since(started).Milliseconds()
	if runErr != nil {
		record.Status = db.StatusError
		record.ErrorMessage = runErr.Error()
	}
	recordHistory(ctx, config, record, log)

	if runErr != nil {
		log.Error("Conversion failed", zap.Error(runErr))
		color.Red("%v", runErr)
		return core.ExitCodeError
	}

	log.Info("Conversion complete", zap.Int64("duration_ms", record.DurationMS))
	return core.ExitCodeSuccess
}

// detectDirection decides text->image or image->text from the flags and the
// input file extension.
func detectDirection(opts *options) (string, error) {
	if opts.ASCIIText != "" {
		return db.DirectionRasterize, nil
	}

	switch strings.ToLower(filepath.Ext(opts.InputPath)) {
	case ".txt", ".asc", ".ascii":
		return db.DirectionRasterize, nil
	case ".png", ".jpg", ".jpeg", ".gif":
		return db.DirectionQuantize, nil
	}
	return "", core.ErrInvalidConfig(
		fmt.Sprintf("cannot tell what to do with %q", opts.InputPath), nil)
}

func runRasterize(ctx context.Context, opts *options, config *core.Config, prefs configstore.Preferences, log *logging.Logger, record *db.ConversionRecord) error {
	text := opts.ASCIIText
	if text == "" {
		data, err := os.ReadFile(opts.InputPath)
		if err != nil {
			return core.ErrInputMissing(opts.InputPath, err)
		}
		text = string(data)
	}

	cfg := rasterize.Config{
		FontName:    opts.FontName,
		FontSizePx:  opts.FontSizePx,
		Background:  opts.Background,
		Foreground:  opts.Foreground,
		PaddingPx:   opts.PaddingPx,
		WrapWidth:   opts.WrapWidth,
		LineSpacing: opts.LineSpacing,
		Antialias:   opts.Antialias,
	}

	rendering, err := rasterize.RenderText(text, cfg)
	if err != nil {
		return err
	}
	if rendering.FontFallback {
		record.FontFallback = true
		log.Warn("Requested font unavailable, using built-in monospace",
			zap.String("font", opts.FontName))
		color.Yellow("Font %q not found, using built-in monospace.", opts.FontName)
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = derivedOutputPath(opts.InputPath, "ascii_art", ".png")
	}
	format := codec.FormatForPath(outPath)

	f, err := os.Create(outPath)
	if err != nil {
		return core.ErrEncodeFailed(outPath, err)
	}
	defer f.Close()
	if err := codec.Encode(f, rendering.Image, format); err != nil {
		return err
	}

	bounds := rendering.Image.Bounds()
	record.OutputPath = outPath
	record.OutputWidth = bounds.Dx()
	record.OutputHeight = bounds.Dy()

	color.Green("Rendered %dx%d %s image to %s", bounds.Dx(), bounds.Dy(), format, outPath)

	if opts.Describe || prefs.AutoDescribe {
		return describeImage(ctx, opts, config, prefs, rendering.Image, log, record)
	}
	return nil
}

func runQuantize(ctx context.Context, opts *options, config *core.Config, prefs configstore.Preferences, log *logging.Logger, record *db.ConversionRecord) error {
	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return core.ErrInputMissing(opts.InputPath, err)
	}
	img, err := codec.Decode(data)
	if err != nil {
		return core.ErrDecodeFailed(opts.InputPath, err)
	}

	lines, err := quantize.Image(img, opts.CharWidth)
	if err != nil {
		return err
	}
	text := quantize.Flatten(lines)

	record.OutputWidth = opts.CharWidth
	record.OutputHeight = len(lines)

	switch opts.Output {
	case "", "-":
		fmt.Print(text)
	default:
		if err := os.WriteFile(opts.Output, []byte(text), 0644); err != nil {
			return core.ErrEncodeFailed(opts.Output, err)
		}
		record.OutputPath = opts.Output
		color.Green("Wrote %d lines of ASCII art to %s", len(lines), opts.Output)
	}

	if opts.Describe || prefs.AutoDescribe {
		return describeImage(ctx, opts, config, prefs, img, log, record)
	}
	return nil
}

// describeImage asks the vision model for an accessibility description and
// prints it to the console.
func describeImage(ctx context.Context, opts *options, config *core.Config, prefs configstore.Preferences, img image.Image, log *logging.Logger, record *db.ConversionRecord) error {
	apiKey, err := interactiveAPIKey(config.OpenAIAPIKey, secrets.DetectEnvironment(), os.Stdin, os.Stderr)
	if err != nil {
		return err
	}

	model := config.DescribeModel
	if prefs.Model != "" {
		model = prefs.Model
	}
	if opts.Model != "" {
		model = opts.Model
	}

	provider, err := describe.NewOpenAIProvider(describe.OpenAIConfig{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: config.DescribeURL,
	})
	if err != nil {
		return err
	}

	log.Info("Requesting image description",
		zap.String("model", model),
		zap.String("api_key", secrets.MaskAPIKey(apiKey)),
	)

	ctx, cancel := context.WithTimeout(ctx, config.AITimeout)
	defer cancel()

	description, err := provider.Describe(ctx, img)
	if err != nil {
		return err
	}
	record.Described = true

	color.New(color.FgCyan, color.Bold).Fprintln(os.Stderr, "Image description:")
	fmt.Fprintln(os.Stderr, description)
	return nil
}

// interactiveAPIKey returns the description API key, preferring the
// configured value, then the environment and .env. With nothing configured,
// desktop sessions are prompted once and the entered key is stored in .env
// for later runs; everywhere else a missing key is an error.
func interactiveAPIKey(configured string, environment secrets.Environment, in io.Reader, out io.Writer) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if key := secrets.ResolveAPIKey(); key != "" {
		return key, nil
	}
	if environment != secrets.EnvDesktop {
		return "", core.ErrMissingAPIKey()
	}

	fmt.Fprint(out, "Enter your OpenAI API key (stored in .env): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	key := strings.TrimSpace(line)
	if key == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return "", core.ErrMissingAPIKey()
	}

	if err := secrets.SaveAPIKey(key); err != nil {
		fmt.Fprintf(out, "Warning: could not save the key: %v\n", err)
	} else {
		fmt.Fprintf(out, "Saved %s to .env.\n", secrets.MaskAPIKey(key))
	}
	return key, nil
}

// derivedOutputPath builds an output name next to the input, or falls back to
// fallbackBase in the working directory when reading from a flag.
func derivedOutputPath(inputPath, fallbackBase, ext string) string {
	if inputPath == "" {
		return fallbackBase + ext
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), base+ext)
}

func toggleAutoDescribe(log *logging.Logger) int {
	store, err := configstore.NewStore()
	if err != nil {
		color.Red("Cannot open preferences: %v", err)
		return core.ExitCodeError
	}

	prefs := store.Load()
	prefs.AutoDescribe = !prefs.AutoDescribe
	if err := store.Save(prefs); err != nil {
		color.Red("Cannot save preferences: %v", err)
		return core.ExitCodeError
	}

	state := "off"
	if prefs.AutoDescribe {
		state = "on"
	}
	log.Info("Toggled automatic descriptions", zap.Bool("auto_describe", prefs.AutoDescribe))
	color.Cyan("Automatic image descriptions are now %s.", state)
	return core.ExitCodeSuccess
}

// loadPreferences reads saved preferences, running the first-use screen
// reader prompt when no preference file exists yet. The prompt only runs in
// desktop sessions; containers, CI and headless runs keep the defaults.
func loadPreferences(log *logging.Logger) configstore.Preferences {
	store, err := configstore.NewStore()
	if err != nil {
		log.Warn("Cannot locate preferences directory", zap.Error(err))
		return configstore.DefaultPreferences()
	}

	if !store.Exists() && secrets.DetectEnvironment() == secrets.EnvDesktop {
		if reader := accessibility.DetectScreenReader(); reader != "" {
			prefs := configstore.DefaultPreferences()
			prefs.ScreenReader = reader
			prefs.AutoDescribe = promptYesNo(
				fmt.Sprintf("%s detected. Describe generated images automatically? [y/N] ", reader))
			if err := store.Save(prefs); err != nil {
				log.Warn("Cannot save preferences", zap.Error(err))
			}
			log.Info("Screen reader detected",
				zap.String("screen_reader", reader),
				zap.Bool("auto_describe", prefs.AutoDescribe))
			return prefs
		}
	}
	return store.Load()
}

func promptYesNo(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func showHistory(ctx context.Context, config *core.Config, limit int, log *logging.Logger) int {
	conn, err := db.Setup(config.HistoryDBPath, config.MigrationsPath)
	if err != nil {
		log.Error("Cannot open history database", zap.Error(err))
		color.Red("Cannot open history database: %v", err)
		return core.ExitCodeError
	}
	defer conn.Close()

	repo := db.NewRepository(conn)
	records, err := repo.RecentConversions(ctx, limit)
	if err != nil {
		color.Red("Cannot read history: %v", err)
		return core.ExitCodeError
	}
	if len(records) == 0 {
		color.Cyan("No conversions recorded yet.")
		return core.ExitCodeSuccess
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Println("Recent conversions:")
	for _, rec := range records {
		status := color.GreenString(rec.Status)
		if rec.Status == db.StatusError {
			status = color.RedString(rec.Status)
		}
		fmt.Printf("  %s  %-9s  %-40s  %s  %dms\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Direction, rec.InputPath, status, rec.DurationMS)
	}
	return core.ExitCodeSuccess
}

// recordHistory persists the run outcome. History failures never fail the
// conversion itself.
func recordHistory(ctx context.Context, config *core.Config, record db.ConversionRecord, log *logging.Logger) {
	conn, err := db.Setup(config.HistoryDBPath, config.MigrationsPath)
	if err != nil {
		log.Warn("Cannot open history database", zap.Error(err))
		return
	}
	defer conn.Close()

	repo := db.NewRepository(conn)
	if _, err := repo.InsertConversion(ctx, record); err != nil {
		log.Warn("Cannot record conversion", zap.Error(err))
	}
}
