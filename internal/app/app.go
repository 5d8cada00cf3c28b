// Package app implements the application layer for lockb.
package app

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/core/ports"
	"go.trai.ch/lockb/internal/engine/lockb"
	"go.trai.ch/lockb/internal/engine/yarnlock"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TracerName is the instrumentation scope used for conversion spans.
const TracerName = "go.trai.ch/lockb"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.LockfileStore
	hasher       ports.Hasher
	logger       ports.Logger
	watcher      ports.Watcher
	tracer       trace.Tracer

	config *domain.Config
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.LockfileStore,
	hasher ports.Hasher,
	log ports.Logger,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		hasher:       hasher,
		logger:       log,
		watcher:      watcher,
		tracer:       otel.Tracer(TracerName),
	}
}

// WithTracer replaces the tracer used for conversion spans.
func (a *App) WithTracer(tracer trace.Tracer) *App {
	a.tracer = tracer
	return a
}

// jsonSwitcher is implemented by loggers that support a JSON output mode.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// ConfigureLogging switches the logger to JSON output when enabled.
func (a *App) ConfigureLogging(jsonOutput bool) {
	if !jsonOutput {
		return
	}
	if l, ok := a.logger.(jsonSwitcher); ok {
		l.SetJSON(true)
	}
}

// loadConfig reads the config file of the working directory once.
func (a *App) loadConfig() (*domain.Config, error) {
	if a.config != nil {
		return a.config, nil
	}
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.ConfigureLogging(cfg.LogJSON)
	a.config = cfg
	return cfg, nil
}

// ConvertOptions configuration for the Convert method.
type ConvertOptions struct {
	// Input overrides the configured binary lockfile path.
	Input string
	// Output overrides the configured output path.
	Output string
	// Stdout receives the text lockfile when no output path is set.
	Stdout io.Writer
}

// Convert decodes a binary lockfile and writes the text lockfile.
func (a *App) Convert(ctx context.Context, opts ConvertOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	return a.regenerate(
		ctx,
		firstNonEmpty(opts.Input, cfg.Input),
		firstNonEmpty(opts.Output, cfg.Output),
		opts.Stdout,
	)
}

// HashOptions configuration for the Hash method.
type HashOptions struct {
	Input  string
	Stdout io.Writer
}

// Hash prints the formatted metadata hash of a binary lockfile.
func (a *App) Hash(_ context.Context, opts HashOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	input := firstNonEmpty(opts.Input, cfg.Input)

	data, err := a.store.Read(input)
	if err != nil {
		return err
	}
	lf, err := lockb.Decode(data)
	if err != nil {
		return zerr.With(err, "path", input)
	}
	hash, err := lf.Hash()
	if err != nil {
		return zerr.With(err, "path", input)
	}

	_, err = io.WriteString(opts.Stdout, hash+"\n")
	return err
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	Input string
	// Against is the text lockfile the converted output is compared to.
	Against string
}

// Check reports ErrLockfileOutOfDate when the text lockfile differs from
// the conversion of the binary lockfile.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	input := firstNonEmpty(opts.Input, cfg.Input)
	against := firstNonEmpty(opts.Against, cfg.CheckAgainst)

	text, err := a.convertFile(ctx, input)
	if err != nil {
		return err
	}

	have, err := a.hasher.HashFile(against)
	if err != nil {
		return err
	}
	if want := a.hasher.HashBytes(render(text)); have != want {
		err := zerr.Wrap(domain.ErrLockfileOutOfDate, "lockfile check failed")
		err = zerr.With(err, "path", against)
		return zerr.With(err, "input", input)
	}

	a.logger.Info(against + " is up to date")
	return nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Input  string
	Output string
	Stdout io.Writer
}

// Watch converts the binary lockfile once and again after every change
// until ctx is done. Conversion failures while watching are logged and do
// not end the loop.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	input := firstNonEmpty(opts.Input, cfg.Input)
	output := firstNonEmpty(opts.Output, cfg.Output)

	if err := a.regenerate(ctx, input, output, opts.Stdout); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, input, cfg.Debounce); err != nil {
		return err
	}
	a.logger.Info("watching " + input + " for changes")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		for event := range a.watcher.Events() {
			if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
				a.logger.Warn(input + " was removed, waiting for it to reappear")
				continue
			}
			if err := a.regenerate(ctx, input, output, opts.Stdout); err != nil {
				a.logger.Error(err)
				continue
			}
			if output != "" {
				a.logger.Info("updated " + output)
			}
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	return g.Wait()
}

// regenerate converts input and writes the result to output, or to stdout
// when output is empty.
func (a *App) regenerate(ctx context.Context, input, output string, stdout io.Writer) error {
	text, err := a.convertFile(ctx, input)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = stdout.Write(render(text))
		return err
	}
	return a.store.Write(output, render(text))
}

// convertFile reads and converts a binary lockfile inside a lockb.convert span.
func (a *App) convertFile(ctx context.Context, input string) (text string, err error) {
	ctx, span := a.tracer.Start(ctx, "lockb.convert", trace.WithAttributes(
		attribute.String("lockb.input", input),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	data, err := a.store.Read(input)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int("lockb.bytes", len(data)))

	_, decodeSpan := a.tracer.Start(ctx, "lockb.decode")
	lf, err := lockb.Decode(data)
	decodeSpan.End()
	if err != nil {
		return "", zerr.With(err, "path", input)
	}
	span.SetAttributes(attribute.Int("lockb.packages", lf.Len()))

	_, encodeSpan := a.tracer.Start(ctx, "lockb.encode")
	text, err = yarnlock.Encode(lf)
	encodeSpan.End()
	if err != nil {
		return "", zerr.With(err, "path", input)
	}

	return text, nil
}

// render terminates the text lockfile with a newline.
func render(text string) []byte {
	return []byte(text + "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
