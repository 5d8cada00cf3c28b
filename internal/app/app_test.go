package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/lockb/internal/app"
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/core/ports"
	"go.trai.ch/lockb/internal/core/ports/mocks"
	"go.trai.ch/lockb/internal/engine/lockb"
	"go.trai.ch/lockb/internal/engine/lockb/lockbtest"
	"go.trai.ch/lockb/internal/engine/yarnlock"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader  *mocks.MockConfigLoader
	store   *mocks.MockLockfileStore
	hasher  *mocks.MockHasher
	logger  *mocks.MockLogger
	watcher *mocks.MockWatcher
	app     *app.App
}

func newFixture(t *testing.T, cfg domain.Config) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		store:   mocks.NewMockLockfileStore(ctrl),
		hasher:  mocks.NewMockHasher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
	}
	f.loader.EXPECT().Load(".").Return(&cfg, nil).AnyTimes()
	f.app = app.New(f.loader, f.store, f.hasher, f.logger, f.watcher)
	return f
}

func sampleText(t *testing.T) []byte {
	t.Helper()
	text, err := yarnlock.Convert(lockbtest.Sample().Build())
	require.NoError(t, err)
	return []byte(text + "\n")
}

func TestApp_Convert_Stdout(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(lockbtest.Sample().Build(), nil)

	var stdout bytes.Buffer
	err := f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &stdout})
	require.NoError(t, err)
	assert.Equal(t, string(sampleText(t)), stdout.String())
}

func TestApp_Convert_ConfigPaths(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Input = "packages/app/bun.lockb"
	cfg.Output = "packages/app/yarn.lock"

	f := newFixture(t, cfg)
	f.store.EXPECT().Read("packages/app/bun.lockb").Return(lockbtest.Sample().Build(), nil)
	f.store.EXPECT().Write("packages/app/yarn.lock", sampleText(t)).Return(nil)

	var stdout bytes.Buffer
	err := f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &stdout})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestApp_Convert_OptionsOverrideConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Input = "config/bun.lockb"
	cfg.Output = "config/yarn.lock"

	f := newFixture(t, cfg)
	f.store.EXPECT().Read("flag/bun.lockb").Return(lockbtest.Sample().Build(), nil)
	f.store.EXPECT().Write("flag/yarn.lock", sampleText(t)).Return(nil)

	err := f.app.Convert(context.Background(), app.ConvertOptions{
		Input:  "flag/bun.lockb",
		Output: "flag/yarn.lock",
	})
	require.NoError(t, err)
}

func TestApp_Convert_DecodeError(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(bytes.Repeat([]byte("x"), 200), nil)

	err := f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLockfile)
}

func TestApp_Convert_ReadError(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	readErr := errors.New("permission denied")
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(nil, readErr)

	err := f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, readErr)
}

func TestApp_Convert_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(nil, domain.ErrConfigParseFailed)

	a := app.New(loader, mocks.NewMockLockfileStore(ctrl), mocks.NewMockHasher(ctrl),
		mocks.NewMockLogger(ctrl), mocks.NewMockWatcher(ctrl))

	err := a.Convert(context.Background(), app.ConvertOptions{Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Convert_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	data := lockbtest.Sample().Build()
	lf, err := lockb.Decode(data)
	require.NoError(t, err)

	f := newFixture(t, domain.DefaultConfig())
	f.app.WithTracer(tp.Tracer("test"))
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(data, nil)

	require.NoError(t, f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &bytes.Buffer{}}))

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "lockb.decode", spans[0].Name())
	assert.Equal(t, "lockb.encode", spans[1].Name())

	convert := spans[2]
	assert.Equal(t, "lockb.convert", convert.Name())
	assert.Equal(t, convert.SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("lockb.input", domain.DefaultLockfileName),
		attribute.Int("lockb.bytes", len(data)),
		attribute.Int("lockb.packages", lf.Len()),
	}, convert.Attributes())
}

func TestApp_Convert_SpanRecordsError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	f := newFixture(t, domain.DefaultConfig())
	f.app.WithTracer(tp.Tracer("test"))
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return([]byte("short"), nil)

	require.Error(t, f.app.Convert(context.Background(), app.ConvertOptions{Stdout: &bytes.Buffer{}}))

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	convert := spans[len(spans)-1]
	assert.Equal(t, "lockb.convert", convert.Name())
	require.Len(t, convert.Events(), 1)
	assert.Equal(t, "exception", convert.Events()[0].Name)
}

func TestApp_Hash(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read("bun.lockb").Return(lockbtest.Sample().Build(), nil)

	var stdout bytes.Buffer
	require.NoError(t, f.app.Hash(context.Background(), app.HashOptions{Stdout: &stdout}))
	assert.Equal(t, "A0A5AAAFB4B9BEC3-c8cdd2d7dce1e6eb-f0f5faff04090e13-181d22272c31363b\n", stdout.String())
}

func TestApp_Hash_DecodeError(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read("custom.lockb").Return(lockbtest.Sample().Format(1).Build(), nil)

	err := f.app.Hash(context.Background(), app.HashOptions{Input: "custom.lockb", Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrOutdatedLockfile)
}

func TestApp_Check_UpToDate(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(lockbtest.Sample().Build(), nil)
	f.hasher.EXPECT().HashFile(domain.DefaultTextLockfileName).Return("0123456789abcdef", nil)
	f.hasher.EXPECT().HashBytes(sampleText(t)).Return("0123456789abcdef")
	f.logger.EXPECT().Info("yarn.lock is up to date")

	require.NoError(t, f.app.Check(context.Background(), app.CheckOptions{}))
}

func TestApp_Check_OutOfDate(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(lockbtest.Sample().Build(), nil)
	f.hasher.EXPECT().HashFile("other.lock").Return("0123456789abcdef", nil)
	f.hasher.EXPECT().HashBytes(gomock.Any()).Return("fedcba9876543210")

	err := f.app.Check(context.Background(), app.CheckOptions{Against: "other.lock"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockfileOutOfDate)
}

func TestApp_Check_MissingTextLockfile(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read(domain.DefaultLockfileName).Return(lockbtest.Sample().Build(), nil)
	f.hasher.EXPECT().HashFile(domain.DefaultTextLockfileName).Return("", domain.ErrLockfileReadFailed)

	err := f.app.Check(context.Background(), app.CheckOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
}

func events(evs ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, ev := range evs {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Debounce = 250 * time.Millisecond

	f := newFixture(t, cfg)
	data := lockbtest.Sample().Build()
	want := sampleText(t)

	gomock.InOrder(
		f.store.EXPECT().Read("bun.lockb").Return(data, nil),
		f.store.EXPECT().Write("yarn.lock", want).Return(nil),
		f.watcher.EXPECT().Start(gomock.Any(), "bun.lockb", 250*time.Millisecond).Return(nil),
		f.watcher.EXPECT().Events().Return(events(
			ports.WatchEvent{Path: "/work/bun.lockb", Operation: ports.OpWrite},
			ports.WatchEvent{Path: "/work/bun.lockb", Operation: ports.OpRemove},
			ports.WatchEvent{Path: "/work/bun.lockb", Operation: ports.OpCreate},
		)),
	)
	f.store.EXPECT().Read("bun.lockb").Return(data, nil).Times(2)
	f.store.EXPECT().Write("yarn.lock", want).Return(nil).Times(2)
	f.watcher.EXPECT().Stop().Return(nil)
	f.logger.EXPECT().Info("watching bun.lockb for changes")
	f.logger.EXPECT().Info("updated yarn.lock").Times(2)
	f.logger.EXPECT().Warn("bun.lockb was removed, waiting for it to reappear")

	err := f.app.Watch(context.Background(), app.WatchOptions{Output: "yarn.lock"})
	require.NoError(t, err)
}

func TestApp_Watch_ConversionErrorKeepsWatching(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	data := lockbtest.Sample().Build()

	gomock.InOrder(
		f.store.EXPECT().Read("bun.lockb").Return(data, nil),
		f.store.EXPECT().Read("bun.lockb").Return([]byte("partial"), nil),
		f.store.EXPECT().Read("bun.lockb").Return(data, nil),
	)
	f.watcher.EXPECT().Start(gomock.Any(), "bun.lockb", domain.DefaultDebounce).Return(nil)
	f.watcher.EXPECT().Events().Return(events(
		ports.WatchEvent{Path: "/work/bun.lockb", Operation: ports.OpWrite},
		ports.WatchEvent{Path: "/work/bun.lockb", Operation: ports.OpWrite},
	))
	f.watcher.EXPECT().Stop().Return(nil)
	f.logger.EXPECT().Info(gomock.Any())
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrTruncatedInput)
	})

	var stdout bytes.Buffer
	require.NoError(t, f.app.Watch(context.Background(), app.WatchOptions{Stdout: &stdout}))
	assert.Equal(t, string(sampleText(t))+string(sampleText(t)), stdout.String())
}

func TestApp_Watch_StartError(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read("bun.lockb").Return(lockbtest.Sample().Build(), nil)
	f.watcher.EXPECT().Start(gomock.Any(), "bun.lockb", domain.DefaultDebounce).Return(domain.ErrWatchFailed)

	err := f.app.Watch(context.Background(), app.WatchOptions{Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrWatchFailed)
}

func TestApp_Watch_InitialConversionError(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	f.store.EXPECT().Read("bun.lockb").Return(nil, domain.ErrLockfileReadFailed)

	err := f.app.Watch(context.Background(), app.WatchOptions{Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
}

type jsonLogger struct {
	ports.Logger
	json bool
}

func (l *jsonLogger) SetJSON(enable bool) { l.json = enable }

func TestApp_ConfigureLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &jsonLogger{Logger: mocks.NewMockLogger(ctrl)}
	a := app.New(nil, nil, nil, log, nil)

	a.ConfigureLogging(false)
	assert.False(t, log.json)

	a.ConfigureLogging(true)
	assert.True(t, log.json)
}

func TestApp_ConfigEnablesJSONLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := domain.DefaultConfig()
	cfg.LogJSON = true

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(&cfg, nil).Times(1)
	store := mocks.NewMockLockfileStore(ctrl)
	store.EXPECT().Read("bun.lockb").Return(lockbtest.Sample().Build(), nil).Times(2)
	log := &jsonLogger{Logger: mocks.NewMockLogger(ctrl)}

	a := app.New(loader, store, mocks.NewMockHasher(ctrl), log, mocks.NewMockWatcher(ctrl))

	require.NoError(t, a.Hash(context.Background(), app.HashOptions{Stdout: &bytes.Buffer{}}))
	require.NoError(t, a.Hash(context.Background(), app.HashOptions{Stdout: &bytes.Buffer{}}))
	assert.True(t, log.json)
}
