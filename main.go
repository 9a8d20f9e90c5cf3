package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin"
	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/estafette/estafette-build-push/clients/environment"
	"github.com/estafette/estafette-build-push/clients/git"
	"github.com/estafette/estafette-build-push/clients/obfuscation"
	"github.com/estafette/estafette-build-push/clients/output"
	"github.com/estafette/estafette-build-push/config"
	"github.com/estafette/estafette-build-push/services/archiver"
	"github.com/estafette/estafette-build-push/services/deploy"
	"github.com/estafette/estafette-build-push/services/preflight"
	"github.com/estafette/estafette-build-push/services/stream"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

var (
	app       string
	version   string
	branch    string
	revision  string
	buildDate string
)

var (
	cli = kingpin.New("build-push", "Push source code to the build platform and follow the build.")

	logFormat  = cli.Flag("log-format", "Format of diagnostic logs.").Envar("BUILD_PUSH_LOG_FORMAT").Default("console").Enum("console", "json")
	debug      = cli.Flag("debug", "Show diagnostic logs.").Envar("BUILD_PUSH_DEBUG").Bool()
	configPath = cli.Flag("config", "Path to the config file.").Envar("BUILD_PUSH_CONFIG").Default(config.DefaultPath()).String()

	pushCommand   = cli.Command("push", "Push code to the build platform.")
	pushRoot      = pushCommand.Arg("root", "Path to project root.").Default(".").String()
	pushApp       = pushCommand.Flag("app", "App to push to.").Short('a').String()
	pushVerbose   = pushCommand.Flag("verbose", "Display all progress output.").Short('v').Bool()
	pushSilent    = pushCommand.Flag("silent", "Display no progress output.").Short('s').Bool()
	pushForce     = pushCommand.Flag("force", "Disable all git checks.").Bool()
	pushDirty     = pushCommand.Flag("dirty", "Disable git dirty check.").Bool()
	pushAnyBranch = pushCommand.Flag("any-branch", "Allow pushing from a branch other than the one the app deploys from.").Bool()

	buildsCommand = cli.Command("builds", "List previous builds.")
	buildsApp     = buildsCommand.Flag("app", "App to list builds of.").Short('a').String()
	buildsJSON    = buildsCommand.Flag("json", "Output in json format.").Bool()

	outputCommand = cli.Command("builds:output", "Show previous build output.")
	outputApp     = outputCommand.Flag("app", "App to show the latest build output of.").Short('a').String()
)

func main() {

	cli.Version(version)
	command := kingpin.MustParse(cli.Parse(os.Args[1:]))

	if app == "" {
		app = "build-push"
	}

	applicationInfo := foundation.ApplicationInfo{
		App:       app,
		Version:   version,
		Branch:    branch,
		Revision:  revision,
		BuildDate: buildDate,
	}

	initLogging(applicationInfo, *logFormat, *debug)

	closer := initJaeger(applicationInfo.App)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch command {
	case pushCommand.FullCommand():
		err = runPush(ctx)
	case buildsCommand.FullCommand():
		err = runBuilds(ctx)
	case outputCommand.FullCommand():
		err = runOutput(ctx)
	}

	// flush traces before exiting, os.Exit skips deferred calls
	cancel()
	closer.Close()

	api.HandleExit(os.Stderr, err)
}

func runPush(ctx context.Context) error {

	request := deploy.Request{
		App:        *pushApp,
		Verbose:    *pushVerbose,
		Silent:     *pushSilent,
		Force:      *pushForce,
		AllowDirty: *pushDirty,
		AnyBranch:  *pushAnyBranch,
	}

	root, err := filepath.Abs(*pushRoot)
	if err != nil {
		return api.Wrap(api.KindConfiguration, err)
	}
	request.Root = root

	// catch bad flags and a bad root before anything reads the tree
	if err = deploy.Validate(request); err != nil {
		return err
	}

	cfg, err := readConfig()
	if err != nil {
		return err
	}

	gitClient := git.NewClient(root)
	environmentClient, err := environment.NewClient(root)
	if err != nil {
		return api.Wrap(api.KindConfiguration, err)
	}
	buildsapiClient := buildsapi.NewClient(cfg.APIURL, cfg.APIToken, cfg.MaxHistoryPages)
	obfuscationClient := obfuscation.NewClient()
	obfuscationClient.CollectSecrets(cfg.APIToken)

	deployService := deploy.NewService(
		gitClient,
		environmentClient,
		buildsapiClient,
		obfuscationClient,
		preflight.NewService(gitClient, environmentClient, buildsapiClient),
		archiver.NewService(gitClient),
		stream.NewService(buildsapiClient, cfg.PollInterval()),
	)

	outputClient := output.NewClient(os.Stdout, output.ModeFromFlags(request.Verbose, request.Silent), useColors(os.Stdout))

	outcome, err := deployService.Push(ctx, request, outputClient)
	if err != nil {
		return err
	}

	outputClient.Status(outcome.StatusLine)

	return nil
}

func runBuilds(ctx context.Context) error {

	deployService, targetApp, err := newReadOnlyService(ctx, *buildsApp)
	if err != nil {
		return err
	}

	builds, err := deployService.Builds(ctx, targetApp)
	if err != nil {
		return err
	}

	outputClient := output.NewClient(os.Stdout, output.ModeDefault, useColors(os.Stdout))
	if *buildsJSON {
		return outputClient.BuildsJSON(builds)
	}
	outputClient.BuildsTable(builds)

	return nil
}

func runOutput(ctx context.Context) error {

	deployService, targetApp, err := newReadOnlyService(ctx, *outputApp)
	if err != nil {
		return err
	}

	return deployService.Output(ctx, targetApp, os.Stdout)
}

// newReadOnlyService wires the service for commands that only read from the platform; the app falls back to the
// environment matching the current branch of the working directory
func newReadOnlyService(ctx context.Context, explicitApp string) (deploy.Service, string, error) {

	cfg, err := readConfig()
	if err != nil {
		return nil, "", err
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, "", api.Wrap(api.KindConfiguration, err)
	}

	gitClient := git.NewClient(root)
	environmentClient, err := environment.NewClient(root)
	if err != nil {
		return nil, "", api.Wrap(api.KindConfiguration, err)
	}

	currentBranch := ""
	if gitClient.HasRepository() {
		currentBranch, _ = gitClient.Branch(ctx)
	}
	targetApp, err := environmentClient.ResolveApp(currentBranch, explicitApp)
	if err != nil {
		return nil, "", api.Wrap(api.KindConfiguration, err)
	}

	buildsapiClient := buildsapi.NewClient(cfg.APIURL, cfg.APIToken, cfg.MaxHistoryPages)

	return deploy.NewService(gitClient, environmentClient, buildsapiClient, nil, nil, nil, nil), targetApp, nil
}

func readConfig() (config.Config, error) {

	cfg, err := config.Read(*configPath)
	if err != nil {
		return cfg, api.Wrap(api.KindConfiguration, err)
	}
	cfg.OverrideFromEnv(os.Getenv)

	if cfg.APIToken == "" {
		return cfg, api.Errorf(api.KindConfiguration, "No api token configured; set BUILD_PUSH_API_TOKEN or apiToken in %v", *configPath)
	}

	return cfg, nil
}

// initLogging sends diagnostics to stderr so they never mix with build output on stdout
func initLogging(applicationInfo foundation.ApplicationInfo, format string, debug bool) {

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch format {
	case "json":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stderr).With().
			Timestamp().
			Str("app", applicationInfo.App).
			Str("version", applicationInfo.Version).
			Logger()
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Debug().
		Str("branch", applicationInfo.Branch).
		Str("revision", applicationInfo.Revision).
		Str("buildDate", applicationInfo.BuildDate).
		Str("goVersion", applicationInfo.GoVersion()).
		Str("os", applicationInfo.OperatingSystem()).
		Msgf("Starting %v version %v...", applicationInfo.App, applicationInfo.Version)
}

// initJaeger returns an instance of Jaeger Tracer that can be configured with environment variables
// https://github.com/jaegertracing/jaeger-client-go#environment-variables
func initJaeger(service string) io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}

	// disable jaeger if service name is empty
	if cfg.ServiceName == "" {
		cfg.Disabled = true
	}

	closer, err := cfg.InitGlobalTracer(service, jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}

func useColors(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
