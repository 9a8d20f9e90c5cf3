package deploy

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/estafette/estafette-build-push/clients/environment"
	"github.com/estafette/estafette-build-push/clients/git"
	"github.com/estafette/estafette-build-push/clients/obfuscation"
	"github.com/estafette/estafette-build-push/services/archiver"
	"github.com/estafette/estafette-build-push/services/preflight"
	"github.com/estafette/estafette-build-push/services/stream"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Stage titles as shown while pushing
const (
	StagePrerequisites  = "Git prerequisite checks"
	StageCreatingSource = "Creating source"
	StageUploading      = "Uploading source"
	StageCreatingBuild  = "Creating build"
	StageBuilding       = "Building"
)

// Request describes one push of a source tree to an app
type Request struct {
	App        string
	Root       string
	Verbose    bool
	Silent     bool
	Force      bool
	AllowDirty bool
	AnyBranch  bool
}

// Outcome is what a successful push produced
type Outcome struct {
	App        string
	Build      buildsapi.Build
	Artifact   archiver.ArchiveArtifact
	Result     stream.Result
	StatusLine string
}

// Reporter is told about the progress of a push
type Reporter interface {
	stream.Handler
	Pushing(root, app string)
	StageStarted(title string)
	StageSkipped(title, reason string)
	StageSucceeded(title string)
	StageFailed(title string, err error)
}

// Service pushes source trees to the build platform
type Service interface {
	Push(ctx context.Context, request Request, reporter Reporter) (Outcome, error)
	Builds(ctx context.Context, app string) ([]buildsapi.Build, error)
	Output(ctx context.Context, app string, w io.Writer) error
}

// NewService returns a new Service
func NewService(gitClient git.Client, environmentClient environment.Client, buildsapiClient buildsapi.Client, obfuscationClient obfuscation.Client, preflightService preflight.Service, archiverService archiver.Service, streamService stream.Service) Service {
	return &service{
		gitClient:         gitClient,
		environmentClient: environmentClient,
		buildsapiClient:   buildsapiClient,
		obfuscationClient: obfuscationClient,
		preflightService:  preflightService,
		archiverService:   archiverService,
		streamService:     streamService,
	}
}

type service struct {
	gitClient         git.Client
	environmentClient environment.Client
	buildsapiClient   buildsapi.Client
	obfuscationClient obfuscation.Client
	preflightService  preflight.Service
	archiverService   archiver.Service
	streamService     stream.Service
}

// Validate rejects requests that can't be pushed before anything touches the repository or the network
func Validate(request Request) error {

	if request.Verbose && request.Silent {
		return api.Errorf(api.KindConfiguration, "May not have --verbose and --silent")
	}

	info, err := os.Stat(request.Root)
	if err != nil {
		return api.Errorf(api.KindConfiguration, "Root %v does not exist", request.Root)
	}
	if !info.IsDir() {
		return api.Errorf(api.KindConfiguration, "Root %v is not a directory", request.Root)
	}

	return nil
}

func (s *service) Push(ctx context.Context, request Request, reporter Reporter) (outcome Outcome, err error) {

	if err = Validate(request); err != nil {
		return
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "Push")
	defer span.Finish()
	defer func() {
		if err != nil {
			span.SetTag("error", true)
			span.LogFields(tracingLog.String("error", err.Error()))
		}
	}()

	outcome.App, err = s.resolveApp(ctx, request.App)
	if err != nil {
		return
	}
	span.SetTag("app", outcome.App)

	reporter.Pushing(request.Root, outcome.App)

	if request.Force {
		reporter.StageSkipped(StagePrerequisites, "--force")
	} else {
		err = s.stage(ctx, reporter, StagePrerequisites, func(ctx context.Context) error {
			return s.preflightService.Run(ctx, outcome.App, preflight.Options{
				AllowDirty: request.AllowDirty,
				AnyBranch:  request.AnyBranch,
			})
		})
		if err != nil {
			return
		}
	}

	var target buildsapi.UploadTarget
	err = s.stage(ctx, reporter, StageCreatingSource, func(ctx context.Context) error {
		target, outcome.Artifact, err = s.createSource(ctx, outcome.App, request.Root)
		return err
	})
	if err != nil {
		return
	}
	// best effort, the archive lives in a private temp dir
	defer outcome.Artifact.Remove()

	err = s.stage(ctx, reporter, StageUploading, func(ctx context.Context) error {
		return s.upload(ctx, target, outcome.Artifact)
	})
	if err != nil {
		return
	}
	if removeErr := outcome.Artifact.Remove(); removeErr != nil {
		log.Warn().Err(removeErr).Msgf("Removing archive %v failed", outcome.Artifact.Path)
	}

	err = s.stage(ctx, reporter, StageCreatingBuild, func(ctx context.Context) error {
		outcome.Build, err = s.createBuild(ctx, outcome.App, target, outcome.Artifact)
		return err
	})
	if err != nil {
		return
	}

	err = s.stage(ctx, reporter, StageBuilding, func(ctx context.Context) error {
		// sections only make sense when the raw output is not shown as is
		outcome.Result, err = s.streamService.Stream(ctx, outcome.App, outcome.Build, reporter, !request.Verbose)
		return err
	})
	if err != nil {
		return
	}

	outcome.StatusLine = outcome.Result.LastLine()

	return outcome, nil
}

func (s *service) Builds(ctx context.Context, app string) ([]buildsapi.Build, error) {

	page, err := s.buildsapiClient.ListBuilds(ctx, app, buildsapi.ListOptions{})
	if err != nil {
		return nil, api.Wrap(api.KindRemoteAPI, err)
	}

	return page.Builds, nil
}

func (s *service) Output(ctx context.Context, app string, w io.Writer) error {

	page, err := s.buildsapiClient.ListBuilds(ctx, app, buildsapi.ListOptions{Max: 1})
	if err != nil {
		return api.Wrap(api.KindRemoteAPI, err)
	}
	if len(page.Builds) == 0 {
		return api.Errorf(api.KindRemoteAPI, "No builds for %v", app)
	}

	body, err := s.buildsapiClient.OpenOutputStream(ctx, page.Builds[0].OutputStreamURL)
	if err != nil {
		return api.Wrap(api.KindProtocol, err)
	}
	defer body.Close()

	if _, err = io.Copy(w, body); err != nil {
		return api.Errorf(api.KindProtocol, "Reading build output failed: %v", err)
	}

	return nil
}

// stage runs f as one reported and traced step of a push; the error comes back unchanged
func (s *service) stage(ctx context.Context, reporter Reporter, title string, f func(ctx context.Context) error) error {

	span, ctx := opentracing.StartSpanFromContext(ctx, title)
	defer span.Finish()

	log.Debug().Msgf("Starting stage '%v'", title)
	reporter.StageStarted(title)

	if err := f(ctx); err != nil {
		span.SetTag("error", true)
		log.Debug().Err(err).Msgf("Stage '%v' failed", title)
		reporter.StageFailed(title, err)
		return err
	}

	reporter.StageSucceeded(title)

	return nil
}

func (s *service) resolveApp(ctx context.Context, explicitApp string) (string, error) {

	branch := ""
	if s.gitClient.HasRepository() {
		// a detached head just means no environment matches by branch
		branch, _ = s.gitClient.Branch(ctx)
	}

	app, err := s.environmentClient.ResolveApp(branch, explicitApp)
	if err != nil {
		return "", api.Wrap(api.KindConfiguration, err)
	}

	return app, nil
}

// createSource allocates the upload target and archives the tree at the same time; both have to succeed
func (s *service) createSource(ctx context.Context, app, root string) (target buildsapi.UploadTarget, artifact archiver.ArchiveArtifact, err error) {

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		target, err = s.buildsapiClient.CreateSource(gctx, app)
		return api.Wrap(api.KindRemoteAPI, err)
	})

	g.Go(func() (err error) {
		artifact, err = s.archiverService.Archive(gctx, root)
		return api.Wrap(api.KindArchival, err)
	})

	if err = g.Wait(); err != nil {
		artifact.Remove()
		return buildsapi.UploadTarget{}, archiver.ArchiveArtifact{}, err
	}

	s.obfuscationClient.CollectSignedURL(target.PutURL)
	s.obfuscationClient.CollectSignedURL(target.GetURL)

	return target, artifact, nil
}

func (s *service) upload(ctx context.Context, target buildsapi.UploadTarget, artifact archiver.ArchiveArtifact) error {

	file, err := os.Open(artifact.Path)
	if err != nil {
		return api.Wrap(api.KindArchival, fmt.Errorf("Opening archive failed: %w", err))
	}
	defer file.Close()

	if err = s.buildsapiClient.Upload(ctx, target, file, artifact.Size); err != nil {
		// transport errors quote the signed url
		return &api.Error{Kind: api.KindTransfer, Message: s.obfuscationClient.Obfuscate(err.Error()), Err: err}
	}

	return nil
}

func (s *service) createBuild(ctx context.Context, app string, target buildsapi.UploadTarget, artifact archiver.ArchiveArtifact) (buildsapi.Build, error) {

	request := buildsapi.BuildRequest{
		SourceBlob: buildsapi.SourceBlob{
			Checksum: artifact.Checksum(),
			URL:      target.GetURL,
		},
	}

	if s.gitClient.HasRepository() {
		var err error
		request.SourceBlob.Version, err = s.gitClient.HeadSha(ctx)
		if err != nil {
			return buildsapi.Build{}, api.Wrap(api.KindRepository, err)
		}
		request.SourceBlob.VersionDescription, err = s.gitClient.Description(ctx)
		if err != nil {
			return buildsapi.Build{}, api.Wrap(api.KindRepository, err)
		}
	}

	build, err := s.buildsapiClient.CreateBuild(ctx, app, request)
	if err != nil {
		return buildsapi.Build{}, api.Wrap(api.KindRemoteAPI, err)
	}

	log.Debug().Msgf("Created build %v for %v", build.ID, app)

	return build, nil
}
