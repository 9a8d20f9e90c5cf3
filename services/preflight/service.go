package preflight

import (
	"context"
	"errors"

	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/estafette/estafette-build-push/clients/environment"
	"github.com/estafette/estafette-build-push/clients/git"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options holds the bypass flags of the git prerequisite checks
type Options struct {
	// Force skips every check
	Force bool
	// AllowDirty skips the working tree check
	AllowDirty bool
	// AnyBranch skips the branch check
	AnyBranch bool
}

// Service verifies the local repository is in a state that is safe to push from
//go:generate mockgen -package=preflight -destination ./mock.go -source=service.go
type Service interface {
	Run(ctx context.Context, app string, options Options) error
}

// NewService returns a new Service
func NewService(gitClient git.Client, environmentClient environment.Client, buildsapiClient buildsapi.Client) Service {
	return &service{
		gitClient:         gitClient,
		environmentClient: environmentClient,
		buildsapiClient:   buildsapiClient,
	}
}

type service struct {
	gitClient         git.Client
	environmentClient environment.Client
	buildsapiClient   buildsapi.Client
}

func (s *service) Run(ctx context.Context, app string, options Options) (err error) {

	if options.Force {
		log.Debug().Msg("Skipping git prerequisite checks")
		return nil
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "Preflight")
	defer span.Finish()
	defer func() {
		if err != nil {
			span.SetTag("error", true)
		}
	}()

	if !s.gitClient.HasRepository() {
		return api.Errorf(api.KindRepository, "%v is not a git repository. Use --force to push without git checks.", s.gitClient.Dir())
	}

	if err = s.gitClient.Fetch(ctx); err != nil {
		return s.repositoryError(err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.checkRemoteHistory(ctx, app)
	})

	if !options.AllowDirty {
		g.Go(func() error {
			return s.checkWorkingTree(ctx)
		})
	}

	if !options.AnyBranch {
		g.Go(func() error {
			return s.checkBranch(ctx, app)
		})
	}

	return g.Wait()
}

func (s *service) checkRemoteHistory(ctx context.Context, app string) error {

	behind, err := s.gitClient.CommitsBehind(ctx)
	if err != nil {
		return s.repositoryError(err)
	}
	if behind > 0 {
		return api.Errorf(api.KindRepository, "Local branch is %v commit(s) behind its upstream. Pull changes first or use --force.", behind)
	}

	build, err := s.buildsapiClient.LastSuccessfulBuild(ctx, app)
	if err != nil {
		return api.Wrap(api.KindRemoteAPI, err)
	}
	if build == nil || build.SourceBlob.Version == "" {
		log.Debug().Msgf("No previous successful build with a version for %v, nothing to compare against", app)
		return nil
	}

	ancestor, err := s.gitClient.IsAncestor(ctx, build.SourceBlob.Version)
	if err != nil {
		return s.repositoryError(err)
	}
	if !ancestor {
		return api.Errorf(api.KindRepository, "The last successful build of %v was from %v (%v), which is not part of your local history. Pull changes first or use --force to overwrite it.", app, build.SourceBlob.Version, build.SourceBlob.VersionDescription)
	}

	return nil
}

func (s *service) checkWorkingTree(ctx context.Context) error {

	dirty, err := s.gitClient.Dirty(ctx)
	if err != nil {
		return s.repositoryError(err)
	}
	if dirty {
		return api.Errorf(api.KindRepository, "Working tree has uncommitted changes. Commit them or use --dirty to push anyway.")
	}

	ahead, err := s.gitClient.CommitsAhead(ctx)
	if err != nil {
		return s.repositoryError(err)
	}
	if ahead > 0 {
		return api.Errorf(api.KindRepository, "Local branch has %v unpushed commit(s). Push them first or use --dirty to push anyway.", ahead)
	}

	return nil
}

func (s *service) checkBranch(ctx context.Context, app string) error {

	branch, err := s.gitClient.Branch(ctx)
	if err != nil {
		return s.repositoryError(err)
	}

	expected := s.environmentClient.ExpectedBranch(app, branch)
	if branch != expected {
		return api.Errorf(api.KindRepository, "Current branch is %v but %v deploys from %v. Check out %v or use --any-branch.", branch, app, expected, expected)
	}

	return nil
}

func (s *service) repositoryError(err error) error {
	if errors.Is(err, git.ErrNotARepository) {
		return api.Errorf(api.KindRepository, "%v is not a git repository. Use --force to push without git checks.", s.gitClient.Dir())
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return api.Wrap(api.KindRepository, err)
}
