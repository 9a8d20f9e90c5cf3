package deploy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/estafette/estafette-build-push/clients/environment"
	"github.com/estafette/estafette-build-push/clients/git"
	"github.com/estafette/estafette-build-push/clients/obfuscation"
	"github.com/estafette/estafette-build-push/services/archiver"
	"github.com/estafette/estafette-build-push/services/preflight"
	"github.com/estafette/estafette-build-push/services/stream"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

var uploadTarget = buildsapi.UploadTarget{GetURL: "https://x/get", PutURL: "https://x/put"}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Line(line stream.Line)                  {}
func (r *recordingReporter) SectionStarted(title string)            {}
func (r *recordingReporter) SectionCompleted(section stream.Section) {}

func (r *recordingReporter) Pushing(root, app string) {
	r.events = append(r.events, "pushing "+app)
}

func (r *recordingReporter) StageStarted(title string) {
	r.events = append(r.events, "started "+title)
}

func (r *recordingReporter) StageSkipped(title, reason string) {
	r.events = append(r.events, "skipped "+title)
}

func (r *recordingReporter) StageSucceeded(title string) {
	r.events = append(r.events, "succeeded "+title)
}

func (r *recordingReporter) StageFailed(title string, err error) {
	r.events = append(r.events, "failed "+title)
}

type mocks struct {
	git         *git.MockClient
	environment *environment.MockClient
	buildsapi   *buildsapi.MockClient
	preflight   *preflight.MockService
	archiver    *archiver.MockService
	stream      *stream.MockService
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		git:         git.NewMockClient(ctrl),
		environment: environment.NewMockClient(ctrl),
		buildsapi:   buildsapi.NewMockClient(ctrl),
		preflight:   preflight.NewMockService(ctrl),
		archiver:    archiver.NewMockService(ctrl),
		stream:      stream.NewMockService(ctrl),
	}
}

func (m mocks) service() Service {
	return NewService(m.git, m.environment, m.buildsapi, obfuscation.NewClient(), m.preflight, m.archiver, m.stream)
}

// writeArtifact puts a fake archive of size bytes in its own directory, the way the archiver does
func writeArtifact(t *testing.T, size int) archiver.ArchiveArtifact {
	directory := filepath.Join(t.TempDir(), "archive")
	err := os.MkdirAll(directory, 0700)
	assert.Nil(t, err)
	path := filepath.Join(directory, "abc.tar.gz")
	err = ioutil.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0600)
	assert.Nil(t, err)

	return archiver.ArchiveArtifact{
		Path:         path,
		Size:         int64(size),
		DigestSHA256: "e3b0c442",
	}
}

func TestPush(t *testing.T) {

	t.Run("ReturnsConfigurationErrorForVerboseAndSilent", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)

		// act
		_, err := m.service().Push(context.Background(), Request{Root: t.TempDir(), Verbose: true, Silent: true}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindConfiguration, api.KindOf(err))
	})

	t.Run("ReturnsConfigurationErrorForNonexistentRoot", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)

		// act
		_, err := m.service().Push(context.Background(), Request{Root: filepath.Join(t.TempDir(), "missing"), App: "myapp"}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindConfiguration, api.KindOf(err))
	})

	t.Run("ReturnsConfigurationErrorWhenNoAppResolves", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(true)
		m.git.EXPECT().Branch(gomock.Any()).Return("feature", nil)
		m.environment.EXPECT().ResolveApp("feature", "").Return("", errors.New("No app specified"))

		// act
		_, err := m.service().Push(context.Background(), Request{Root: t.TempDir()}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindConfiguration, api.KindOf(err))
		assert.Equal(t, "No app specified", err.Error())
	})

	t.Run("RunsAllStagesInOrderAndReturnsLastTranscriptLine", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 1024)
		build := buildsapi.Build{ID: "b1", Status: buildsapi.BuildStatusPending, OutputStreamURL: "https://x/stream"}

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(true).AnyTimes()
		m.git.EXPECT().Branch(gomock.Any()).Return("main", nil)
		m.git.EXPECT().HeadSha(gomock.Any()).Return("0123abc", nil)
		m.git.EXPECT().Description(gomock.Any()).Return("Jane: fix things", nil)
		m.environment.EXPECT().ResolveApp("main", "myapp").Return("myapp", nil)
		m.preflight.EXPECT().Run(gomock.Any(), "myapp", preflight.Options{AllowDirty: true}).Return(nil)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(uploadTarget, nil)
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)
		m.buildsapi.EXPECT().Upload(gomock.Any(), uploadTarget, gomock.Any(), int64(1024)).DoAndReturn(func(ctx context.Context, target buildsapi.UploadTarget, body io.Reader, size int64) error {
			data, err := ioutil.ReadAll(body)
			assert.Nil(t, err)
			assert.Equal(t, 1024, len(data))
			return nil
		})
		m.buildsapi.EXPECT().CreateBuild(gomock.Any(), "myapp", buildsapi.BuildRequest{
			SourceBlob: buildsapi.SourceBlob{
				Checksum:           "SHA256:e3b0c442",
				URL:                "https://x/get",
				Version:            "0123abc",
				VersionDescription: "Jane: fix things",
			},
		}).Return(build, nil)
		m.stream.EXPECT().Stream(gomock.Any(), "myapp", build, gomock.Any(), true).Return(stream.Result{
			State:      stream.StateSucceeded,
			Transcript: []stream.Line{{Text: "-----> Launching..."}, {Text: "Released v42", Index: 1}, {Text: "", Index: 2}},
		}, nil)

		reporter := &recordingReporter{}

		// act
		outcome, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, AllowDirty: true}, reporter)

		assert.Nil(t, err)
		assert.Equal(t, "myapp", outcome.App)
		assert.Equal(t, "b1", outcome.Build.ID)
		assert.Equal(t, "Released v42", outcome.StatusLine)
		assert.Equal(t, []string{
			"pushing myapp",
			"started Git prerequisite checks",
			"succeeded Git prerequisite checks",
			"started Creating source",
			"succeeded Creating source",
			"started Uploading source",
			"succeeded Uploading source",
			"started Creating build",
			"succeeded Creating build",
			"started Building",
			"succeeded Building",
		}, reporter.events)
		_, err = os.Stat(artifact.Path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("SkipsPrerequisiteChecksWhenForced", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 16)

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(false).AnyTimes()
		m.environment.EXPECT().ResolveApp("", "myapp").Return("myapp", nil)
		m.preflight.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(uploadTarget, nil)
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)
		m.buildsapi.EXPECT().Upload(gomock.Any(), uploadTarget, gomock.Any(), int64(16)).Return(nil)
		m.buildsapi.EXPECT().CreateBuild(gomock.Any(), "myapp", buildsapi.BuildRequest{
			SourceBlob: buildsapi.SourceBlob{Checksum: "SHA256:e3b0c442", URL: "https://x/get"},
		}).Return(buildsapi.Build{ID: "b1"}, nil)
		m.stream.EXPECT().Stream(gomock.Any(), "myapp", gomock.Any(), gomock.Any(), false).Return(stream.Result{State: stream.StateSucceeded}, nil)

		reporter := &recordingReporter{}

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, Force: true, Verbose: true}, reporter)

		assert.Nil(t, err)
		assert.Equal(t, "skipped Git prerequisite checks", reporter.events[1])
	})

	t.Run("ReturnsPreflightErrorVerbatimWithoutCreatingSource", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		preflightErr := api.Errorf(api.KindRepository, "Current branch is feature but myapp deploys from main. Check out main or use --any-branch.")

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(true)
		m.git.EXPECT().Branch(gomock.Any()).Return("feature", nil)
		m.environment.EXPECT().ResolveApp("feature", "myapp").Return("myapp", nil)
		m.preflight.EXPECT().Run(gomock.Any(), "myapp", preflight.Options{}).Return(preflightErr)

		reporter := &recordingReporter{}

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: t.TempDir()}, reporter)

		assert.Equal(t, preflightErr, err)
		assert.Equal(t, "failed Git prerequisite checks", reporter.events[len(reporter.events)-1])
	})

	t.Run("ReturnsTransferErrorWithoutCreatingBuildWhenUploadFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 16)

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(false).AnyTimes()
		m.environment.EXPECT().ResolveApp("", "myapp").Return("myapp", nil)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(uploadTarget, nil)
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)
		m.buildsapi.EXPECT().Upload(gomock.Any(), uploadTarget, gomock.Any(), int64(16)).Return(fmt.Errorf("Uploading source failed with status 403"))

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, Force: true}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindTransfer, api.KindOf(err))
		_, statErr := os.Stat(artifact.Path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("HidesSignedUrlCredentialsInUploadError", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 16)
		signedTarget := buildsapi.UploadTarget{
			GetURL: "https://bucket.example.com/abc?Signature=getsecret",
			PutURL: "https://bucket.example.com/abc?Signature=putsecret",
		}

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(false).AnyTimes()
		m.environment.EXPECT().ResolveApp("", "myapp").Return("myapp", nil)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(signedTarget, nil)
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)
		m.buildsapi.EXPECT().Upload(gomock.Any(), signedTarget, gomock.Any(), int64(16)).Return(fmt.Errorf(`Uploading source failed: Put "%v": EOF`, signedTarget.PutURL))

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, Force: true}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindTransfer, api.KindOf(err))
		assert.Equal(t, `Uploading source failed: Put "https://bucket.example.com/abc?***": EOF`, err.Error())
	})

	t.Run("RemovesArchiveWhenSourceAllocationFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 16)

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(false).AnyTimes()
		m.environment.EXPECT().ResolveApp("", "myapp").Return("myapp", nil)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(buildsapi.UploadTarget{}, errors.New("You do not have access to the app myapp."))
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, Force: true}, &recordingReporter{})

		assert.NotNil(t, err)
		assert.Equal(t, api.KindRemoteAPI, api.KindOf(err))
		assert.Equal(t, "You do not have access to the app myapp.", err.Error())
		_, statErr := os.Stat(artifact.Path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("ReturnsRemoteBuildErrorVerbatim", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		root := t.TempDir()
		artifact := writeArtifact(t, 16)
		buildErr := api.Errorf(api.KindRemoteBuild, "error: bad thing")

		m := newMocks(ctrl)
		m.git.EXPECT().HasRepository().Return(false).AnyTimes()
		m.environment.EXPECT().ResolveApp("", "myapp").Return("myapp", nil)
		m.buildsapi.EXPECT().CreateSource(gomock.Any(), "myapp").Return(uploadTarget, nil)
		m.archiver.EXPECT().Archive(gomock.Any(), root).Return(artifact, nil)
		m.buildsapi.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.buildsapi.EXPECT().CreateBuild(gomock.Any(), "myapp", gomock.Any()).Return(buildsapi.Build{ID: "b1"}, nil)
		m.stream.EXPECT().Stream(gomock.Any(), "myapp", gomock.Any(), gomock.Any(), true).Return(stream.Result{State: stream.StateFailed}, buildErr)

		// act
		_, err := m.service().Push(context.Background(), Request{App: "myapp", Root: root, Force: true}, &recordingReporter{})

		assert.Equal(t, buildErr, err)
		assert.Equal(t, "error: bad thing", err.Error())
	})
}

func TestOutput(t *testing.T) {

	t.Run("CopiesOutputOfLatestBuild", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.buildsapi.EXPECT().ListBuilds(gomock.Any(), "myapp", buildsapi.ListOptions{Max: 1}).Return(buildsapi.BuildPage{
			Builds: []buildsapi.Build{{ID: "b9", OutputStreamURL: "https://x/stream"}},
		}, nil)
		m.buildsapi.EXPECT().OpenOutputStream(gomock.Any(), "https://x/stream").Return(ioutil.NopCloser(strings.NewReader("-----> Building\ndone\n")), nil)

		var out bytes.Buffer

		// act
		err := m.service().Output(context.Background(), "myapp", &out)

		assert.Nil(t, err)
		assert.Equal(t, "-----> Building\ndone\n", out.String())
	})

	t.Run("ReturnsErrorWhenAppHasNoBuilds", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.buildsapi.EXPECT().ListBuilds(gomock.Any(), "myapp", buildsapi.ListOptions{Max: 1}).Return(buildsapi.BuildPage{}, nil)

		// act
		err := m.service().Output(context.Background(), "myapp", ioutil.Discard)

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "No builds")
	})
}

func TestBuilds(t *testing.T) {

	t.Run("ReturnsFirstPageOfBuilds", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.buildsapi.EXPECT().ListBuilds(gomock.Any(), "myapp", buildsapi.ListOptions{}).Return(buildsapi.BuildPage{
			Builds: []buildsapi.Build{{ID: "b1"}, {ID: "b2"}},
		}, nil)

		// act
		builds, err := m.service().Builds(context.Background(), "myapp")

		assert.Nil(t, err)
		assert.Equal(t, 2, len(builds))
	})
}
