package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is the wait between status polls while a build is pending
const DefaultPollInterval = 2 * time.Second

const (
	// a succeeded build gets drainPolls poll intervals, and at least minDrainWait, to finish its output stream
	drainPolls   = 5
	minDrainWait = time.Second
)

// Handler receives build output as it arrives; all calls come from a single goroutine
type Handler interface {
	Line(line Line)
	SectionStarted(title string)
	SectionCompleted(section Section)
}

// Result is the terminal outcome of a streaming session
type Result struct {
	State      State
	Transcript []Line
	Sections   []Section
}

// LastLine returns the last non-blank transcript line
func (r Result) LastLine() string {
	for i := len(r.Transcript) - 1; i >= 0; i-- {
		if strings.TrimSpace(r.Transcript[i].Text) != "" {
			return r.Transcript[i].Text
		}
	}
	return ""
}

// Errored reports whether the session ended in error; a build the platform reports as failed ends in StateFailed
// with the build's own diagnostics, trouble following the build ends in StateErrored
func (r Result) Errored() bool {
	return r.State == StateFailed || r.State == StateErrored
}

// Service follows a remote build until it finishes
//go:generate mockgen -package=stream -destination ./mock.go -source=service.go
type Service interface {
	// Stream consumes the build's output stream while polling its status; segment enables section events on handler
	Stream(ctx context.Context, app string, build buildsapi.Build, handler Handler, segment bool) (Result, error)
}

// NewService returns a new Service
func NewService(buildsapiClient buildsapi.Client, pollInterval time.Duration) Service {

	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	drainWait := drainPolls * pollInterval
	if drainWait < minDrainWait {
		drainWait = minDrainWait
	}

	return &service{
		buildsapiClient: buildsapiClient,
		pollInterval:    pollInterval,
		drainWait:       drainWait,
	}
}

type service struct {
	buildsapiClient buildsapi.Client
	pollInterval    time.Duration
	drainWait       time.Duration
}

// session holds the state of one build's stream; transcript and segmenter are only written by the reader goroutine
type session struct {
	handler    Handler
	segment    bool
	transcript []Line
	segmenter  Segmenter
	activity   chan struct{}
}

func (s *service) Stream(ctx context.Context, app string, build buildsapi.Build, handler Handler, segment bool) (result Result, err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, "Stream")
	defer span.Finish()
	span.SetTag("build", build.ID)
	defer func() {
		span.SetTag("state", result.State.String())
		if err != nil {
			span.SetTag("error", true)
			span.LogFields(tracingLog.String("error", err.Error()))
		}
	}()

	body, err := s.buildsapiClient.OpenOutputStream(ctx, build.OutputStreamURL)
	if err != nil {
		return Result{State: StateErrored}, api.Wrap(api.KindProtocol, err)
	}

	readerCtx, cancelReader := context.WithCancel(ctx)
	defer cancelReader()

	sess := &session{
		handler:  handler,
		segment:  segment,
		activity: make(chan struct{}, 1),
	}

	drained := make(chan error, 1)
	go func() {
		defer body.Close()
		drained <- sess.read(readerCtx, body)
	}()

	// stop consumes the rest of the session when the poller decides the outcome before the stream ended
	stop := func(readerFinished bool) {
		if readerFinished {
			return
		}
		cancelReader()
		body.Close()
		<-drained
	}

	state, err := s.poll(ctx, app, build.ID, sess.activity, drained, stop)

	result = Result{
		State:      state,
		Transcript: sess.transcript,
		Sections:   sess.segmenter.Sections(),
	}

	if state == StateSucceeded && segment && handler != nil {
		if current, ok := sess.segmenter.Current(); ok {
			handler.SectionCompleted(current)
		}
	}

	log.Debug().Msgf("Streaming build %v ended in state %v after %v lines", build.ID, state, len(result.Transcript))

	return result, err
}

// poll checks the build status until it reaches a terminal outcome; the wait between polls of a pending build
// is cut short by new output, and never stops the output from being read
func (s *service) poll(ctx context.Context, app, id string, activity <-chan struct{}, drained <-chan error, stop func(readerFinished bool)) (State, error) {

	readerFinished := false

	for {
		build, err := s.buildsapiClient.GetBuild(ctx, app, id)
		if err != nil {
			stop(readerFinished)
			return StateErrored, api.Wrap(api.KindRemoteAPI, err)
		}

		switch build.Status {
		case buildsapi.BuildStatusPending:
			// a finished reader has nothing more to signal, stop listening for it
			drainedCh := drained
			if readerFinished {
				drainedCh = nil
			}

			select {
			case <-time.After(s.pollInterval):
			case <-activity:
			case readErr := <-drainedCh:
				readerFinished = true
				if readErr != nil {
					return StateErrored, api.Errorf(api.KindProtocol, "Reading build output failed: %v", readErr)
				}
			case <-ctx.Done():
				stop(readerFinished)
				return StateErrored, ctx.Err()
			}

		case buildsapi.BuildStatusSucceeded:
			if readerFinished {
				return StateSucceeded, nil
			}
			select {
			case readErr := <-drained:
				if readErr != nil {
					return StateErrored, api.Errorf(api.KindProtocol, "Reading build output failed: %v", readErr)
				}
			case <-time.After(s.drainWait):
				log.Warn().Msgf("Output stream of build %v is still open after the build succeeded, no longer waiting for it", id)
				stop(false)
			case <-ctx.Done():
				stop(false)
				return StateErrored, ctx.Err()
			}
			return StateSucceeded, nil

		case buildsapi.BuildStatusFailed:
			// not StateErrored: the build ran and failed, its diagnostics are the error
			stop(readerFinished)
			buildResult, err := s.buildsapiClient.GetBuildResult(ctx, app, id)
			if err != nil {
				return StateErrored, api.Errorf(api.KindProtocol, "Fetching result of failed build %v failed: %v", id, err)
			}
			message := buildResult.Text()
			if message == "" {
				message = "Build " + id + " failed"
			}
			return StateFailed, api.Errorf(api.KindRemoteBuild, "%v", message)

		default:
			stop(readerFinished)
			return StateErrored, api.Errorf(api.KindProtocol, "Build %v has unexpected status %q", id, build.Status)
		}
	}
}

// read consumes the output stream line by line until it ends; it is the only writer of the transcript
func (sess *session) read(ctx context.Context, body io.Reader) error {

	reader := bufio.NewReader(body)

	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			sess.add(strings.TrimRight(text, "\r\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				// the poller stopped us, nothing went wrong with the stream itself
				return nil
			}
			return err
		}
	}
}

func (sess *session) add(text string) {

	line := Line{Text: text, Index: len(sess.transcript)}
	sess.transcript = append(sess.transcript, line)

	previous, hadSection := sess.segmenter.Current()
	state := sess.segmenter.Add(line)

	if sess.handler != nil {
		// without segmentation a marker is output like any other line
		if state == StateSectionBoundary && sess.segment {
			if hadSection {
				sess.handler.SectionCompleted(previous)
			}
			current, _ := sess.segmenter.Current()
			sess.handler.SectionStarted(current.Title)
		} else {
			sess.handler.Line(line)
		}
	}

	// let a waiting poller know there is progress
	select {
	case sess.activity <- struct{}{}:
	default:
	}
}
