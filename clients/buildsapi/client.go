package buildsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
)

const (
	acceptHeader       = "application/vnd.heroku+json; version=3"
	historyPageSize    = 100
	defaultMaxPages    = 10
	apiTimeout         = 60 * time.Second
	readRetries        = 3
	nonIdempotentTries = 1
)

// Client talks to the build platform's REST api and its upload and output stream urls
//go:generate mockgen -package=buildsapi -destination ./mock.go -source=client.go
type Client interface {
	CreateSource(ctx context.Context, app string) (UploadTarget, error)
	Upload(ctx context.Context, target UploadTarget, body io.Reader, size int64) error
	CreateBuild(ctx context.Context, app string, request BuildRequest) (Build, error)
	GetBuild(ctx context.Context, app, id string) (Build, error)
	GetBuildResult(ctx context.Context, app, id string) (BuildResult, error)
	OpenOutputStream(ctx context.Context, outputStreamURL string) (io.ReadCloser, error)
	ListBuilds(ctx context.Context, app string, options ListOptions) (BuildPage, error)
	LastSuccessfulBuild(ctx context.Context, app string) (*Build, error)
}

// NewClient returns a new Client for the api at apiURL
func NewClient(apiURL, token string, maxHistoryPages int) Client {

	if maxHistoryPages <= 0 {
		maxHistoryPages = defaultMaxPages
	}

	return &client{
		apiURL:          strings.TrimRight(apiURL, "/"),
		token:           token,
		maxHistoryPages: maxHistoryPages,
		// uploads and output streams go through a plain client: pester buffers request bodies for retries and times out long reads
		streamClient: &http.Client{Transport: &nethttp.Transport{}},
	}
}

type client struct {
	apiURL          string
	token           string
	maxHistoryPages int
	streamClient    *http.Client
}

func (c *client) CreateSource(ctx context.Context, app string) (target UploadTarget, err error) {

	var source Source
	_, err = c.doJSON(ctx, "CreateSource", http.MethodPost, fmt.Sprintf("/apps/%v/sources", url.PathEscape(app)), nil, nil, &source)
	if err != nil {
		return
	}

	return source.SourceBlob, nil
}

func (c *client) Upload(ctx context.Context, target UploadTarget, body io.Reader, size int64) (err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, "Upload")
	defer span.Finish()
	span.SetTag("size", size)

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, target.PutURL, body)
	if err != nil {
		return err
	}
	request.ContentLength = size

	request, ht := nethttp.TraceRequest(span.Tracer(), request)
	defer ht.Finish()

	log.Debug().Int64("size", size).Msg("Uploading source archive")

	response, err := c.streamClient.Do(request)
	if err != nil {
		c.tagError(span, err)
		return fmt.Errorf("Uploading source failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		responseBody, _ := ioutil.ReadAll(io.LimitReader(response.Body, 4096))
		err = fmt.Errorf("Uploading source failed with status %v: %v", response.StatusCode, strings.TrimSpace(string(responseBody)))
		c.tagError(span, err)
		return err
	}

	return nil
}

func (c *client) CreateBuild(ctx context.Context, app string, request BuildRequest) (build Build, err error) {
	_, err = c.doJSON(ctx, "CreateBuild", http.MethodPost, fmt.Sprintf("/apps/%v/builds", url.PathEscape(app)), nil, request, &build)
	return
}

func (c *client) GetBuild(ctx context.Context, app, id string) (build Build, err error) {
	_, err = c.doJSON(ctx, "GetBuild", http.MethodGet, fmt.Sprintf("/apps/%v/builds/%v", url.PathEscape(app), url.PathEscape(id)), nil, nil, &build)
	return
}

func (c *client) GetBuildResult(ctx context.Context, app, id string) (result BuildResult, err error) {
	_, err = c.doJSON(ctx, "GetBuildResult", http.MethodGet, fmt.Sprintf("/apps/%v/builds/%v/result", url.PathEscape(app), url.PathEscape(id)), nil, nil, &result)
	return
}

func (c *client) OpenOutputStream(ctx context.Context, outputStreamURL string) (io.ReadCloser, error) {

	if outputStreamURL == "" {
		return nil, fmt.Errorf("Build has no output stream url")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, outputStreamURL, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.streamClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("Opening build output stream failed: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		response.Body.Close()
		return nil, fmt.Errorf("Opening build output stream failed with status %v", response.StatusCode)
	}

	return response.Body, nil
}

func (c *client) ListBuilds(ctx context.Context, app string, options ListOptions) (page BuildPage, err error) {

	rangeHeader := options.Range
	if rangeHeader == "" {
		max := options.Max
		if max <= 0 {
			max = historyPageSize
		}
		rangeHeader = fmt.Sprintf("started_at ..; order=desc, max=%v", max)
	}

	responseHeaders, err := c.doJSON(ctx, "ListBuilds", http.MethodGet, fmt.Sprintf("/apps/%v/builds", url.PathEscape(app)), map[string]string{"Range": rangeHeader}, nil, &page.Builds)
	if err != nil {
		return
	}

	page.NextRange = responseHeaders.Get("Next-Range")

	return page, nil
}

func (c *client) LastSuccessfulBuild(ctx context.Context, app string) (*Build, error) {

	options := ListOptions{Max: historyPageSize}

	// page through history newest first, bounded so a pathological history can't keep us here forever
	for page := 0; page < c.maxHistoryPages; page++ {
		builds, err := c.ListBuilds(ctx, app, options)
		if err != nil {
			return nil, err
		}

		for i := range builds.Builds {
			if builds.Builds[i].Status == BuildStatusSucceeded {
				return &builds.Builds[i], nil
			}
		}

		if builds.NextRange == "" {
			return nil, nil
		}
		options = ListOptions{Range: builds.NextRange}
	}

	log.Debug().Msgf("No successful build found for %v in %v pages of history", app, c.maxHistoryPages)

	return nil, nil
}

func (c *client) doJSON(ctx context.Context, operationName, method, path string, headers map[string]string, in, out interface{}) (responseHeaders http.Header, err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, operationName)
	defer span.Finish()

	var requestBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		requestBody = bytes.NewReader(data)
	}

	// create client, in order to add headers
	pesterClient := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	pesterClient.MaxRetries = nonIdempotentTries
	if method == http.MethodGet {
		pesterClient.MaxRetries = readRetries
	}
	pesterClient.Backoff = pester.ExponentialJitterBackoff
	pesterClient.KeepLog = true
	pesterClient.Timeout = apiTimeout

	request, err := http.NewRequest(method, c.apiURL+path, requestBody)
	if err != nil {
		return nil, err
	}

	// add tracing context
	request = request.WithContext(opentracing.ContextWithSpan(ctx, span))

	// collect additional information on setting up connections
	request, ht := nethttp.TraceRequest(span.Tracer(), request)

	// add headers
	request.Header.Add("Accept", acceptHeader)
	request.Header.Add("Request-Id", uuid.New().String())
	if c.token != "" {
		request.Header.Add("Authorization", fmt.Sprintf("Bearer %v", c.token))
	}
	if requestBody != nil {
		request.Header.Add("Content-Type", "application/json")
	}
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	// perform actual request
	response, err := pesterClient.Do(request)
	if err != nil {
		c.tagError(span, err)
		log.Debug().Err(err).Str("pesterLogs", pesterClient.LogString()).Msgf("%v %v failed", method, path)
		return nil, fmt.Errorf("%v %v failed: %w", method, path, err)
	}
	defer response.Body.Close()
	ht.Finish()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("Reading response of %v %v failed: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		err = responseError(method, path, response.StatusCode, body)
		c.tagError(span, err)
		return nil, err
	}

	if out != nil && len(body) > 0 {
		if err = json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("Unmarshalling response of %v %v failed: %w", method, path, err)
		}
	}

	log.Debug().Str("pesterLogs", pesterClient.LogString()).Msgf("%v %v returned %v", method, path, response.StatusCode)

	return response.Header, nil
}

func (c *client) tagError(span opentracing.Span, err error) {
	span.SetTag("error", true)
	span.LogFields(
		tracingLog.String("error", err.Error()),
	)
}

func responseError(method, path string, statusCode int, body []byte) error {

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%v (%v %v returned %v)", apiErr.Message, method, path, statusCode)
	}

	return fmt.Errorf("%v %v returned %v: %v", method, path, statusCode, strings.TrimSpace(string(body)))
}
