package buildsapi

import (
	"strings"
	"time"
)

// BuildStatus is the remote build's state; only the platform moves it
type BuildStatus string

const (
	BuildStatusPending   BuildStatus = "pending"
	BuildStatusSucceeded BuildStatus = "succeeded"
	BuildStatusFailed    BuildStatus = "failed"
)

// UploadTarget holds the platform-issued locations for writing and later reading the archive
type UploadTarget struct {
	GetURL string `json:"get_url"`
	PutURL string `json:"put_url"`
}

// Source is the response of the source allocation endpoint
type Source struct {
	SourceBlob UploadTarget `json:"source_blob"`
}

// SourceBlob describes the archive a build is created from
type SourceBlob struct {
	Checksum           string `json:"checksum,omitempty"`
	URL                string `json:"url,omitempty"`
	Version            string `json:"version,omitempty"`
	VersionDescription string `json:"version_description,omitempty"`
}

// BuildRequest is the body for creating a build
type BuildRequest struct {
	SourceBlob SourceBlob `json:"source_blob"`
}

// User is the account that triggered a build
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// Build is the platform's record of one triggered build
type Build struct {
	ID              string      `json:"id"`
	Status          BuildStatus `json:"status"`
	OutputStreamURL string      `json:"output_stream_url,omitempty"`
	SourceBlob      SourceBlob  `json:"source_blob"`
	User            User        `json:"user"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ResultLine is one diagnostic line of a finished build
type ResultLine struct {
	Line   string `json:"line"`
	Stream string `json:"stream,omitempty"`
}

// BuildResult holds a finished build's diagnostics
type BuildResult struct {
	ExitCode int          `json:"exit_code"`
	Lines    []ResultLine `json:"lines"`
}

// Text concatenates the diagnostic lines in order
func (r BuildResult) Text() string {

	var sb strings.Builder
	for _, l := range r.Lines {
		sb.WriteString(l.Line)
		if !strings.HasSuffix(l.Line, "\n") {
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ListOptions controls paging through build history
type ListOptions struct {
	// Range is sent verbatim as the Range header, usually a previous page's NextRange
	Range string
	// Max is the page size used when Range is empty
	Max int
}

// BuildPage is one page of build history
type BuildPage struct {
	Builds    []Build
	NextRange string
}

// apiError is the platform's error body
type apiError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
