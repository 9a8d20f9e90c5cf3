package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// Unavailable is returned by HeadSha when the working tree is dirty
	Unavailable = ""
	// DirtyDescription is returned by Description when the working tree is dirty
	DirtyDescription = "dirty"
)

// ErrNotARepository is returned when the root has no .git metadata
var ErrNotARepository = errors.New("not a git repository")

var (
	noUpstreamRegex = regexp.MustCompile(`no upstream configured for branch '([^']+)'`)
	commitIDRegex   = regexp.MustCompile(`^[0-9a-fA-F]{4,64}$`)
)

// ToolError is returned when git exits with an unexpected status
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Message  string
}

func (e *ToolError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("git %v failed with exit code %v: %v", strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}

// RepositoryState is a snapshot of the local repository
type RepositoryState struct {
	Dirty       bool
	Branch      string
	HeadSha     string
	Description string
}

// Client answers questions about the local git repository
//go:generate mockgen -package=git -destination ./mock.go -source=client.go
type Client interface {
	Dir() string
	HasRepository() bool
	Dirty(ctx context.Context) (bool, error)
	Branch(ctx context.Context) (string, error)
	HeadSha(ctx context.Context) (string, error)
	Description(ctx context.Context) (string, error)
	IsIgnored(ctx context.Context, path string) (bool, error)
	IgnoredPaths(ctx context.Context) (map[string]bool, error)
	Fetch(ctx context.Context) error
	CommitsBehind(ctx context.Context) (int, error)
	CommitsAhead(ctx context.Context) (int, error)
	IsAncestor(ctx context.Context, sha string) (bool, error)
	State(ctx context.Context) (RepositoryState, error)
}

// NewClient returns a new Client for the repository rooted at dir
func NewClient(dir string) Client {
	return &client{
		dir: dir,
	}
}

type client struct {
	dir string
}

func (c *client) Dir() string {
	return c.dir
}

func (c *client) HasRepository() bool {
	_, err := os.Stat(filepath.Join(c.dir, ".git"))
	return err == nil
}

func (c *client) Dirty(ctx context.Context) (bool, error) {
	status, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return status != "", nil
}

func (c *client) Branch(ctx context.Context) (string, error) {
	return c.run(ctx, "symbolic-ref", "--short", "HEAD")
}

func (c *client) HeadSha(ctx context.Context) (string, error) {

	dirty, err := c.Dirty(ctx)
	if err != nil {
		return Unavailable, err
	}
	if dirty {
		return Unavailable, nil
	}

	return c.run(ctx, "rev-parse", "HEAD")
}

func (c *client) Description(ctx context.Context) (string, error) {

	dirty, err := c.Dirty(ctx)
	if err != nil {
		return "", err
	}
	if dirty {
		return DirtyDescription, nil
	}

	return c.run(ctx, "log", "-1", "--format=%an: %s")
}

func (c *client) IsIgnored(ctx context.Context, path string) (bool, error) {

	args := []string{"check-ignore", "-q", "--", path}
	exitCode, _, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return false, err
	}

	switch exitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	}

	return false, &ToolError{Args: args, ExitCode: exitCode, Stderr: stderr}
}

// IgnoredPaths lists the untracked paths matched by ignore rules in one git call, relative to the root in slash
// form; directories that are ignored as a whole carry a trailing slash and their contents are not listed
func (c *client) IgnoredPaths(ctx context.Context) (map[string]bool, error) {

	output, err := c.runRaw(ctx, "ls-files", "-z", "--others", "--ignored", "--exclude-standard", "--directory")
	if err != nil {
		return nil, err
	}

	paths := map[string]bool{}
	for _, p := range strings.Split(output, "\x00") {
		if p != "" {
			paths[p] = true
		}
	}

	return paths, nil
}

func (c *client) Fetch(ctx context.Context) error {
	_, err := c.run(ctx, "fetch")
	return err
}

func (c *client) CommitsBehind(ctx context.Context) (int, error) {
	return c.count(ctx, "HEAD..@{upstream}")
}

func (c *client) CommitsAhead(ctx context.Context) (int, error) {
	return c.count(ctx, "@{upstream}..HEAD")
}

func (c *client) IsAncestor(ctx context.Context, sha string) (bool, error) {

	// the sha comes from the remote; anything that isn't a commit id would be read as an option or a revision expression
	if !commitIDRegex.MatchString(sha) {
		return false, nil
	}

	// a commit that is not in the local object database can't be part of local history
	exitCode, _, _, err := c.exec(ctx, "cat-file", "-e", sha+"^{commit}")
	if err != nil {
		return false, err
	}
	if exitCode != 0 {
		return false, nil
	}

	args := []string{"merge-base", "--is-ancestor", sha, "HEAD"}
	exitCode, _, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return false, err
	}

	switch exitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	}

	return false, &ToolError{Args: args, ExitCode: exitCode, Stderr: stderr}
}

func (c *client) State(ctx context.Context) (state RepositoryState, err error) {

	state.Dirty, err = c.Dirty(ctx)
	if err != nil {
		return
	}

	state.Branch, err = c.Branch(ctx)
	if err != nil {
		return
	}

	if state.Dirty {
		state.HeadSha = Unavailable
		state.Description = DirtyDescription
		return
	}

	state.HeadSha, err = c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return
	}

	state.Description, err = c.run(ctx, "log", "-1", "--format=%an: %s")

	return
}

func (c *client) count(ctx context.Context, revisionRange string) (int, error) {

	output, err := c.run(ctx, "rev-list", "--count", revisionRange)
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("Parsing commit count %q failed: %w", output, err)
	}

	return count, nil
}

// run executes git and returns trimmed stdout, turning any non-zero exit into an error
func (c *client) run(ctx context.Context, args ...string) (string, error) {

	stdout, err := c.runRaw(ctx, args...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(stdout), nil
}

func (c *client) runRaw(ctx context.Context, args ...string) (string, error) {

	exitCode, stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", err
	}

	if exitCode != 0 {
		return "", translate(&ToolError{Args: args, ExitCode: exitCode, Stderr: stderr})
	}

	return stdout, nil
}

// exec executes git and reports its exit code; err is only set when git could not be run at all
func (c *client) exec(ctx context.Context, args ...string) (exitCode int, stdout, stderr string, err error) {

	if !c.HasRepository() {
		return -1, "", "", ErrNotARepository
	}

	var stdoutBuffer, stderrBuffer bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Dir = c.dir
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	runErr := command.Run()

	stdout = stdoutBuffer.String()
	stderr = strings.TrimSpace(stderrBuffer.String())

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return -1, stdout, stderr, fmt.Errorf("Running git %v failed: %w", strings.Join(args, " "), runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	log.Debug().Msgf("git %v = code: %v stdout: %v", strings.Join(args, " "), exitCode, strings.TrimSpace(stdout))

	return exitCode, stdout, stderr, nil
}

func translate(err *ToolError) error {

	matches := noUpstreamRegex.FindStringSubmatch(err.Stderr)
	if len(matches) == 2 {
		branch := matches[1]
		err.Message = fmt.Sprintf("Branch %v has no upstream branch configured. Set it with:\n  git branch --set-upstream-to=origin/%v %v", branch, branch, branch)
	}

	return err
}
