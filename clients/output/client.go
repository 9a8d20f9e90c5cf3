package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/estafette/estafette-build-push/clients/buildsapi"
	"github.com/estafette/estafette-build-push/services/stream"
	"github.com/logrusorgru/aurora"
	"github.com/olekukonko/tablewriter"
)

// Mode decides how much progress is shown
type Mode int

const (
	// ModeDefault shows stages and the sections of the build output
	ModeDefault Mode = iota
	// ModeVerbose shows stages and every line of build output
	ModeVerbose
	// ModeSilent shows nothing but the final status
	ModeSilent
)

// ModeFromFlags maps the --verbose and --silent flags to a mode
func ModeFromFlags(verbose, silent bool) Mode {
	switch {
	case silent:
		return ModeSilent
	case verbose:
		return ModeVerbose
	}
	return ModeDefault
}

// Client renders push progress and build listings for a terminal
type Client interface {
	Pushing(root, app string)
	StageStarted(title string)
	StageSkipped(title, reason string)
	StageSucceeded(title string)
	StageFailed(title string, err error)
	Line(line stream.Line)
	SectionStarted(title string)
	SectionCompleted(section stream.Section)
	Status(line string)
	BuildsTable(builds []buildsapi.Build)
	BuildsJSON(builds []buildsapi.Build) error
}

// NewClient returns a new Client writing to w; colors can be turned off for pipes and NO_COLOR
func NewClient(w io.Writer, mode Mode, colors bool) Client {
	return &client{
		w:     w,
		mode:  mode,
		color: aurora.NewAurora(colors),
	}
}

type client struct {
	w     io.Writer
	mode  Mode
	color aurora.Aurora
	mutex sync.Mutex
}

func (c *client) Pushing(root, app string) {
	c.progress("Pushing %v to %v...\n", c.color.Blue(root), c.color.Magenta(app))
}

func (c *client) StageStarted(title string) {
	c.progress("%v %v\n", c.color.Cyan("»"), title)
}

func (c *client) StageSkipped(title, reason string) {
	c.progress("%v %v %v\n", c.color.Yellow("↓"), title, c.color.Yellow(fmt.Sprintf("[skipped: %v]", reason)))
}

func (c *client) StageSucceeded(title string) {
	c.progress("%v %v\n", c.color.Green("✔"), title)
}

func (c *client) StageFailed(title string, err error) {
	c.progress("%v %v\n", c.color.Red("✖"), title)
}

func (c *client) Line(line stream.Line) {
	if c.mode != ModeVerbose {
		return
	}
	c.printf("%v\n", line.Text)
}

func (c *client) SectionStarted(title string) {
	if c.mode != ModeDefault {
		return
	}
	c.printf("  %v %v\n", c.color.Cyan("→"), title)
}

func (c *client) SectionCompleted(section stream.Section) {
	// output before the first marker has no title to complete
	if c.mode != ModeDefault || section.Title == "" {
		return
	}
	c.printf("  %v %v\n", c.color.Green("✔"), section.Title)
}

func (c *client) Status(line string) {
	if line == "" {
		return
	}
	c.printf("%v\n", c.color.Bold(line))
}

func (c *client) BuildsTable(builds []buildsapi.Build) {

	data := make([][]string, 0, len(builds))
	for _, b := range builds {
		data = append(data, []string{
			b.CreatedAt.Local().Format(time.RFC3339),
			b.User.Email,
			string(b.Status),
			b.SourceBlob.Version,
			b.SourceBlob.VersionDescription,
		})
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	table := tablewriter.NewWriter(c.w)
	table.SetHeader([]string{"Date", "User", "Status", "Version", "Description"})
	table.SetBorder(false)
	table.AppendBulk(data)
	table.Render()
}

func (c *client) BuildsJSON(builds []buildsapi.Build) error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	encoder := json.NewEncoder(c.w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(builds)
}

// progress prints unless silenced
func (c *client) progress(format string, a ...interface{}) {
	if c.mode == ModeSilent {
		return
	}
	c.printf(format, a...)
}

func (c *client) printf(format string, a ...interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	fmt.Fprintf(c.w, format, a...)
}
