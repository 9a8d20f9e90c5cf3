package environment

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/jsonc"
)

const (
	// FileName is the per-project environment document
	FileName = "app.json"
	// DefaultBranch is the branch pushed from when no environment says otherwise
	DefaultBranch = "master"
)

// Environment is a deploy target declared in app.json
type Environment struct {
	Name    string            `json:"-"`
	App     string            `json:"app,omitempty"`
	Branch  string            `json:"branch,omitempty"`
	Scripts map[string]string `json:"scripts,omitempty"`
}

// AppJSON is the subset of app.json this tool reads
type AppJSON struct {
	Environments map[string]*Environment `json:"environments,omitempty"`
}

// Client resolves deploy targets from app.json
//go:generate mockgen -package=environment -destination ./mock.go -source=client.go
type Client interface {
	Environments() []Environment
	ForBranch(branch string) (Environment, bool)
	ForApp(app string) (Environment, bool)
	ExpectedBranch(app, currentBranch string) string
	ResolveApp(currentBranch, explicitApp string) (string, error)
}

// NewClient reads app.json from root; a missing file means no environments
func NewClient(root string) (Client, error) {

	path := filepath.Join(root, FileName)
	appJSON := AppJSON{}

	data, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("Reading %v failed: %w", path, err)
	}
	if err == nil {
		if err = json.Unmarshal(jsonc.ToJSON(data), &appJSON); err != nil {
			return nil, fmt.Errorf("Parsing %v failed: %w", path, err)
		}
	} else {
		log.Debug().Msgf("%v does not exist, no environments configured", path)
	}

	return newClient(appJSON), nil
}

func newClient(appJSON AppJSON) *client {

	environments := make([]Environment, 0, len(appJSON.Environments))
	for name, e := range appJSON.Environments {
		if e == nil {
			continue
		}
		environment := *e
		environment.Name = name
		environments = append(environments, environment)
	}

	// map iteration order is random, keep lookups deterministic
	sort.Slice(environments, func(i, j int) bool {
		return environments[i].Name < environments[j].Name
	})

	return &client{
		environments: environments,
	}
}

type client struct {
	environments []Environment
}

func (c *client) Environments() []Environment {
	return c.environments
}

func (c *client) ForBranch(branch string) (Environment, bool) {
	for _, e := range c.environments {
		if e.Branch != "" && e.Branch == branch {
			return e, true
		}
	}
	return Environment{}, false
}

func (c *client) ForApp(app string) (Environment, bool) {
	for _, e := range c.environments {
		if e.App != "" && e.App == app {
			return e, true
		}
	}
	return Environment{}, false
}

func (c *client) ExpectedBranch(app, currentBranch string) string {

	// the environment deploying to this app decides which branch it deploys from
	if e, ok := c.ForApp(app); ok && e.Branch != "" {
		return e.Branch
	}

	if e, ok := c.ForBranch(currentBranch); ok {
		return e.Branch
	}

	return DefaultBranch
}

func (c *client) ResolveApp(currentBranch, explicitApp string) (string, error) {

	if explicitApp != "" {
		return explicitApp, nil
	}

	if e, ok := c.ForBranch(currentBranch); ok && e.App != "" {
		log.Debug().Msgf("Using app %v from environment %v for branch %v", e.App, e.Name, currentBranch)
		return e.App, nil
	}

	return "", fmt.Errorf("No app specified; use --app or add an environment for branch %v to %v", currentBranch, FileName)
}
