package environment

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const appJSONWithComments = `{
  // deploy targets per branch
  "environments": {
    "production": {"app": "myapp", "branch": "main", "scripts": {"postdeploy": "make migrate"}},
    "staging": {"app": "myapp-staging", "branch": "develop",},
  },
}`

func TestNewClient(t *testing.T) {

	t.Run("ReturnsNoEnvironmentsWhenFileIsMissing", func(t *testing.T) {

		// act
		client, err := NewClient(t.TempDir())

		assert.Nil(t, err)
		assert.Equal(t, 0, len(client.Environments()))
	})

	t.Run("ParsesAppJSONWithCommentsAndTrailingCommas", func(t *testing.T) {

		root := t.TempDir()
		err := ioutil.WriteFile(filepath.Join(root, "app.json"), []byte(appJSONWithComments), 0644)
		assert.Nil(t, err)

		// act
		client, err := NewClient(root)

		assert.Nil(t, err)
		environments := client.Environments()
		if assert.Equal(t, 2, len(environments)) {
			assert.Equal(t, "production", environments[0].Name)
			assert.Equal(t, "make migrate", environments[0].Scripts["postdeploy"])
			assert.Equal(t, "staging", environments[1].Name)
		}
	})

	t.Run("ReturnsErrorForMalformedFile", func(t *testing.T) {

		root := t.TempDir()
		err := ioutil.WriteFile(filepath.Join(root, "app.json"), []byte(`{"environments": [`), 0644)
		assert.Nil(t, err)

		// act
		_, err = NewClient(root)

		assert.NotNil(t, err)
	})
}

func TestExpectedBranch(t *testing.T) {

	client := newClient(AppJSON{
		Environments: map[string]*Environment{
			"production": {App: "myapp", Branch: "main"},
			"staging":    {App: "myapp-staging", Branch: "develop"},
		},
	})

	t.Run("ReturnsBranchOfEnvironmentForApp", func(t *testing.T) {

		// act
		branch := client.ExpectedBranch("myapp", "feature")

		assert.Equal(t, "main", branch)
	})

	t.Run("PrefersEnvironmentForAppOverEnvironmentForCurrentBranch", func(t *testing.T) {

		// act
		branch := client.ExpectedBranch("myapp", "develop")

		assert.Equal(t, "main", branch)
	})

	t.Run("ReturnsCurrentBranchWhenAnEnvironmentDeploysFromIt", func(t *testing.T) {

		// act
		branch := client.ExpectedBranch("other-app", "develop")

		assert.Equal(t, "develop", branch)
	})

	t.Run("DefaultsToMaster", func(t *testing.T) {

		// act
		branch := client.ExpectedBranch("other-app", "feature")

		assert.Equal(t, "master", branch)
	})
}

func TestResolveApp(t *testing.T) {

	client := newClient(AppJSON{
		Environments: map[string]*Environment{
			"staging": {App: "myapp-staging", Branch: "develop"},
		},
	})

	t.Run("PrefersExplicitApp", func(t *testing.T) {

		// act
		app, err := client.ResolveApp("develop", "explicit")

		assert.Nil(t, err)
		assert.Equal(t, "explicit", app)
	})

	t.Run("FallsBackToEnvironmentMatchingBranch", func(t *testing.T) {

		// act
		app, err := client.ResolveApp("develop", "")

		assert.Nil(t, err)
		assert.Equal(t, "myapp-staging", app)
	})

	t.Run("ReturnsErrorWhenNothingMatches", func(t *testing.T) {

		// act
		_, err := client.ResolveApp("feature", "")

		assert.NotNil(t, err)
	})
}
