package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRead(t *testing.T) {

	t.Run("ReturnsDefaultsWhenFileDoesNotExist", func(t *testing.T) {

		// act
		config, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Nil(t, err)
		assert.Equal(t, "https://api.heroku.com", config.APIURL)
		assert.Equal(t, 2*time.Second, config.PollInterval())
		assert.Equal(t, 10, config.MaxHistoryPages)
	})

	t.Run("ReadsValuesFromYaml", func(t *testing.T) {

		path := filepath.Join(t.TempDir(), "config.yaml")
		err := ioutil.WriteFile(path, []byte("apiURL: https://api.example.com\napiToken: abc\npollIntervalSeconds: 5\n"), 0600)
		assert.Nil(t, err)

		// act
		config, err := Read(path)

		assert.Nil(t, err)
		assert.Equal(t, "https://api.example.com", config.APIURL)
		assert.Equal(t, "abc", config.APIToken)
		assert.Equal(t, 5*time.Second, config.PollInterval())
		assert.Equal(t, 10, config.MaxHistoryPages)
	})

	t.Run("ReturnsErrorForMalformedYaml", func(t *testing.T) {

		path := filepath.Join(t.TempDir(), "config.yaml")
		err := ioutil.WriteFile(path, []byte("apiURL: [unterminated"), 0600)
		assert.Nil(t, err)

		// act
		_, err = Read(path)

		assert.NotNil(t, err)
	})
}

func TestOverrideFromEnv(t *testing.T) {

	t.Run("EnvironmentWinsOverFile", func(t *testing.T) {

		config := Config{APIURL: "https://api.example.com", APIToken: "from-file"}
		env := map[string]string{"BUILD_PUSH_API_TOKEN": "from-env"}

		// act
		config.OverrideFromEnv(func(k string) string { return env[k] })

		assert.Equal(t, "https://api.example.com", config.APIURL)
		assert.Equal(t, "from-env", config.APIToken)
	})
}
