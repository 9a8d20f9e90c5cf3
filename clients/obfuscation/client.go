package obfuscation

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

const maxLengthToSkipObfuscation = 3

// Client hides the api token and signed url credentials from anything shown to the user
type Client interface {
	CollectSecrets(values ...string)
	CollectSignedURL(rawURL string)
	Obfuscate(input string) string
}

// NewClient returns a new Client
func NewClient() Client {
	return &client{
		secrets:  map[string]struct{}{},
		replacer: strings.NewReplacer(),
	}
}

type client struct {
	mutex    sync.RWMutex
	secrets  map[string]struct{}
	replacer *strings.Replacer
}

func (ob *client) CollectSecrets(values ...string) {

	ob.mutex.Lock()
	defer ob.mutex.Unlock()

	for _, v := range values {
		for _, l := range strings.Split(v, "\n") {
			if len(l) > maxLengthToSkipObfuscation {
				ob.secrets[l] = struct{}{}
			}
		}
	}

	ob.replacer = strings.NewReplacer(ob.getReplacerStrings()...)
}

// CollectSignedURL treats every query parameter value of a pre-signed url as a secret
func (ob *client) CollectSignedURL(rawURL string) {

	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return
	}

	values := []string{u.RawQuery}
	for _, vs := range u.Query() {
		values = append(values, vs...)
	}

	ob.CollectSecrets(values...)
}

func (ob *client) getReplacerStrings() (replacerStrings []string) {

	secrets := make([]string, 0, len(ob.secrets))
	for s := range ob.secrets {
		secrets = append(secrets, s)
	}

	// longest first so a secret containing another one is replaced as a whole
	sort.Slice(secrets, func(i, j int) bool {
		return len(secrets[i]) > len(secrets[j])
	})

	replacerStrings = []string{}
	for _, s := range secrets {
		replacerStrings = append(replacerStrings, s, "***")
	}

	return replacerStrings
}

func (ob *client) Obfuscate(input string) string {

	ob.mutex.RLock()
	defer ob.mutex.RUnlock()

	return ob.replacer.Replace(input)
}
