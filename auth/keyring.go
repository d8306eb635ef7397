// Package auth provides a high-level API for persisting and retrieving provider credentials.
//
// Credentials live in the system keyring. Environment variables take
// precedence so that scripted and containerized runs work without a keyring.
package auth

import (
	"os"

	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const service = "melodia-cli"

// Credential identifies a remote provider secret.
type Credential string

const (
	YouTubeAPIKey      Credential = "youtube-api-key"
	SoundCloudClientID Credential = "soundcloud-client-id"
)

// envNames maps each credential to its environment variable override.
var envNames = map[Credential]string{
	YouTubeAPIKey:      "MELODIA_YOUTUBE_API_KEY",
	SoundCloudClientID: "MELODIA_SOUNDCLOUD_CLIENT_ID",
}

// Credentials returns all known credential identifiers.
func Credentials() []Credential {
	return []Credential{YouTubeAPIKey, SoundCloudClientID}
}

// Env returns the environment variable name bound to the credential.
func (c Credential) Env() string {
	return envNames[c]
}

// Set persists the credential value to the system keyring.
func Set(c Credential, value string) error {
	return keyring.Set(service, string(c), value)
}

// Get retrieves the credential, preferring the environment override.
// A missing credential is not an error.
func Get(c Credential) mo.Option[string] {
	if v, ok := os.LookupEnv(c.Env()); ok && v != "" {
		return mo.Some(v)
	}

	v, err := keyring.Get(service, string(c))
	if err != nil || v == "" {
		return mo.None[string]()
	}
	return mo.Some(v)
}

// Delete removes the credential from the system keyring.
func Delete(c Credential) error {
	return keyring.Delete(service, string(c))
}
