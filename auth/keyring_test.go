package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestCredentials(t *testing.T) {
	Convey("Credentials", t, func() {
		Convey("Every credential has an environment override name", func() {
			for _, c := range Credentials() {
				So(c.Env(), ShouldNotBeEmpty)
				So(c.Env(), ShouldStartWith, "MELODIA_")
			}
		})
	})
}

func TestGetEnvOverride(t *testing.T) {
	keyring.MockInit()

	Convey("Get", t, func() {
		Convey("Prefers the environment variable over the keyring", func() {
			t.Setenv(YouTubeAPIKey.Env(), "from-env")

			value := Get(YouTubeAPIKey)
			So(value.IsPresent(), ShouldBeTrue)
			So(value.MustGet(), ShouldEqual, "from-env")
		})

		Convey("An empty environment value does not count as set", func() {
			t.Setenv(SoundCloudClientID.Env(), "")

			// Falls through to the mocked keyring, which has nothing stored.
			value := Get(SoundCloudClientID)
			So(value.IsPresent(), ShouldBeFalse)
		})
	})
}
