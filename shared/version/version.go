package version

import "fmt"

const Name = "push-relay"

// Version is overridden at build time with -ldflags "-X github.com/coolify-notifications/push-relay/shared/version.Version=..."
var Version = "0.3.0"

// Tag returns the release tag matching the running version.
func Tag() string {
	return "v" + Version
}

// UserAgent is sent with every outbound request.
func UserAgent() string {
	return fmt.Sprintf("%s %s", Name, Tag())
}
