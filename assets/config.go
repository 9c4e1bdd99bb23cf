package assets

const (
	DefaultConfig = `
    server:
      port: 3000
      webhookPath: /webhook
      metricsPath: /metrics
      maxBodyBytes: 1048576

    expo:
      url: https://exp.host/--/api/v2/push/send
      bodyFallback: Coolify event received

    noActionPolicy: suppress
    timeoutSeconds: 10

    log:
      level: info
      format: text

    updates:
      enabled: true
      url: https://api.github.com/repos/jacxk/coolify-expo-notification-relay/releases/latest
      schedule: "@every 24h"

    coolify:
      apiEndpoint: api/v1/deployments
      pollSeconds: 10
`
)
