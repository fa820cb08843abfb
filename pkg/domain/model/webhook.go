package model

import "strings"

// MaskWebhookURL hides the secret parts of a webhook URL for logging.
// Incoming webhook URLs carry their token in the path, e.g.
// https://chat.example.com/hooks/<id>/<token>.
func MaskWebhookURL(url string) string {
	parts := strings.Split(url, "/")
	for i, p := range parts {
		if p != "hooks" && p != "services" {
			continue
		}
		for j := i + 1; j < len(parts); j++ {
			if len(parts[j]) > 4 {
				parts[j] = parts[j][:2] + "***"
			}
		}
		return strings.Join(parts, "/")
	}

	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
