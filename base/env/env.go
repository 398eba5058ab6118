package env

import (
	"os"
)

// PodName example: yieldbot-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: prod
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: yieldbot
func AppName() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "yieldbot"
}
