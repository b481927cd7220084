package util

import (
	"os"
	"strings"
)

const environmentPrefix = "SUBWAY_"

// GetEnvironmentVariables returns the SUBWAY_ prefixed part of the environment
// keyed by the full variable name.
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		name, value, found := strings.Cut(variable, "=")
		if !found || !strings.HasPrefix(name, environmentPrefix) {
			continue
		}

		environmentVariables[name] = value
	}

	return environmentVariables
}
