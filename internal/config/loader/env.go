package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of environment variables read as settings.
const DefaultEnvPrefix = "GALE_"

// EnvLoader loads configuration from environment variables.
//
// GALE_EDITOR_TAB_SIZE=2 becomes editor.tab_size = 2: the first word after
// the prefix names the section and the rest names the setting.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "GALE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Load reads matching environment variables and returns a configuration map.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		section, key, ok := l.envToPath(name)
		if !ok {
			continue
		}
		sec, _ := config[section].(map[string]any)
		if sec == nil {
			sec = make(map[string]any)
			config[section] = sec
		}
		sec[key] = parseValue(value)
	}

	return config, nil
}

// envToPath converts GALE_EDITOR_TAB_SIZE to ("editor", "tab_size").
func (l *EnvLoader) envToPath(env string) (section, key string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok = strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", "", false
	}
	return section, key, true
}

// parseValue converts booleans and integers; everything else stays a
// string and is interpreted by the setting it lands in.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
