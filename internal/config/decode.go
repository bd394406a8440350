package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// sectionAliases maps section names from the editor's older YAML layout.
var sectionAliases = map[string]string{
	"editor_behaviour":  "editor",
	"cursor_behaviour":  "cursor",
	"display_behaviour": "display",
	"display_colour":    "colors",
	"display_color":     "colors",
	"colours":           "colors",
}

// keyAliases maps setting names from the older YAML layout, by section.
var keyAliases = map[string]string{
	"editor.editor_forget_time":   "editor.message_timeout",
	"editor.forget_time":          "editor.message_timeout",
	"display.statusbar_config":    "display.status_bar",
	"display.statusbar":           "display.status_bar",
	"display.line_number_width":   "display.line_number_min_width",
	"cursor.scroll_keys_lines":    "cursor.scroll_lines",
	"cursor.scroll_lines_per_key": "cursor.scroll_lines",
}

// normalizeKey turns "Tab Size" and "tab-size" into "tab_size".
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}

// canonicalPath resolves a section and key to the dotted setting path.
func canonicalPath(section, key string) string {
	section = normalizeKey(section)
	if alias, ok := sectionAliases[section]; ok {
		section = alias
	}
	key = normalizeKey(key)
	if section == "colors" {
		key = strings.TrimSuffix(strings.TrimSuffix(key, "_colour"), "_color")
	}
	path := section + "." + key
	if alias, ok := keyAliases[path]; ok {
		return alias
	}
	return path
}

// decode applies a merged configuration map onto base. Settings it does
// not recognise are returned in unknown, sorted.
func decode(base Settings, m map[string]any) (s Settings, unknown []string, err error) {
	s = base
	for section, raw := range m {
		values, ok := raw.(map[string]any)
		if !ok {
			return base, nil, &TypeError{Path: normalizeKey(section), Expected: "table", Actual: typeName(raw)}
		}
		for key, v := range values {
			path := canonicalPath(section, key)
			known, err := s.set(path, v)
			if err != nil {
				return base, nil, err
			}
			if !known {
				unknown = append(unknown, path)
			}
		}
	}
	sort.Strings(unknown)
	return s, unknown, nil
}

// set assigns one setting. It reports false for unrecognised paths.
func (s *Settings) set(path string, v any) (bool, error) {
	var err error
	switch path {
	case "editor.tab_size":
		s.Editor.TabSize, err = toInt(path, v)
	case "editor.undo_window":
		s.Editor.UndoWindow, err = toDuration(path, v)
	case "editor.undo_capacity":
		s.Editor.UndoCapacity, err = toInt(path, v)
	case "editor.message_timeout":
		s.Editor.MessageTimeout, err = toDuration(path, v)
	case "editor.quit_confirmations":
		s.Editor.QuitConfirmations, err = toInt(path, v)
	case "cursor.scroll_lines":
		s.Cursor.ScrollLines, err = toInt(path, v)
	case "display.line_numbers":
		err = s.Display.setLineNumbers(path, v)
	case "display.line_number_min_width":
		s.Display.LineNumberMinWidth, err = toInt(path, v)
	case "display.status_bar":
		s.Display.StatusBar, err = toString(path, v)
	case "colors.text":
		s.Colors.Text, err = toString(path, v)
	case "colors.cursor":
		s.Colors.Cursor, err = toString(path, v)
	case "colors.line_number":
		s.Colors.LineNumber, err = toString(path, v)
	case "colors.empty_line_number":
		s.Colors.EmptyLineNumber, err = toString(path, v)
	case "colors.status_bar":
		s.Colors.StatusBar, err = toString(path, v)
	case "colors.prompt":
		s.Colors.Prompt, err = toString(path, v)
	case "colors.match":
		s.Colors.Match, err = toString(path, v)
	default:
		return false, nil
	}
	return true, err
}

// setLineNumbers accepts a mode name, "off", or a boolean.
func (d *DisplayConfig) setLineNumbers(path string, v any) error {
	switch val := v.(type) {
	case bool:
		d.ShowLineNumbers = val
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "off", "none", "false":
			d.ShowLineNumbers = false
		default:
			d.ShowLineNumbers = true
			d.LineNumbers = val
		}
		return nil
	default:
		return &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
}

func toInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val == math.Trunc(val) {
			return int(val), nil
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i, nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

func toString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// toDuration accepts Go duration strings ("500ms") or a number of seconds.
func toDuration(path string, v any) (time.Duration, error) {
	seconds := func(f float64) time.Duration {
		return time.Duration(f * float64(time.Second))
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case int:
		return seconds(float64(val)), nil
	case int64:
		return seconds(float64(val)), nil
	case uint64:
		return seconds(float64(val)), nil
	case float64:
		return seconds(val), nil
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return d, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return seconds(f), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("%s %v", typeName(v), v)}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
