package drop

import "visualizer-service/internal/models"

// slot is a place in the settings bag that holds column names: a list or a
// single name, either at the top level or under a nested map setting.
type slot struct {
	key    string
	sub    string
	scalar bool
}

// container returns the map holding the slot's value, creating the nested
// map when create is set.
func (s slot) container(settings map[string]any, create bool) map[string]any {
	if s.sub == "" {
		return settings
	}
	if m, ok := settings[s.key].(map[string]any); ok {
		return m
	}
	if !create {
		return nil
	}
	m := map[string]any{}
	settings[s.key] = m
	return m
}

func (s slot) field() string {
	if s.sub == "" {
		return s.key
	}
	return s.sub
}

func (s slot) contains(item *models.HistoryItem, name string) bool {
	m := s.container(item.Settings, false)
	if m == nil {
		return false
	}
	if s.scalar {
		v, _ := m[s.field()].(string)
		return v == name
	}
	for _, v := range stringList(m[s.field()]) {
		if v == name {
			return true
		}
	}
	return false
}

func (s slot) add(item *models.HistoryItem, name string) {
	m := s.container(item.Settings, true)
	if !s.scalar {
		m[s.field()] = append(stringList(m[s.field()]), name)
		return
	}
	prev, had := m[s.field()].(string)
	m[s.field()] = name
	if had && prev != "" && prev != name {
		dropIfUnused(item, prev)
	}
}

func (s slot) remove(item *models.HistoryItem, name string) {
	m := s.container(item.Settings, false)
	if m == nil {
		return
	}
	if s.scalar {
		if v, _ := m[s.field()].(string); v == name {
			delete(m, s.field())
		}
		return
	}
	if _, ok := m[s.field()]; ok {
		m[s.field()] = without(stringList(m[s.field()]), name)
	}
}

// stringList reads a list of names stored either as []string or as a
// decoded JSON array.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func without(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

// removeFromSettings strips name from every list, scalar and nested map in settings.
func removeFromSettings(settings map[string]any, name string) {
	for k, v := range settings {
		switch val := v.(type) {
		case string:
			if val == name {
				delete(settings, k)
			}
		case []string, []any:
			if references(val, name) {
				settings[k] = without(stringList(val), name)
			}
		case map[string]any:
			removeFromSettings(val, name)
		}
	}
}

func references(v any, name string) bool {
	switch val := v.(type) {
	case string:
		return val == name
	case []string:
		for _, s := range val {
			if s == name {
				return true
			}
		}
	case []any:
		for _, e := range val {
			if references(e, name) {
				return true
			}
		}
	case map[string]any:
		for _, e := range val {
			if references(e, name) {
				return true
			}
		}
	}
	return false
}

// dropIfUnused removes a non-artificial column that no setting refers to.
func dropIfUnused(item *models.HistoryItem, name string) {
	for _, c := range item.Columns {
		if c.Name == name && c.Source == "artificial" {
			return
		}
	}
	for _, v := range item.Settings {
		if references(v, name) {
			return
		}
	}
	item.RemoveColumn(name)
}
