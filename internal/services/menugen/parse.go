package menugen

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParseSuggestions extracts suggestions from raw model output. It accepts a
// bare JSON array, an object with a "suggestions" array, and either of those
// wrapped in a markdown code fence or surrounded by prose.
func ParseSuggestions(raw string, max int) ([]*Suggestion, error) {
	body := extractJSON(raw)
	if body == "" || !gjson.Valid(body) {
		return nil, ErrMalformedOutput
	}

	list := gjson.Parse(body)
	if list.IsObject() {
		list = list.Get("suggestions")
	}
	if !list.IsArray() {
		return nil, ErrMalformedOutput
	}

	var out []*Suggestion
	list.ForEach(func(_, item gjson.Result) bool {
		if max > 0 && len(out) >= max {
			return false
		}
		if !item.IsObject() {
			return true
		}

		s := &Suggestion{
			Name:         strings.TrimSpace(item.Get("name").String()),
			Location:     strings.TrimSpace(item.Get("location").String()),
			AveragePrice: item.Get("averagePrice").Float(),
		}
		for _, tag := range item.Get("tags").Array() {
			if t := strings.TrimSpace(tag.String()); t != "" {
				s.Tags = append(s.Tags, t)
			}
		}
		if s.Name == "" {
			return true
		}

		out = append(out, s)
		return true
	})

	if len(out) == 0 {
		return nil, ErrMalformedOutput
	}

	return out, nil
}

// extractJSON trims fences and prose around the first JSON value in raw
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	start := strings.IndexAny(raw, "[{")
	if start < 0 {
		return ""
	}

	closer := byte(']')
	if raw[start] == '{' {
		closer = '}'
	}
	end := strings.LastIndexByte(raw, closer)
	if end < start {
		return ""
	}

	return raw[start : end+1]
}
