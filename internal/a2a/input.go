package a2a

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
)

// fieldEdit is one form change extracted from an A2A message.
type fieldEdit struct {
	audience models.AudienceField
	content  models.ContentField
	value    string
}

func (e fieldEdit) apply(ctrl *controller.Controller) error {
	if e.audience != "" {
		return ctrl.SetAudienceField(e.audience, e.value)
	}
	return ctrl.SetContentField(e.content, e.value)
}

func (e fieldEdit) name() string {
	if e.audience != "" {
		return string(e.audience)
	}
	return string(e.content)
}

// Keys are compared after lower-casing and dropping separators, so "ageMin",
// "age_min" and "Age Min" are the same field.
var fieldAliases = map[string]fieldEdit{
	"agemin":    {audience: models.AudienceAgeMin},
	"minage":    {audience: models.AudienceAgeMin},
	"agemax":    {audience: models.AudienceAgeMax},
	"maxage":    {audience: models.AudienceAgeMax},
	"gender":    {audience: models.AudienceGender},
	"location":  {audience: models.AudienceLocation},
	"lokasi":    {audience: models.AudienceLocation},
	"interests": {audience: models.AudienceInterests},
	"interest":  {audience: models.AudienceInterests},
	"minat":     {audience: models.AudienceInterests},
	"link":      {content: models.ContentLink},
	"url":       {content: models.ContentLink},
	"caption":   {content: models.ContentCaption},
}

func normalizeKey(key string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(key)))
}

// lookupField resolves a key to edits. "age" with a "min-max" value expands
// to both age bounds.
func lookupField(key, value string) ([]fieldEdit, bool) {
	norm := normalizeKey(key)
	if norm == "age" || norm == "usia" {
		lo, hi, ok := strings.Cut(value, "-")
		if !ok {
			return nil, false
		}
		return []fieldEdit{
			{audience: models.AudienceAgeMin, value: strings.TrimSpace(lo)},
			{audience: models.AudienceAgeMax, value: strings.TrimSpace(hi)},
		}, true
	}

	edit, ok := fieldAliases[norm]
	if !ok {
		return nil, false
	}
	edit.value = value
	return []fieldEdit{edit}, true
}

// extractFormInput collects field edits from every part of msg, in order.
func extractFormInput(msg A2AMessage) ([]fieldEdit, error) {
	var edits []fieldEdit

	for _, part := range msg.Parts {
		switch part.Kind {
		case PartText:
			text, ok := part.Text.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			got, err := editsFromText(text)
			if err != nil {
				return nil, err
			}
			edits = append(edits, got...)

		case PartData:
			if part.Data == nil {
				continue
			}
			got, err := editsFromData(part.Data)
			if err != nil {
				return nil, err
			}
			edits = append(edits, got...)
		}
	}

	return edits, nil
}

func editsFromText(text string) ([]fieldEdit, error) {
	text = cleanText(text)
	if strings.HasPrefix(text, "{") {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("invalid JSON in text part: %w", err)
		}
		return editsFromObject(obj), nil
	}
	return editsFromLines(text), nil
}

// editsFromLines parses "key: value" lines. Lines that do not start with a
// known key continue the previous caption, so multi-line captions survive.
func editsFromLines(text string) []fieldEdit {
	var edits []fieldEdit
	lastCaption := -1

	for _, line := range strings.Split(text, "\n") {
		key, value, hasColon := strings.Cut(line, ":")
		if hasColon {
			if got, ok := lookupField(key, strings.TrimSpace(value)); ok {
				edits = append(edits, got...)
				lastCaption = -1
				if got[0].content == models.ContentCaption {
					lastCaption = len(edits) - 1
				}
				continue
			}
		}
		if lastCaption >= 0 {
			edits[lastCaption].value += "\n" + strings.TrimRight(line, " \t\r")
		}
	}

	if lastCaption >= 0 {
		edits[lastCaption].value = strings.TrimSpace(edits[lastCaption].value)
	}
	return edits
}

func editsFromData(data interface{}) ([]fieldEdit, error) {
	switch v := data.(type) {
	case map[string]interface{}:
		return editsFromObject(v), nil
	case []interface{}:
		return editsFromHistory(v)
	case string:
		return editsFromText(v)
	default:
		return nil, fmt.Errorf("unsupported data part of type %T", data)
	}
}

// editsFromObject accepts either {"audience": {...}, "content": {...}} or a
// flat object with the field names at the top level.
func editsFromObject(obj map[string]interface{}) []fieldEdit {
	var edits []fieldEdit
	for _, group := range []string{"audience", "targetAudience", "content", "instagramContent"} {
		if nested, ok := obj[group].(map[string]interface{}); ok {
			edits = append(edits, editsFromFlat(nested)...)
		}
	}
	return append(edits, editsFromFlat(obj)...)
}

func editsFromFlat(obj map[string]interface{}) []fieldEdit {
	var edits []fieldEdit
	// fixed order keeps the result deterministic regardless of map iteration
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		value, ok := scalarString(obj[key])
		if !ok {
			continue
		}
		if got, ok := lookupField(key, value); ok {
			edits = append(edits, got...)
		}
	}
	return edits
}

// editsFromHistory reads a conversation history data part and uses the most
// recent text entry that carries form fields.
func editsFromHistory(items []interface{}) ([]fieldEdit, error) {
	for i := len(items) - 1; i >= 0; i-- {
		item, ok := items[i].(map[string]interface{})
		if !ok {
			continue
		}
		if kind, _ := item["kind"].(string); kind != PartText {
			continue
		}
		text, _ := item["text"].(string)
		if strings.TrimSpace(text) == "" {
			continue
		}
		edits, err := editsFromText(text)
		if err != nil {
			continue
		}
		if len(edits) > 0 {
			return edits, nil
		}
	}
	return nil, nil
}

func cleanText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	return strings.TrimSpace(text)
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
