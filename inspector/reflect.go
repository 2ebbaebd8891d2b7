// Package inspector turns tagged component structs into display fields.
//
// Components opt in with an inspect struct tag naming a widget and options;
// the viewers decide how each widget is drawn.
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// Section is one component's fields under its type name.
type Section struct {
	Title  string
	Fields []Field
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar"`
//	`inspect:"bar,max:200"`
//	`inspect:"bar,maxfield:MaxEnergy"`
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		k, v, ok := strings.Cut(strings.TrimSpace(part), ":")
		if ok {
			options[k] = v
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract all fields from a component.
// A maxfield option is resolved against the sibling field of that name
// and stored as max.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		if name, ok := options["maxfield"]; ok {
			if mv := v.FieldByName(name); mv.IsValid() && mv.CanInterface() {
				if m, ok := GetFloatValue(mv.Interface()); ok {
					options["max"] = strconv.FormatFloat(float64(m), 'f', -1, 32)
				}
			}
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// ExtractSections extracts the fields of each component, titled by type name.
// Components with no visible fields are dropped.
func ExtractSections(components ...any) []Section {
	sections := make([]Section, 0, len(components))
	for _, c := range components {
		fields := ExtractFields(c)
		if len(fields) == 0 {
			continue
		}
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		sections = append(sections, Section{Title: t.Name(), Fields: fields})
	}
	return sections
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if maxStr, ok := options["max"]; ok {
		if m, err := strconv.ParseFloat(maxStr, 32); err == nil && m > 0 {
			return float32(m)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from various types.
func GetFloatValue(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}

// Ratio returns a bar field's value over its max, clamped to [0, 1].
func Ratio(field Field) float32 {
	v, ok := GetFloatValue(field.Value)
	if !ok {
		return 0
	}
	return min(max(v/GetMax(field.Options), 0), 1)
}

// FormatField renders a field as a single line of plain text.
func FormatField(field Field) string {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return fmt.Sprintf("%s %s %.1f", field.Name, textBar(Ratio(field), 10), v)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return fmt.Sprintf("%s %.0f°", field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			if v {
				return field.Name + " ON"
			}
			return field.Name + " OFF"
		}
	}
	return fmt.Sprintf("%s: %s", field.Name, FormatValue(field.Value, field.Options["fmt"]))
}

func textBar(ratio float32, width int) string {
	filled := int(ratio*float32(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
