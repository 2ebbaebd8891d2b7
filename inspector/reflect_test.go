package inspector

import (
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/game"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1fs", WidgetLabel, map[string]string{"fmt": "%.1fs"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"sparkle", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.options) {
				t.Fatalf("options = %v, want %v", opts, tt.options)
			}
			for k, v := range tt.options {
				if opts[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFields_SkipsAndResolvesMax(t *testing.T) {
	org := components.Organism{ID: 7, Variant: components.Hunter, Generation: 3}
	fields := ExtractFields(org)

	names := map[string]bool{}
	for _, f := range fields {
		names[f.Name] = true
	}
	for _, skipped := range []string{"Variant", "Genome", "ReproCooldown", "Retention"} {
		if names[skipped] {
			t.Errorf("field %s should be skipped", skipped)
		}
	}
	if !names["ID"] || !names["Generation"] {
		t.Errorf("missing ID or Generation in %v", names)
	}

	vitals := components.Vitals{Energy: 30, MaxEnergy: 120, Alive: true}
	for _, f := range ExtractFields(&vitals) {
		if f.Name != "Energy" {
			continue
		}
		if GetMax(f.Options) != 120 {
			t.Errorf("Energy max = %v, want 120", GetMax(f.Options))
		}
		if r := Ratio(f); r != 0.25 {
			t.Errorf("Ratio = %v, want 0.25", r)
		}
	}
}

func TestExtractFields_NonStruct(t *testing.T) {
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("ExtractFields(42) = %v, want nil", fields)
	}
	var nilVitals *components.Vitals
	if fields := ExtractFields(nilVitals); fields != nil {
		t.Errorf("ExtractFields(nil) = %v, want nil", fields)
	}
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"bar half", Field{Name: "Energy", Value: float32(50), Widget: WidgetBar, Options: map[string]string{"max": "100"}}, "Energy [#####-----] 50.0"},
		{"bar clamped", Field{Name: "Speed", Value: float32(300), Widget: WidgetBar, Options: map[string]string{"max": "120"}}, "Speed [##########] 300.0"},
		{"angle", Field{Name: "Angle", Value: float32(90), Widget: WidgetAngle}, "Angle 90°"},
		{"bool on", Field{Name: "Fleeing", Value: true, Widget: WidgetBool}, "Fleeing ON"},
		{"bool off", Field{Name: "Feeding", Value: false, Widget: WidgetBool}, "Feeding OFF"},
		{"label fmt", Field{Name: "Age", Value: float32(12.34), Widget: WidgetLabel, Options: map[string]string{"fmt": "%.1fs"}}, "Age: 12.3s"},
		{"label uint", Field{Name: "ID", Value: uint32(9), Widget: WidgetLabel}, "ID: 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatField(tt.field); got != tt.want {
				t.Errorf("FormatField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSections(t *testing.T) {
	d := game.AgentDetail{
		Organism: components.Organism{ID: 1, Variant: components.Grazer},
		Vitals:   components.Vitals{Energy: 10, MaxEnergy: 20, Alive: true},
		Forager:  &components.Forager{Fleeing: true},
	}
	sections := Sections(&d)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{"Organism", "Vitals", "Body", "Rotation", "Forager"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestPick(t *testing.T) {
	pop := game.PopulationSnapshot{Agents: []game.AgentView{
		{ID: 1, X: 100, Y: 100, Size: 5, Alive: true},
		{ID: 2, X: 108, Y: 100, Size: 5, Alive: true},
		{ID: 3, X: 300, Y: 300, Size: 5, Alive: false},
	}}

	tests := []struct {
		name   string
		x, y   float32
		wantID uint32
		wantOK bool
	}{
		{"closest of overlapping", 106, 100, 2, true},
		{"exact hit", 100, 100, 1, true},
		{"dead ignored", 300, 300, 0, false},
		{"miss", 200, 200, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Pick(pop, tt.x, tt.y, 2)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("Pick(%v,%v) = %d,%v, want %d,%v", tt.x, tt.y, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
