package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,json,txt", []string{"svg", "json", "txt"}},
		{"spaces and empties", " svg, ,png ", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "feed.json", "feed"},
		{"from layout input", "", "out/feed.layout.json", "out/feed"},
		{"stdin", "", "-", "layout"},
		{"strips format extension", "grid.svg", "feed.json", "grid"},
		{"keeps other extension", "grid.v2", "feed.json", "grid.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths([]string{"svg"}, "grid.image", "feed.json")
	if got["svg"] != "grid.image" {
		t.Errorf("single format path = %q, want output as given", got["svg"])
	}

	got = outputPaths([]string{"svg", "png"}, "out/grid.svg", "feed.json")
	want := map[string]string{"svg": "out/grid.svg", "png": "out/grid.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outputPaths() = %v, want %v", got, want)
	}
}

func TestIsLayoutDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"layout", `{"config": {}, "rows": []}`, true},
		{"tiles document", `{"tiles": []}`, false},
		{"tile array", `[{"id": "a"}]`, false},
		{"page", `{"result": true, "data": {"data": []}}`, false},
		{"garbage", `{not json`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLayoutDocument([]byte(tt.data)); got != tt.want {
				t.Errorf("isLayoutDocument(%s) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
