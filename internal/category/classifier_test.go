package category

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestClassifyDefaults(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"exact keyword", "맑은이러닝 11월 정산", "맑은이러닝"},
		{"partial keyword", "이러닝 콘솔 이용료", "맑은이러닝"},
		{"second rule", "콘텐츠 제작 대금", "콘텐츠"},
		{"third rule short keyword", "위캔 월구독", "위캔디오"},
		{"no match falls back", "사무용품 구입", Fallback},
		{"empty label falls back", "", Fallback},
		{"whitespace only falls back", "   ", Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.label); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyOrderWins(t *testing.T) {
	// Both rules match "premium video"; the first in table order must win
	// even though the second rule's keyword is longer.
	c := NewClassifier([]Rule{
		{Name: "A", Keywords: []string{"video"}},
		{Name: "B", Keywords: []string{"premium video"}},
	}, "etc")

	if got := c.Classify("Premium Video Package"); got != "A" {
		t.Errorf("Classify = %q, want first rule %q to win", got, "A")
	}
}

func TestClassifyLowercasesKeywords(t *testing.T) {
	c := NewClassifier([]Rule{{Name: "vod", Keywords: []string{"VIDEO"}}}, "etc")
	if got := c.Classify("video on demand"); got != "vod" {
		t.Errorf("Classify = %q, want %q", got, "vod")
	}
}

func TestCategoriesOrderedWithFallbackLast(t *testing.T) {
	got := Default().Categories()
	want := []string{"맑은이러닝", "콘텐츠", "위캔디오", "기타"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.txt")
	content := "# comment\n맑은이러닝: 맑은, 이러닝\n\n콘텐츠: 콘텐츠\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Name != "맑은이러닝" || len(rules[0].Keywords) != 2 {
		t.Errorf("first rule = %+v", rules[0])
	}

	if err := os.WriteFile(path, []byte("no separator here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("LoadRules accepted a line without ':'")
	}
}

func TestNewFromFileEmptyPathUsesDefaults(t *testing.T) {
	c, err := NewFromFile("")
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := c.Classify("위캔디오"); got != "위캔디오" {
		t.Errorf("Classify = %q, want default rules in effect", got)
	}
}
