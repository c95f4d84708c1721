package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	got, err := Render("Signups for the **fall season** are open.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>Signups for the <strong>fall season</strong> are open.</p>\n" {
		t.Fatalf("unexpected html: %q", got)
	}
}

func TestRender_DropsRawHTML(t *testing.T) {
	t.Parallel()

	got, err := Render("<script>alert(1)</script>\n\nhello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw html must not pass through: %q", got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Fatalf("expected paragraph in output: %q", got)
	}
}

func TestRender_HardWraps(t *testing.T) {
	t.Parallel()

	got, err := Render("line one\nline two")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "line one<br>") {
		t.Fatalf("expected hard wrap: %q", got)
	}
}
