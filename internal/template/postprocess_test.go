package template

import (
	"strings"
	"testing"
)

func TestPostProcessStripsImageStyles(t *testing.T) {
	in := `<html><head></head><body><img src="logo.png" style="width: 900px; float: left"></body></html>`
	out := PostProcess(in)

	if strings.Contains(out, "900px") {
		t.Fatalf("inline img style survived: %s", out)
	}
	if !strings.Contains(out, `<img src="logo.png">`) {
		t.Fatalf("img element mangled: %s", out)
	}
}

func TestPostProcessKeepsStylesOnOtherElements(t *testing.T) {
	in := `<p style="color: red">x</p>`
	out := PostProcess(in)
	if !strings.Contains(out, `<p style="color: red">`) {
		t.Fatalf("non-img style must be preserved: %s", out)
	}
}

func TestPostProcessInjectsBeforeHeadClose(t *testing.T) {
	in := `<html><head><title>t</title></head><body></body></html>`
	out := PostProcess(in)

	idx := strings.Index(out, styleMarker)
	head := strings.Index(out, "</head>")
	if idx == -1 || head == -1 || idx > head {
		t.Fatalf("styles must land before </head>: %s", out)
	}
}

func TestPostProcessAppendsWithoutHead(t *testing.T) {
	out := PostProcess("<p>fragment</p>")
	if !strings.HasSuffix(strings.TrimSpace(out), "</style>") {
		t.Fatalf("styles must be appended at the end: %s", out)
	}
}

func TestPostProcessIsIdempotent(t *testing.T) {
	once := PostProcess(`<html><head></head><body></body></html>`)
	twice := PostProcess(once)

	if once != twice {
		t.Fatalf("re-processing must not change the document")
	}
	if strings.Count(twice, styleMarker) != 1 {
		t.Fatalf("stylesheet injected more than once")
	}
}
