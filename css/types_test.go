package css_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	parse "github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"

	"csssel/css"
	"csssel/selector"
)

var (
	combinatorSpace = regexp.MustCompile(`\s*([>+~])\s*`)
	anySpace        = regexp.MustCompile(`\s+`)
)

// normalize makes selector text comparable regardless of how tokenizer
// treats whitespace around combinators.
func normalize(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "{")
	s = combinatorSpace.ReplaceAllString(s, "$1")
	return strings.TrimSpace(anySpace.ReplaceAllString(s, " "))
}

// readSelectors runs stylesheet text through real CSS parser and returns
// selector text of every ruleset, including rulesets nested in @media.
func readSelectors(t *testing.T, data []byte) []string {
	t.Helper()

	p := tcss.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	var out []string
	for {
		gt, _, tok := p.Next()
		switch gt {
		case tcss.ErrorGrammar:
			if p.Err() != nil && p.Err().Error() != "EOF" {
				t.Fatalf("CSS parse error: %v", p.Err())
			}
			return out
		case tcss.BeginRulesetGrammar:
			var sb strings.Builder
			sb.Write(tok)
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			for s := range strings.SplitSeq(sb.String(), ",") {
				out = append(out, normalize(s))
			}
		}
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	var b selector.Builder

	sheet := &css.Stylesheet{}
	sheet.AddImport("base.css")
	sheet.AddRule(css.NewRule(b.Element("p")).Set("text-indent", "1em").Set("margin", "0"))
	sheet.AddRule(css.NewRule(b.Element("h1"), b.Element("h2").Class("title")).Set("font-weight", "bold"))
	sheet.AddMedia("amzn-kf8",
		css.NewRule(b.Element("a").Attr(`href$=".png"`).PseudoClass("focus")).Set("color", "red"),
		css.NewRule(b.Class("note").PseudoElement("before")).Set("content", `"*"`),
	)

	var buf bytes.Buffer
	n, err := sheet.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}

	want := `@import url("base.css");

p {
  margin: 0;
  text-indent: 1em;
}

h1, h2.title {
  font-weight: bold;
}

@media amzn-kf8 {
  a[href$=".png"]:focus {
    color: red;
  }

  .note::before {
    content: "*";
  }
}
`
	if got := buf.String(); got != want {
		t.Errorf("WriteTo() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if sheet.String() != want {
		t.Error("String() differs from WriteTo() output")
	}
}

func TestStylesheet_SelectorsSurviveParser(t *testing.T) {
	var b selector.Builder

	sels := []selector.Selector{
		b.ID("main").Class("container").Class("editable"),
		b.Element("a").Attr(`href$=".png"`).PseudoClass("focus"),
		b.Combine(
			b.Element("div").ID("main").Class("container").Class("draggable"),
			selector.Adjacent,
			b.Combine(
				b.Element("table").ID("data"),
				selector.General,
				b.Combine(
					b.Element("tr").PseudoClass("nth-of-type(even)"),
					selector.Descendant,
					b.Element("td").PseudoClass("nth-of-type(even)"),
				),
			),
		),
		b.Combine(b.Element("ul"), selector.Child, b.Element("li").PseudoElement("marker")),
	}

	sheet := &css.Stylesheet{}
	for _, sel := range sels {
		sheet.AddRule(css.NewRule(sel).Set("color", "black"))
	}

	got := readSelectors(t, []byte(sheet.String()))
	if len(got) != len(sels) {
		t.Fatalf("parser found %d selectors, want %d: %q", len(got), len(sels), got)
	}
	for i, sel := range sels {
		if want := normalize(sel.String()); got[i] != want {
			t.Errorf("selector %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestStylesheet_BrokenSelector(t *testing.T) {
	var b selector.Builder

	sheet := &css.Stylesheet{}
	sheet.AddRule(css.NewRule(b.Element("p")))
	sheet.AddRule(css.NewRule(b.Element("div").Element("span")))

	var buf bytes.Buffer
	_, err := sheet.WriteTo(&buf)
	if !errors.Is(err, selector.ErrDuplicatePart) {
		t.Fatalf("WriteTo() error = %v, want ErrDuplicatePart", err)
	}
	if strings.Contains(buf.String(), "span") {
		t.Errorf("broken rule was written: %q", buf.String())
	}

	empty := &css.Stylesheet{}
	empty.AddRule(css.Rule{})
	if _, err := empty.WriteTo(&buf); !errors.Is(err, css.ErrNoSelectors) {
		t.Errorf("WriteTo() error = %v, want ErrNoSelectors", err)
	}
}

func TestStylesheet_ImportEscaping(t *testing.T) {
	sheet := &css.Stylesheet{}
	sheet.AddImport(`dir\"odd".css`)
	if got, want := sheet.String(), `@import url("dir\\\"odd\".css");`+"\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRule_SetKeepsReceiver(t *testing.T) {
	var b selector.Builder

	base := css.NewRule(b.Element("p")).Set("color", "red")
	derived := base.Set("margin", "0")

	if len(base.Properties) != 1 || base.Properties["color"] != "red" {
		t.Errorf("base properties changed: %v", base.Properties)
	}
	if len(derived.Properties) != 2 || derived.Properties["margin"] != "0" {
		t.Errorf("derived properties = %v", derived.Properties)
	}

	var zero css.Rule
	if r := zero.Set("color", "blue"); r.Properties["color"] != "blue" || zero.Properties != nil {
		t.Errorf("Set() on zero rule: %v, receiver %v", r.Properties, zero.Properties)
	}
}

func TestRule_SelectorTextMissing(t *testing.T) {
	var b selector.Builder

	r := css.NewRule(b.Element("p"), (*selector.Fragment)(nil))
	if _, err := r.SelectorText(); !errors.Is(err, selector.ErrMissingOperand) {
		t.Errorf("SelectorText() error = %v, want ErrMissingOperand", err)
	}
}
