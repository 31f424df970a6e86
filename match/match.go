// Package match runs built selectors against HTML documents.
package match

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"csssel/recipe"
	"csssel/selector"
)

// Document is a parsed HTML document.
type Document struct {
	doc *goquery.Document
	log *zap.Logger
}

// Result describes elements matched by a single selector.
type Result struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Selector string   `json:"selector" yaml:"selector"`
	Count    int      `json:"count" yaml:"count"`
	Nodes    []string `json:"nodes,omitempty" yaml:"nodes,omitempty"` // outer HTML of matched elements
}

// NewDocument parses HTML from r.
func NewDocument(r io.Reader, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}
	return &Document{doc: doc, log: log.Named("match")}, nil
}

// NewDocumentFromNode wraps already parsed HTML tree.
func NewDocumentFromNode(root *html.Node, log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	return &Document{doc: goquery.NewDocumentFromNode(root), log: log.Named("match")}
}

// Match returns elements matching sel. Unlike goquery Find, selector text
// which selector engine cannot compile is reported as error rather than
// producing empty selection.
func (d *Document) Match(sel selector.Selector) (Result, error) {
	text, err := sel.Stringify()
	if err != nil {
		return Result{}, err
	}
	m, err := cascadia.Compile(text)
	if err != nil {
		return Result{Selector: text}, fmt.Errorf("unable to compile selector '%s': %w", text, err)
	}

	found := d.doc.FindMatcher(m)
	res := Result{Selector: text, Count: found.Length()}
	found.Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			res.Nodes = append(res.Nodes, strings.TrimSpace(h))
		}
	})
	d.log.Debug("Selector matched", zap.String("selector", text), zap.Int("count", res.Count))
	return res, nil
}

// MatchAll runs every built recipe entry against the document. Entries
// which fail are reported together, results for the rest are returned in
// input order.
func (d *Document) MatchAll(named []recipe.Named) ([]Result, error) {
	var (
		errs error
		out  = make([]Result, 0, len(named))
	)
	for _, n := range named {
		res, err := d.Match(n.Selector)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry '%s': %w", n.Name, err))
			continue
		}
		res.Name = n.Name
		out = append(out, res)
	}
	return out, errs
}
