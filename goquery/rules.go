package goquery

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/listicle"
	"golang.org/x/net/html"
)

// Ensure RuleExtractor implements listicle.Extractor at compile time.
var _ listicle.Extractor = (*RuleExtractor)(nil)

// Selectors used by the extraction rules.
const (
	RankMarkerSelector  = "span.rating"
	ProsConsSelector    = "h4.ben_dis_heading"
	ProductHeadingLevel = "h2"
)

// RuleExtractor applies the listicle extraction rules directly to the
// sanitized markup. It is deterministic: the same document always yields the
// same result.
//
// Ambiguous markup is resolved first-match-wins. Markers are visited in
// document order; a marker whose container is already claimed, or nests
// with a claimed container, is skipped.
type RuleExtractor struct{}

// NewRuleExtractor creates a new RuleExtractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract implements listicle.Extractor.
func (e *RuleExtractor) Extract(ctx context.Context, doc *listicle.Document) (*listicle.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil || strings.TrimSpace(doc.HTML) == "" {
		return nil, listicle.Errorf(listicle.EINVALID, "empty HTML input")
	}

	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, listicle.Errorf(listicle.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &listicle.Result{
		Mode: listicle.ModeInternalRules,
		Page: listicle.Page{
			URL:       doc.URL,
			MainTopic: mainTopic(d, doc.Title),
		},
		Products: []*listicle.Product{},
	}

	var claimed []*html.Node
	d.Find(RankMarkerSelector).Each(func(_ int, marker *goquery.Selection) {
		rank, ok := parseRank(marker.Text())
		if !ok {
			return
		}
		container := productContainer(marker)
		if container == nil || overlaps(container.Nodes[0], claimed) {
			return
		}
		p := buildProduct(rank, container)
		if p == nil {
			return
		}
		claimed = append(claimed, container.Nodes[0])
		result.Products = append(result.Products, p)
	})

	names := make([]string, len(result.Products))
	for i, p := range result.Products {
		names[i] = p.Name
	}
	for i, id := range listicle.AssignIDs(names) {
		result.Products[i].ID = id
		result.Products[i].Tags = listicle.DeriveTags(result.Products[i])
	}

	return result, nil
}

// mainTopic returns the first H1 text, else the document title, else "".
func mainTopic(d *goquery.Document, title string) string {
	if h1 := d.Find("h1").First(); h1.Length() > 0 {
		return strings.TrimSpace(h1.Text())
	}
	return strings.TrimSpace(title)
}

// parseRank reads a positive integer rank from marker text.
func parseRank(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// productContainer returns the nearest ancestor of the marker that holds a
// product heading, or nil if there is none below the root element.
func productContainer(marker *goquery.Selection) *goquery.Selection {
	for p := marker.Parent(); p.Length() > 0; p = p.Parent() {
		if goquery.NodeName(p) == "html" {
			return nil
		}
		if p.Find(ProductHeadingLevel).Length() > 0 {
			return p
		}
	}
	return nil
}

func overlaps(n *html.Node, claimed []*html.Node) bool {
	for _, c := range claimed {
		if n == c || contains(n, c) || contains(c, n) {
			return true
		}
	}
	return false
}

// contains reports whether b is a strict descendant of a.
func contains(a, b *html.Node) bool {
	for p := b.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// buildProduct extracts a product from its container. Returns nil when the
// container heading is empty.
func buildProduct(rank int, container *goquery.Selection) *listicle.Product {
	order := documentOrder(container.Nodes[0])

	heading := container.Find(ProductHeadingLevel).First()
	label, name := listicle.SplitHeading(headingText(heading))
	if name == "" {
		return nil
	}

	pros, cons := prosAndCons(container, order)

	return &listicle.Product{
		Rank:       rank,
		Name:       name,
		TitleLabel: label,
		Pros:       pros,
		Cons:       cons,
		Summary:    summary(container, heading.Nodes[0], order),
	}
}

// headingText returns the heading text without any rank marker nested in it.
func headingText(heading *goquery.Selection) string {
	h := heading.Clone()
	h.Find(RankMarkerSelector).Remove()
	return strings.TrimSpace(h.Text())
}

// prosAndCons returns the first two lists following the pros/cons heading,
// or the first two lists in the container when there is no such heading.
// Lists nested in a list item are part of that item, not lists of their own.
func prosAndCons(container *goquery.Selection, order map[*html.Node]int) ([]string, []string) {
	root := container.Nodes[0]
	lists := container.Find("ul").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !nestedInItem(s.Nodes[0], root)
	})
	if marker := container.Find(ProsConsSelector).First(); marker.Length() > 0 {
		at := order[marker.Nodes[0]]
		lists = lists.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return order[s.Nodes[0]] > at
		})
	}
	return listItems(lists.Eq(0)), listItems(lists.Eq(1))
}

// nestedInItem reports whether n sits inside an <li> below root.
func nestedInItem(n, root *html.Node) bool {
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "li" {
			return true
		}
	}
	return false
}

// listItems returns the trimmed text of each item, leaving out any sub-list.
func listItems(list *goquery.Selection) []string {
	items := []string{}
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := li.Clone()
		item.Find("ul, ol").Remove()
		items = append(items, strings.TrimSpace(item.Text()))
	})
	return items
}

// summary returns the first non-empty paragraph after the heading, verbatim
// apart from surrounding whitespace.
func summary(container *goquery.Selection, heading *html.Node, order map[*html.Node]int) string {
	at := order[heading]
	var text string
	container.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if order[p.Nodes[0]] <= at {
			return true
		}
		if t := strings.TrimSpace(p.Text()); t != "" {
			text = t
			return false
		}
		return true
	})
	return text
}

// documentOrder numbers the nodes under root in pre-order.
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return order
}
