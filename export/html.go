package export

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tableau/model"
)

// WriteHTML renders the table set as a standalone HTML document, one <table>
// per reconstructed table, with labeled columns as <th> cells and recap
// blocks as definition lists.
func WriteHTML(w io.Writer, set *model.TableSet) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	for _, t := range set.Tables {
		body.AppendChild(caption(t))
		body.AppendChild(tableNode(t))
		if recap := t.Recap.Map(); len(recap) > 0 {
			body.AppendChild(recapNode(recap))
		}
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func caption(t *model.Table) *html.Node {
	h := element(atom.H2)
	h.AppendChild(text(fmt.Sprintf("%s (pages %d-%d)", t.Kind, t.PageStart, t.PageEnd)))
	return h
}

func tableNode(t *model.Table) *html.Node {
	table := element(atom.Table)
	table.Attr = []html.Attribute{{Key: "border", Val: "1"}}

	if labels, ok := columnLabels(t); ok {
		thead := element(atom.Thead)
		tr := element(atom.Tr)
		for _, label := range labels {
			th := element(atom.Th)
			th.AppendChild(text(label))
			tr.AppendChild(th)
		}
		thead.AppendChild(tr)
		table.AppendChild(thead)
	}

	tbody := element(atom.Tbody)
	for _, record := range t.RawData() {
		tr := element(atom.Tr)
		for _, v := range record {
			td := element(atom.Td)
			td.AppendChild(text(v))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return table
}

func recapNode(recap map[string]string) *html.Node {
	dl := element(atom.Dl)
	for _, key := range sortedKeys(recap) {
		dt := element(atom.Dt)
		dt.AppendChild(text(key))
		dd := element(atom.Dd)
		dd.AppendChild(text(recap[key]))
		dl.AppendChild(dt)
		dl.AppendChild(dd)
	}
	return dl
}
