package nxt

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const niteNamespace = "http://nite.sourceforge.net/"

// element is a generic XML element that keeps child order.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

func (e *element) attr(local string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

func (e *element) niteAttr(local string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == local && (a.Name.Space == niteNamespace || a.Name.Space == "nite") {
			return a.Value
		}
	}
	return ""
}

func (e *element) isNite(local string) bool {
	return e.XMLName.Local == local && (e.XMLName.Space == niteNamespace || e.XMLName.Space == "nite")
}

// walk visits e and its descendants in document order.
func (e *element) walk(visit func(*element)) {
	visit(e)
	for i := range e.Children {
		e.Children[i].walk(visit)
	}
}

// readDocument decodes path. An empty charsetName honours the encoding in
// the XML declaration; otherwise the input is decoded from that charset.
func readDocument(path, charsetName string) (*element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var in io.Reader = bufio.NewReader(f)
	dec := xml.NewDecoder(in)
	if name := strings.TrimSpace(charsetName); name != "" {
		enc, _ := charset.Lookup(name)
		if enc == nil {
			return nil, fmt.Errorf("decode %s: unknown charset %q", path, name)
		}
		dec = xml.NewDecoder(transform.NewReader(in, enc.NewDecoder()))
		// the declaration still names the original encoding
		dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		}
	} else {
		dec.CharsetReader = charset.NewReaderLabel
	}

	var root element
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &root, nil
}
