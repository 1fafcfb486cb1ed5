package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageInfo summarizes a rendered page.
type PageInfo struct {
	Template string
	Columns  int
	Sections int
}

// PageError is returned for markup that is not a rendered resume page.
type PageError struct {
	Reason string
}

func (e *PageError) Error() string {
	return fmt.Sprintf("not a printable resume page: %s", e.Reason)
}

// CheckPage verifies html is a complete resume page before it is handed to
// the browser.
func CheckPage(html string) (PageInfo, error) {
	if strings.TrimSpace(html) == "" {
		return PageInfo{}, &PageError{Reason: "empty document"}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageInfo{}, &PageError{Reason: err.Error()}
	}

	root := doc.Find("[data-template]").First()
	if root.Length() == 0 {
		return PageInfo{}, &PageError{Reason: "missing template root"}
	}
	info := PageInfo{
		Template: root.AttrOr("data-template", ""),
		Columns:  root.Find("[data-column]").Length(),
		Sections: root.Find("[data-section]").Length(),
	}
	if info.Columns == 0 {
		return info, &PageError{Reason: "page has no columns"}
	}
	return info, nil
}
