package atributos

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reTags = regexp.MustCompile(`<[^>]*>`)

// extrairTexto converte a descrição HTML em texto corrido, preservando as
// quebras de linha entre blocos. Se o HTML não parsear, remove as tags por
// regex e segue com a string crua.
func extrairTexto(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return reTags.ReplaceAllString(html, "")
	}

	var partes []string
	doc.Find("h1, h2, h3, p, li, td, span, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			partes = append(partes, t)
		}
	})
	if len(partes) == 0 {
		return strings.TrimSpace(reTags.ReplaceAllString(html, ""))
	}
	return strings.Join(partes, "\n")
}
