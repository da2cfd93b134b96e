package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/tradejournal"
)

// na is printed in place of an unknown value.
const na = "n/a"

var funcs = template.FuncMap{
	"opt":    optional,
	"signed": signed,
}

// optional prints nil money and percent values as "n/a".
func optional(v any) string {
	switch v := v.(type) {
	case *tradejournal.Money:
		if v == nil {
			return na
		}
		return v.String()
	case *tradejournal.Percent:
		if v == nil {
			return na
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// signed is like optional but always shows the sign of the value.
func signed(v any) string {
	switch v := v.(type) {
	case *tradejournal.Money:
		if v == nil {
			return na
		}
		return v.SignedString()
	case *tradejournal.Percent:
		if v == nil {
			return na
		}
		return v.SignedString()
	case tradejournal.Money:
		return v.SignedString()
	case tradejournal.Percent:
		return v.SignedString()
	}
	return fmt.Sprint(v)
}

// renderTemplate is a generic utility to render a main template and its partials.
func renderTemplate(templateName, main string, partials map[string]string, data any) string {
	tmpl, err := template.New(templateName).Funcs(funcs).Parse(main)
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", templateName, err)
	}
	for name, content := range partials {
		if _, err := tmpl.New(name).Parse(content); err != nil {
			return fmt.Sprintf("error parsing partial template %q: %v", name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
