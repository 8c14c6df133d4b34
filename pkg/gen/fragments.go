// fragments.go renders composite fragments for the html pseudo-element,
// which describes a whole block of markup instead of a single element.
package gen

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	submitButtonRe = regexp.MustCompile(`submit button with aicss="([^"]+)"`)
	styleAttrRe    = regexp.MustCompile(`aicss="([^"]+)"`)
)

// renderComposite picks a block template from phrases in the description.
// Style attributes embedded in the description are carried onto the
// fragment and resolved by the attribute rewrite pass afterwards.
func renderComposite(dirs map[string]string) string {
	desc := dirs["text"]
	if desc == "" {
		desc = dirs["content"]
	}
	lower := strings.ToLower(desc)

	switch {
	case strings.Contains(lower, "contact form"):
		return contactForm(desc)
	case strings.Contains(lower, "navigation"), strings.Contains(lower, "navbar"):
		return navbar(desc)
	case strings.Contains(lower, "gallery"), strings.Contains(lower, "images"):
		return gallery(desc)
	}
	return section(dirs)
}

func contactForm(desc string) string {
	var b strings.Builder
	b.WriteString("<div class=\"contact-form\">\n")
	b.WriteString("  <h3>Contact Us</h3>\n")
	b.WriteString("  <form>\n")
	b.WriteString("    <div class=\"form-group\">\n")
	b.WriteString("      <label for=\"name\">Name:</label>\n")
	b.WriteString("      <input type=\"text\" id=\"name\" name=\"name\" placeholder=\"Your name\" required>\n")
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"form-group\">\n")
	b.WriteString("      <label for=\"email\">Email:</label>\n")
	b.WriteString("      <input type=\"email\" id=\"email\" name=\"email\" placeholder=\"Your email\" required>\n")
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"form-group\">\n")
	b.WriteString("      <label for=\"message\">Message:</label>\n")
	b.WriteString("      <textarea id=\"message\" name=\"message\" placeholder=\"Your message\" required></textarea>\n")
	b.WriteString("    </div>\n")
	if m := submitButtonRe.FindStringSubmatch(desc); m != nil {
		b.WriteString(`    <button type="submit" aicss="` + m[1] + "\">Submit</button>\n")
	} else {
		b.WriteString("    <button type=\"submit\">Submit</button>\n")
	}
	b.WriteString("  </form>\n")
	b.WriteString("</div>")

	html := b.String()
	if m := styleAttrRe.FindStringSubmatch(desc); m != nil {
		html = strings.Replace(html, `<div class="contact-form">`,
			`<div class="contact-form" aicss="`+m[1]+`">`, 1)
	}
	return html
}

func navbar(desc string) string {
	html := `<nav class="navbar">
  <div class="logo">Company Name</div>
  <ul class="nav-links">
    <li><a href="#">Home</a></li>
    <li><a href="#">About</a></li>
    <li><a href="#">Services</a></li>
    <li><a href="#">Contact</a></li>
  </ul>
</nav>`
	if m := styleAttrRe.FindStringSubmatch(desc); m != nil {
		html = strings.Replace(html, `<nav class="navbar">`,
			`<nav class="navbar" aicss="`+m[1]+`">`, 1)
	}
	return html
}

func gallery(desc string) string {
	var b strings.Builder
	b.WriteString("<div class=\"gallery\">\n")
	for i := 1; i <= 6; i++ {
		b.WriteString("  <div class=\"gallery-item\">\n")
		fmt.Fprintf(&b, "    <img src=\"https://via.placeholder.com/300x200?text=Image+%d\" alt=\"Image %d\">\n", i, i)
		fmt.Fprintf(&b, "    <div class=\"caption\">Image %d Caption</div>\n", i)
		b.WriteString("  </div>\n")
	}
	b.WriteString("</div>")

	html := b.String()
	if m := styleAttrRe.FindStringSubmatch(desc); m != nil {
		html = strings.Replace(html, `<div class="gallery">`,
			`<div class="gallery" aicss="`+m[1]+`">`, 1)
	}
	return html
}

// section is the fallback composite: a marker div around whatever text the
// description carried.
func section(dirs map[string]string) string {
	return "<div class=\"ai-generated\">\n  " + containerContent(dirs) + "\n</div>"
}
