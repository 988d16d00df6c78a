package components

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/garden/slug"
)

// CTATemplate holds the strings of a named call-to-action.
type CTATemplate struct {
	Title    string
	Subtitle string
	Button   string
	FormID   string
}

// DefaultCTATemplates are the call-to-action types known out of the box.
var DefaultCTATemplates = map[string]CTATemplate{
	"default": {
		Title:    "Start Linking Your Thinking!",
		Subtitle: `Get our email course "The Ultimate Primer to Linking Your Thinking" to start creating an ideaverse that can support and power a lifetime of memories & ideas.`,
		Button:   "Get the Ultimate Primer",
		FormID:   "6589197",
	},
}

// DefaultFormAction is the newsletter endpoint forms post to.
const DefaultFormAction = "https://app.convertkit.com/forms"

// CallToActionOptions configures CallToAction.
type CallToActionOptions struct {
	// Templates defaults to DefaultCTATemplates.
	Templates map[string]CTATemplate
	// FormAction defaults to DefaultFormAction.
	FormAction string
}

// CallToAction renders a newsletter sign-up block chosen by the page's
// ctaType. Page fields override the template's strings.
func CallToAction(opts CallToActionOptions) Component {
	if opts.Templates == nil {
		opts.Templates = DefaultCTATemplates
	}
	if opts.FormAction == "" {
		opts.FormAction = DefaultFormAction
	}
	return Func(IDCallToAction, ctaStyle, func(p Props) templ.Component {
		if p.Page == nil {
			return Nothing
		}
		cta := p.Page.Frontmatter.CTA
		if cta.Type == "" {
			return Nothing
		}
		tpl, known := opts.Templates[cta.Type]
		if !known && (cta.Title == "" || cta.Button == "" || cta.FormID == "") {
			return Nothing
		}
		title := firstNonEmpty(cta.Title, tpl.Title)
		subtitle := firstNonEmpty(cta.Subtitle, tpl.Subtitle)
		button := firstNonEmpty(cta.Button, tpl.Button)
		formID := firstNonEmpty(cta.FormID, tpl.FormID)
		if button == "" || formID == "" {
			return Nothing
		}
		action := slug.JoinSegments(strings.TrimSuffix(opts.FormAction, "/"), formID, "subscriptions")

		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "cta"))
			if title != "" {
				w.element("h1", title, "class", "cta-title")
			}
			if subtitle != "" {
				w.element("p", subtitle, "class", "cta-subtitle")
			}
			w.open("form", "class", "newsletter-form", "action", action, "method", "post", "data-sv-form", formID)
			w.void("input", "class", "newsletter-input", "type", "email", "name", "email_address",
				"aria-label", "Email Address", "placeholder", "Email Address", "required", "required")
			w.element("button", button, "class", "newsletter-button", "type", "submit")
			w.close("form")
			w.close("div")
		})
	})
}
