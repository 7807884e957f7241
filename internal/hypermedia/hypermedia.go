// Package hypermedia builds Mason style response metadata: named controls,
// link relation namespaces and error blocks.
package hypermedia

import "net/http"

const (
	DefaultDeleteRelation = "ecomsync:delete"
	JSONEncoding          = "json"
)

type Control struct {
	Href     string  `json:"href"`
	Method   string  `json:"method,omitempty"`
	Encoding string  `json:"encoding,omitempty"`
	Title    string  `json:"title,omitempty"`
	Schema   *Schema `json:"schema,omitempty"`
}

type Controls map[string]Control

type Namespace struct {
	Name string `json:"name"`
}

type Error struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages,omitempty"`
}

// Meta is embedded in response bodies. Empty blocks are omitted.
type Meta struct {
	Namespaces map[string]Namespace `json:"@namespaces,omitempty"`
	Controls   Controls             `json:"@controls,omitempty"`
	Error      *Error               `json:"@error,omitempty"`

	deleteRelation string
}

// NewMeta returns a Meta whose delete control uses rel. An empty rel keeps the default.
func NewMeta(rel string) Meta {
	return Meta{deleteRelation: rel}
}

func (m *Meta) AddError(title string, details ...string) {
	m.Error = &Error{Message: title, Messages: details}
}

func (m *Meta) AddNamespace(prefix, uri string) {
	if m.Namespaces == nil {
		m.Namespaces = make(map[string]Namespace)
	}
	m.Namespaces[prefix] = Namespace{Name: uri}
}

// AddControl sets ctrl under name, overriding its href.
func (m *Meta) AddControl(name, href string, ctrl Control) {
	if m.Controls == nil {
		m.Controls = make(Controls)
	}
	ctrl.Href = href
	m.Controls[name] = ctrl
}

func (m *Meta) AddControlPost(name, title, href string, schema *Schema) {
	m.AddControl(name, href, Control{
		Method:   http.MethodPost,
		Encoding: JSONEncoding,
		Title:    title,
		Schema:   schema,
	})
}

func (m *Meta) AddControlPut(title, href string, schema *Schema) {
	m.AddControl("edit", href, Control{
		Method:   http.MethodPut,
		Encoding: JSONEncoding,
		Title:    title,
		Schema:   schema,
	})
}

func (m *Meta) AddControlDelete(title, href string) {
	m.AddControl(m.DeleteRelation(), href, Control{
		Method: http.MethodDelete,
		Title:  title,
	})
}

func (m *Meta) DeleteRelation() string {
	if m.deleteRelation == "" {
		return DefaultDeleteRelation
	}
	return m.deleteRelation
}

// Self returns a Controls holding only a self link.
func Self(href string) Controls {
	return Controls{"self": {Href: href}}
}
