// Package validation checks decoded JSON payloads against the rule table in
// schema.yaml and reports field-level errors in the conduit error shape.
package validation

import (
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var defaultSchema []byte

// Schema names defined in schema.yaml.
const (
	SchemaLogin   = "login"
	SchemaUser    = "user"
	SchemaArticle = "article"
	SchemaComment = "comment"
)

// Mode selects whether required rules are enforced.
type Mode int

const (
	// Full enforces required fields (create requests).
	Full Mode = iota
	// Partial ignores required inside the envelope (update requests).
	Partial
)

// Messages reported to clients.
const (
	MsgRequired    = "required field"
	MsgNotString   = "must be of string type"
	MsgNotList     = "must be of list type"
	MsgNotDict     = "must be of dict type"
	MsgNotInteger  = "must be of integer type"
	MsgNotBoolean  = "must be of boolean type"
	MsgNull        = "null value not allowed"
	MsgInvalidMail = "Not valid email"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Rule constrains a single field.
type Rule struct {
	Type      string           `yaml:"type"`
	Required  bool             `yaml:"required"`
	Nullable  bool             `yaml:"nullable"`
	MinLength *int             `yaml:"minlength"`
	MaxLength *int             `yaml:"maxlength"`
	Format    string           `yaml:"format"`
	Schema    map[string]*Rule `yaml:"schema"`
	Items     *Rule            `yaml:"items"`
}

// Errors maps a field name to its messages. A message is either a string or
// a nested Errors value (dict fields, list elements keyed by index).
type Errors map[string][]any

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %v", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends msg to field.
func (e Errors) Add(field string, msg any) {
	e[field] = append(e[field], msg)
}

// Field returns a single-field Errors value.
func Field(field string, msgs ...any) Errors {
	return Errors{field: msgs}
}

// Validator evaluates payloads against named schemas.
type Validator struct {
	schemas map[string]map[string]*Rule
}

// New loads the embedded rule table.
func New() (*Validator, error) {
	return Parse(defaultSchema)
}

// Parse builds a Validator from a YAML rule table.
func Parse(data []byte) (*Validator, error) {
	var schemas map[string]map[string]*Rule
	if err := yaml.Unmarshal(data, &schemas); err != nil {
		return nil, fmt.Errorf("parse validation schema: %w", err)
	}
	for name, schema := range schemas {
		if err := checkRules(schema); err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
	}
	return &Validator{schemas: schemas}, nil
}

// Validate checks doc against the named schema. It returns nil when doc is
// valid. Fields without a rule are ignored. Errors of the envelope's inner object are reported at top level,
// e.g. {"body": ["must be of string type"]} rather than {"article": [...]}.
func (v *Validator) Validate(name string, doc map[string]any, mode Mode) Errors {
	schema, ok := v.schemas[name]
	if !ok {
		return Field(name, "unknown schema")
	}

	// The envelope itself is required in every mode.
	errs := validateFields(schema, doc, mode, true)
	if len(errs) == 0 {
		return nil
	}
	return unwrapEnvelope(errs)
}

// unwrapEnvelope lifts the nested errors of a sole envelope field.
func unwrapEnvelope(errs Errors) Errors {
	if len(errs) != 1 {
		return errs
	}
	for _, msgs := range errs {
		if len(msgs) == 1 {
			if inner, ok := msgs[0].(Errors); ok {
				return inner
			}
		}
	}
	return errs
}

func validateDict(rules map[string]*Rule, doc map[string]any, mode Mode) Errors {
	return validateFields(rules, doc, mode, mode == Full)
}

func validateFields(rules map[string]*Rule, doc map[string]any, mode Mode, enforceRequired bool) Errors {
	errs := Errors{}
	for key, rule := range rules {
		val, present := doc[key]
		if !present {
			if rule.Required && enforceRequired {
				errs.Add(key, MsgRequired)
			}
			continue
		}
		if msgs := validateValue(rule, val, mode); len(msgs) > 0 {
			errs[key] = msgs
		}
	}
	return errs
}

func validateValue(rule *Rule, val any, mode Mode) []any {
	if val == nil {
		if rule.Nullable {
			return nil
		}
		return []any{MsgNull}
	}

	switch rule.Type {
	case "string":
		s, ok := val.(string)
		if !ok {
			return []any{MsgNotString}
		}
		return checkString(rule, s)

	case "list":
		items, ok := val.([]any)
		if !ok {
			return []any{MsgNotList}
		}
		if rule.Items == nil {
			return nil
		}
		itemErrs := Errors{}
		for i, item := range items {
			if msgs := validateValue(rule.Items, item, mode); len(msgs) > 0 {
				itemErrs[strconv.Itoa(i)] = msgs
			}
		}
		if len(itemErrs) > 0 {
			return []any{itemErrs}
		}

	case "dict":
		m, ok := val.(map[string]any)
		if !ok {
			return []any{MsgNotDict}
		}
		if nested := validateDict(rule.Schema, m, mode); len(nested) > 0 {
			return []any{nested}
		}

	case "integer":
		f, ok := val.(float64)
		if !ok || f != math.Trunc(f) {
			return []any{MsgNotInteger}
		}

	case "boolean":
		if _, ok := val.(bool); !ok {
			return []any{MsgNotBoolean}
		}
	}

	return nil
}

func checkString(rule *Rule, s string) []any {
	var msgs []any
	n := utf8.RuneCountInString(s)
	if rule.MinLength != nil && n < *rule.MinLength {
		msgs = append(msgs, fmt.Sprintf("min length is %d", *rule.MinLength))
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		msgs = append(msgs, fmt.Sprintf("max length is %d", *rule.MaxLength))
	}
	if rule.Format == "email" && !emailPattern.MatchString(s) {
		msgs = append(msgs, MsgInvalidMail)
	}
	return msgs
}

func checkRules(rules map[string]*Rule) error {
	for field, rule := range rules {
		if rule == nil {
			return fmt.Errorf("field %q has no rule", field)
		}
		switch rule.Type {
		case "string", "list", "integer", "boolean":
		case "dict":
			if err := checkRules(rule.Schema); err != nil {
				return fmt.Errorf("%s.%w", field, err)
			}
		default:
			return fmt.Errorf("field %q: unsupported type %q", field, rule.Type)
		}
		if rule.Format != "" && rule.Format != "email" {
			return fmt.Errorf("field %q: unsupported format %q", field, rule.Format)
		}
		if rule.Items != nil {
			if err := checkRules(map[string]*Rule{field + "[]": rule.Items}); err != nil {
				return err
			}
		}
	}
	return nil
}
