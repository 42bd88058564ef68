package book

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the JSON type a payload field must carry.
type Kind int

const (
	KindString Kind = iota
	KindInteger
)

func (k Kind) String() string {
	if k == KindInteger {
		return "an integer"
	}
	return "a string"
}

// FieldRule declares the presence and type constraints of one payload field.
type FieldRule struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema is the constraint set applied to every create payload.
var Schema = []FieldRule{
	{Name: "isbn", Kind: KindString, Required: true},
	{Name: "amazon_url", Kind: KindString, Required: true},
	{Name: "author", Kind: KindString, Required: true},
	{Name: "language", Kind: KindString, Required: true},
	{Name: "pages", Kind: KindInteger, Required: true},
	{Name: "publisher", Kind: KindString, Required: true},
	{Name: "title", Kind: KindString, Required: true},
	{Name: "year", Kind: KindInteger, Required: true},
}

// updateSchema is Schema with isbn optional; the path carries the identity.
var updateSchema = func() []FieldRule {
	rules := make([]FieldRule, len(Schema))
	copy(rules, Schema)
	for i := range rules {
		if rules[i].Name == "isbn" {
			rules[i].Required = false
		}
	}
	return rules
}()

// Payload is a decoded JSON object. Numbers decoded from a request body
// are json.Number; Go callers may also pass int.
type Payload map[string]any

// ValidationError lists every constraint a payload violates.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid book: " + strings.Join(e.Messages, "; ")
}

var validate *validator.Validate

var (
	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Pattern = regexp.MustCompile(`^\d{13}$`)

	isbnSeparators = strings.NewReplacer("-", "", " ", "")
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("isbn", validateISBN)
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

// NormalizeISBN returns the stored form of an isbn: hyphens and spaces
// removed and a lower-case check character upper-cased.
func NormalizeISBN(s string) string {
	return strings.ToUpper(isbnSeparators.Replace(s))
}

// ValidISBN reports whether s has the shape of an ISBN-10 or ISBN-13.
// Hyphens and spaces are ignored.
func ValidISBN(s string) bool {
	s = NormalizeISBN(s)
	switch len(s) {
	case 10:
		return isbn10Pattern.MatchString(s)
	case 13:
		return isbn13Pattern.MatchString(s)
	}
	return false
}

// ParseCreate checks a create payload and returns the book it describes.
func ParseCreate(p Payload) (Book, error) {
	return parse(p, Schema, "")
}

// ParseUpdate checks an update payload for the book at isbn. The body may
// omit isbn; when present it must equal the path isbn once both are normalized.
func ParseUpdate(isbn string, p Payload) (Book, error) {
	return parse(p, updateSchema, NormalizeISBN(isbn))
}

func parse(p Payload, rules []FieldRule, pathISBN string) (Book, error) {
	var messages []string
	bad := make(map[string]bool)
	values := make(map[string]any, len(rules))

	for _, rule := range rules {
		raw, ok := p[rule.Name]
		if !ok || raw == nil {
			if rule.Required {
				messages = append(messages, fmt.Sprintf("%s is required", rule.Name))
				bad[rule.Name] = true
			}
			continue
		}
		v, ok := coerce(raw, rule.Kind)
		if !ok {
			messages = append(messages, fmt.Sprintf("%s must be %s", rule.Name, rule.Kind))
			bad[rule.Name] = true
			continue
		}
		values[rule.Name] = v
	}

	b := Book{
		ISBN:      NormalizeISBN(stringValue(values["isbn"])),
		AmazonURL: stringValue(values["amazon_url"]),
		Author:    stringValue(values["author"]),
		Language:  stringValue(values["language"]),
		Pages:     intValue(values["pages"]),
		Publisher: stringValue(values["publisher"]),
		Title:     stringValue(values["title"]),
		Year:      intValue(values["year"]),
	}

	var err error
	if pathISBN != "" {
		if b.ISBN != "" && b.ISBN != pathISBN {
			messages = append(messages, "isbn must match the isbn in the URL")
		}
		bad["isbn"] = true
		b.ISBN = pathISBN
		err = validate.StructExcept(b, "ISBN")
	} else {
		err = validate.Struct(b)
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			if bad[fe.Field()] {
				continue
			}
			messages = append(messages, fieldMessage(fe))
		}
	} else if err != nil {
		return Book{}, err
	}

	if len(messages) > 0 {
		return Book{}, &ValidationError{Messages: messages}
	}
	return b, nil
}

func coerce(raw any, kind Kind) (any, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindInteger:
		switch n := raw.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, false
			}
			return int(i), true
		}
	}
	return nil, false
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int {
	i, _ := v.(int)
	return i
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "isbn":
		return fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
