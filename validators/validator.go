package validators

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	htmlTags = regexp.MustCompile(`<[^>]*>`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9 ()-]{8,20}$`)
)

// custom tags and the messages shown for them
const (
	richTextTag  = "richtext"
	richTextText = "{0} must contain at least {1} characters of text!"
	phoneTag     = "phone"
	phoneText    = "{0} must be a valid phone number!"
)

func init() {
	validate = validator.New()
	uni := ut.New(en.New())
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// error keys follow the JSON field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(richTextTag, richTextValidation)
	registerTranslation(richTextTag, richTextText)
	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	registerTranslation(phoneTag, phoneText)
	registerTranslation("required", "{0} is required!")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Struct validates v and returns the failing fields keyed by JSON name.
// A nil map means v is valid.
func Struct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := errors[fe.Field()]; !seen {
			errors[fe.Field()] = fe.Translate(translator)
		}
	}
	return errors
}

// richTextValidation checks the length of the visible text of an HTML field.
func richTextValidation(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	text := strings.TrimSpace(htmlTags.ReplaceAllString(fl.Field().String(), ""))
	return utf8.RuneCountInString(text) >= min
}

func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}
