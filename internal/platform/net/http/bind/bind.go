// Package bind decodes request bodies and validates them with go-playground/validator.
// Failures come back as perr errors so handlers can return them unchanged
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps request bodies
const MaxBody = 1 << 20

type engine struct {
	v     *validator.Validate
	trans ut.Translator
}

var get = sync.OnceValue(func() *engine {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = entrans.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterValidation("account", func(fl validator.FieldLevel) bool {
		return Account(fl.Field().String())
	})

	e := &engine{v: v, trans: trans}
	e.message("min", "{0} must be at least {1}")
	e.message("max", "{0} must be at most {1}")
	e.message("account", "{0} must be an address or handle")
	return e
})

func (e *engine) message(tag, text string) {
	_ = e.v.RegisterTranslation(tag, e.trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		})
}

// Account accepts a wallet address or a handle such as vitalik.eth:
// 3 to 128 printable ascii characters without spaces
func Account(s string) bool {
	if len(s) < 3 || len(s) > 128 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}

// ParseJSON decodes the body into T and validates it. An empty body is the zero T.
// Unknown fields and trailing data are rejected
func ParseJSON[T any](r *http.Request) (T, error) {
	var v T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	switch err := dec.Decode(&v); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return v, perr.JSONErrf("invalid JSON: %v", err)
	case dec.More():
		return v, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Struct validates v. The error names the first failing field
func Struct(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(get().trans)), fe.Field())
}
