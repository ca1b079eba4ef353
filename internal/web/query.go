package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/PriceSort/internal/core"
	"github.com/JonMunkholm/PriceSort/internal/web/templates"
)

// lookupParams is the raw search form. Validation bounds the input before
// it reaches the filter.
type lookupParams struct {
	Price      string `validate:"max=12"`
	Target     string `validate:"omitempty,oneof=すべて 買値 売値"`
	Category   string `validate:"max=16"`
	State      string `validate:"max=16"`
	NonDefault bool
}

var validate = validator.New()

// parseLookup binds and validates the query string of r.
func parseLookup(r *http.Request) (core.Query, error) {
	v := r.URL.Query()
	p := lookupParams{
		Price:      v.Get(templates.ParamPrice),
		Target:     v.Get(templates.ParamTarget),
		Category:   v.Get(templates.ParamCategory),
		State:      v.Get(templates.ParamState),
		NonDefault: isChecked(v.Get(templates.ParamNonDefault)),
	}

	if err := validate.Struct(p); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
			return core.Query{}, fmt.Errorf("%w: %s", core.ErrInvalidQuery, strings.Join(msgs, ", "))
		}
		return core.Query{}, fmt.Errorf("%w: %v", core.ErrInvalidQuery, err)
	}

	return core.Query{
		Price:          p.Price,
		Target:         p.Target,
		Category:       p.Category,
		State:          p.State,
		NonDefaultOnly: p.NonDefault,
	}, nil
}

// isChecked accepts the values browsers and scripts send for a checkbox.
func isChecked(s string) bool {
	switch strings.ToLower(s) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}
