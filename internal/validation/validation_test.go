package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/directory/internal/errs"
)

type testRow struct {
	Slug    string  `json:"slug" validate:"required,slug"`
	Percent float64 `json:"percent" validate:"gte=0,lte=100"`
}

type PathParams struct {
	Year int `param:"year" json:"-" validate:"min=1900,max=2100"`
}

type testPayload struct {
	PathParams
	Name string    `json:"name" validate:"required,max=5"`
	Rows []testRow `json:"rows" validate:"dive"`
}

func (p *testPayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "rows", Message: "must not be empty"}}
}

func bind(t *testing.T, body string, payload Validatable, year string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("year")
	c.SetParamValues(year)

	return BindAndValidate(c, payload)
}

func TestBindAndValidate_OK(t *testing.T) {
	p := &testPayload{}
	require.NoError(t, bind(t, `{"name":"acme","rows":[{"slug":"b2b","percent":40}]}`, p, "2024"))
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, "b2b", p.Rows[0].Slug)
}

func TestBindAndValidate_FieldPaths(t *testing.T) {
	err := bind(t, `{"name":"","rows":[{"slug":"ok","percent":10},{"slug":"Not A Slug","percent":150}]}`, &testPayload{}, "1800")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidation, httpErr.Code)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, map[string]string{
		"year":            "must be at least 1900",
		"name":            "is required",
		"rows[1].slug":    "must contain only lowercase letters, digits and single hyphens",
		"rows[1].percent": "must not exceed 100",
	}, fields)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := bind(t, `{"name":`, &testPayload{}, "2024")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_BadPathParam(t *testing.T) {
	err := bind(t, `{"name":"acme"}`, &testPayload{}, "twenty")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := bind(t, `{}`, &customPayload{}, "2024")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "rows", Error: "must not be empty"}, httpErr.Errors[0])
}

func TestIsSlug(t *testing.T) {
	for _, ok := range []string{"saas", "b2b", "retail-2024"} {
		assert.True(t, IsSlug(ok), ok)
	}
	for _, bad := range []string{"", "SaaS", "a--b", "-a", "a-", "a b", "café"} {
		assert.False(t, IsSlug(bad), bad)
	}
}

type amountPayload struct {
	Percent float64          `json:"percent" validate:"decimals=2"`
	Value   *decimal.Decimal `json:"value" validate:"omitempty,decimals=2"`
}

func (p *amountPayload) Validate() error {
	return Struct(p)
}

func TestBindAndValidate_Decimals(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"two places", `{"percent":12.35,"value":"1250.50"}`, nil},
		{"integers", `{"percent":40,"value":1000}`, nil},
		{"no value", `{"percent":0.5}`, nil},
		{"trailing zeros are not precision", `{"percent":12.5,"value":"7.1000"}`, nil},
		{"percent rounded by the column", `{"percent":12.345}`, []string{"percent"}},
		{"value rounded by the column", `{"percent":1,"value":"0.001"}`, []string{"value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bind(t, tt.body, &amountPayload{}, "2024")
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			var fields []string
			for _, fe := range httpErr.Errors {
				fields = append(fields, fe.Field)
				assert.Equal(t, "must have at most 2 decimal places", fe.Error)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}
