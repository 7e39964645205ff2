package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storecatalog/catalog-service/internal/app/catalog/entity"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgCategoryNameRequired = "Category name is required"
	msgNoFieldsToUpdate     = "No fields to update"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindDecimal
	kindCount
	kindReference
)

type fieldRule struct {
	name string
	kind fieldKind
}

// resourceRules is the allow-list of updatable fields of one resource.
type resourceRules struct {
	label  string
	fields []fieldRule
}

var (
	categoryRules = resourceRules{
		label:  "Category",
		fields: []fieldRule{{"name", kindText}},
	}
	productRules = resourceRules{
		label: "Product",
		fields: []fieldRule{
			{"name", kindText},
			{"price", kindDecimal},
			{"stock", kindCount},
			{"category_id", kindReference},
		},
	}
)

func (r resourceRules) rule(name string) (fieldRule, bool) {
	for _, f := range r.fields {
		if f.name == name {
			return f, true
		}
	}
	return fieldRule{}, false
}

// Validator turns raw request payloads into normalized writes.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateCreateCategory trims the name and requires it to be non-empty.
func (v *Validator) ValidateCreateCategory(req *entity.CreateCategoryRequest) (entity.NewCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.NewCategory{}, validationError(msgCategoryNameRequired)
	}
	return entity.NewCategory{Name: name}, nil
}

// ValidateCreateProduct requires name, price and category_id. A missing
// stock is stored as 0.
func (v *Validator) ValidateCreateProduct(req *entity.CreateProductRequest) (entity.NewProduct, error) {
	normalized := *req
	normalized.Name = strings.TrimSpace(req.Name)

	if err := v.validate.Struct(normalized); err != nil {
		return entity.NewProduct{}, validationError(formatValidationError(productRules.label, err))
	}

	var stock int64
	if normalized.Stock != nil {
		stock = *normalized.Stock
	}

	return entity.NewProduct{
		Name:       normalized.Name,
		Price:      *normalized.Price,
		Stock:      stock,
		CategoryID: *normalized.CategoryID,
	}, nil
}

// ValidateCategoryUpdate requires a non-blank name; the only updatable
// category field.
func (v *Validator) ValidateCategoryUpdate(patch entity.Patch) ([]entity.Column, error) {
	raw, ok := patch.Get("name")
	if !ok {
		return nil, validationError(msgCategoryNameRequired)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
		return nil, validationError(msgCategoryNameRequired)
	}
	return validatePatch(categoryRules, patch)
}

// ValidateProductUpdate checks each supplied field against the product
// allow-list. An empty patch passes here and is rejected by the update
// builder.
func (v *Validator) ValidateProductUpdate(patch entity.Patch) ([]entity.Column, error) {
	return validatePatch(productRules, patch)
}

func validatePatch(rules resourceRules, patch entity.Patch) ([]entity.Column, error) {
	columns := make([]entity.Column, 0, patch.Len())
	for _, f := range patch.Fields() {
		rule, ok := rules.rule(f.Name)
		if !ok {
			return nil, validationError(fmt.Sprintf("Field %s cannot be updated", f.Name))
		}
		if bytes.Equal(bytes.TrimSpace(f.Value), []byte("null")) {
			return nil, validationError(fmt.Sprintf("Field %s cannot be null", f.Name))
		}

		value, err := decodeField(rule, f.Value)
		if err != nil {
			return nil, validationError(fmt.Sprintf("Invalid value for field %s", f.Name))
		}
		if s, ok := value.(string); ok && s == "" {
			return nil, validationError(fmt.Sprintf("%s %s cannot be empty", rules.label, f.Name))
		}

		columns = append(columns, entity.Column{Name: rule.name, Value: value})
	}
	return columns, nil
}

var errOutOfRange = errors.New("value out of range")

func decodeField(rule fieldRule, raw json.RawMessage) (interface{}, error) {
	switch rule.kind {
	case kindText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return strings.TrimSpace(s), nil
	case kindDecimal:
		var d decimal.Decimal
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case kindCount, kindReference:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		if n < 0 || (rule.kind == kindReference && n == 0) {
			return nil, errOutOfRange
		}
		return n, nil
	}
	return nil, fmt.Errorf("unsupported field kind %d", rule.kind)
}

func formatValidationError(label string, err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			switch fe.Tag() {
			case "required":
				return fmt.Sprintf("%s %s is required", label, fe.Field())
			case "gt":
				return fmt.Sprintf("%s %s must be greater than %s", label, fe.Field(), fe.Param())
			case "gte":
				return fmt.Sprintf("%s %s must be at least %s", label, fe.Field(), fe.Param())
			default:
				return fmt.Sprintf("%s %s is invalid", label, fe.Field())
			}
		}
	}
	return "Validation failed"
}
