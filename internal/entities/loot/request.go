package loot

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// MaxSetNameLength bounds the set name embedded in prompts and indexes
const MaxSetNameLength = 80

// GenerationRequest describes one generation batch
type GenerationRequest struct {
	Tier     Tier     `json:"tier" validate:"required,loot_tier"`
	Count    int      `json:"count" validate:"min=1"`
	ItemType ItemType `json:"itemType" validate:"omitempty,loot_item_type"`
	SubType  string   `json:"subType"`
	SetName  string   `json:"setName" validate:"max=80"`

	// Model selects the text generation model; empty uses the configured default
	Model string `json:"model"`
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("loot_tier", func(fl validator.FieldLevel) bool {
		return Tier(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("loot_item_type", func(fl validator.FieldLevel) bool {
		return ItemType(fl.Field().String()).IsValid()
	})
	v.RegisterStructValidation(validateSubTypeDomain, GenerationRequest{})

	return v
}

func validateSubTypeDomain(sl validator.StructLevel) {
	req := sl.Current().Interface().(GenerationRequest)
	if strings.TrimSpace(req.SubType) == "" {
		return
	}

	if req.ItemType == "" {
		if _, ok := ItemTypeForSubType(req.SubType); !ok {
			sl.ReportError(req.SubType, "subType", "SubType", "loot_subtype_needs_type", "")
		}
		return
	}

	if !req.ItemType.IsValid() {
		return
	}
	if _, ok := req.ItemType.NormalizeSubType(req.SubType); !ok {
		sl.ReportError(req.SubType, "subType", "SubType", "loot_subtype", string(req.ItemType))
	}
}

// Normalize validates the request and returns a copy with the subtype in its
// canonical spelling. A closed-domain subtype without an item type implies
// its item type. Returns errors.InvalidArgument when the request is malformed.
func (r GenerationRequest) Normalize() (GenerationRequest, error) {
	if err := requestValidator.Struct(r); err != nil {
		return GenerationRequest{}, translateValidationError(err)
	}

	out := r
	out.SubType = strings.TrimSpace(r.SubType)
	out.SetName = strings.TrimSpace(r.SetName)
	if out.SubType == "" {
		return out, nil
	}

	if out.ItemType == "" {
		out.ItemType, _ = ItemTypeForSubType(out.SubType)
	}
	out.SubType, _ = out.ItemType.NormalizeSubType(out.SubType)
	return out, nil
}

func translateValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate generation request")
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			vb.RequiredField(field)
		case "min":
			vb.Fieldf(field, "must be at least %s", fe.Param())
		case "max":
			vb.Fieldf(field, "must be no more than %s characters", fe.Param())
		case "loot_tier":
			vb.Fieldf(field, "must be one of: %s", joinTiers())
		case "loot_item_type":
			vb.Fieldf(field, "must be one of: %s", joinItemTypes())
		case "loot_subtype":
			vb.Fieldf(field, "%q is not a %s subtype", fe.Value(), fe.Param())
		case "loot_subtype_needs_type":
			vb.Fieldf(field, "%q needs an item type", fe.Value())
		default:
			vb.InvalidField(field, fe.Tag())
		}
	}
	return vb.Build()
}

func joinTiers() string {
	names := make([]string, 0, len(AllTiers()))
	for _, t := range AllTiers() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func joinItemTypes() string {
	names := make([]string, 0, len(AllItemTypes()))
	for _, t := range AllItemTypes() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}
