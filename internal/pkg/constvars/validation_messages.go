package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"numeric":      "must be a number",
	"len":          "must be %s characters long",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"phone_number": "must be a valid international phone number",
}

var TagsWithParams = map[string]bool{
	"len":   true,
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}
